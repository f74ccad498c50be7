// Package wavefile reads and writes WAV container files while exposing every
// chunk of metadata a file carries, including the optional fact and PEAK
// chunks and the extensible sub-structure of the fmt chunk.
//
// The package deals in container structure only: the data chunk payload is
// carried as opaque bytes, and converting it into numeric samples is left to
// downstream consumers such as the github.com/go-audio packages.
//
// Decoding walks the stream chunk by chunk, dispatching on each chunk's magic
// tag, and folds the result into a single Wave value. Encoding emits the
// chunks of a Wave in the fixed canonical order RIFF, fmt, data, fact, PEAK
// regardless of the order they appeared in on read.
package wavefile
