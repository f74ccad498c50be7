package wavefile

import (
	"errors"
	"io"
	"time"

	"github.com/go-audio/audio"
)

var errZeroByteRate = errors.New("can't compute a duration with a zero byte rate")

// Wave is a fully assembled wav container. It owns the RIFF header, the fmt
// and data chunks, and the optional fact and PEAK chunks; no chunk has a
// lifecycle of its own outside a Wave. A Wave is plain value data, copied out
// of the stream it was decoded from.
type Wave struct {
	Riff   RiffHeader
	Format FormatChunk
	Data   DataChunk
	Fact   *FactChunk
	Peak   *PeakChunk
}

// Encode serializes the wave to w in canonical chunk order. It is shorthand
// for NewEncoder(w).Encode(wave).
func (w *Wave) Encode(dst io.Writer) error {
	return NewEncoder(dst).Encode(w)
}

// AudioFormat returns the channel layout and sample rate in the exchange
// type the go-audio packages consume.
func (w *Wave) AudioFormat() *audio.Format {
	return &audio.Format{
		NumChannels: int(w.Format.NumChannels),
		SampleRate:  int(w.Format.SampleRate),
	}
}

// FrameCount returns the number of sample frames held by the data chunk, or
// zero when the block alignment is unset.
func (w *Wave) FrameCount() int {
	if w.Format.BlockAlign == 0 {
		return 0
	}

	return int(w.Data.Size) / int(w.Format.BlockAlign)
}

// Duration returns the play time of the data chunk at the declared byte
// rate.
func (w *Wave) Duration() (time.Duration, error) {
	if w.Format.ByteRate == 0 {
		return 0, errZeroByteRate
	}

	seconds := float64(w.Data.Size) / float64(w.Format.ByteRate)

	return time.Duration(seconds * float64(time.Second)), nil
}

// RecalculateSizes rewrites the declared chunk sizes from the current
// content. Decoded waves already carry the sizes read from the stream; call
// this after building or mutating a Wave by hand so Encode emits a
// self-consistent file.
func (w *Wave) RecalculateSizes() {
	w.Data.Size = uint32(len(w.Data.Data))
	w.Format.Size = w.Format.bodyLen()

	if w.Format.Extensible != nil {
		w.Format.Extensible.Size = extensibleDeclaredLen
	}

	if w.Fact != nil {
		w.Fact.Size = factFixedBodyLen
	}

	if w.Peak != nil {
		w.Peak.Size = peakBodyLen
	}

	total := w.Format.encodedLen() + w.Data.encodedLen()
	if w.Fact != nil {
		total += factEncodedLen
	}

	if w.Peak != nil {
		total += peakEncodedLen
	}

	w.Riff.Size = total
}
