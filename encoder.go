package wavefile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var errNilWave = errors.New("can't encode a nil wave")

// Encoder serializes a Wave into a wav container.
type Encoder struct {
	w      io.Writer
	codecs *chunkRegistry

	// WrittenBytes counts the bytes written so far.
	WrittenBytes int
}

// NewEncoder creates a new encoder writing to w. The writer only needs to
// support sequential writes; all chunk sizes are taken from the Wave as
// stored, so nothing is backpatched.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		w:      w,
		codecs: newDefaultChunkRegistry(),
	}
}

// Encode emits the wave's chunks in the canonical order RIFF, fmt, data,
// fact, PEAK, skipping absent optional chunks. The output order is
// independent of whatever order the chunks had on read, so round-tripping a
// non-canonical file changes its byte layout without changing its content.
func (e *Encoder) Encode(wave *Wave) error {
	if wave == nil {
		return errNilWave
	}

	for _, codec := range e.codecs.canonical {
		err := codec.encode(e, wave)
		if err != nil {
			return err
		}
	}

	return nil
}

// addLE serializes and writes the passed value using little endian.
func (e *Encoder) addLE(src any) error {
	err := binary.Write(e.w, binary.LittleEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write little endian: %w", err)
	}

	e.WrittenBytes += binary.Size(src)

	return nil
}

// writeMagic writes a chunk tag verbatim.
func (e *Encoder) writeMagic(magic []byte) error {
	n, err := e.w.Write(magic)

	e.WrittenBytes += n

	if err != nil {
		return fmt.Errorf("failed to write chunk tag %q: %w", magic, err)
	}

	return nil
}

// writeBytes writes a raw payload verbatim.
func (e *Encoder) writeBytes(p []byte) error {
	n, err := e.w.Write(p)

	e.WrittenBytes += n

	if err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}

	return nil
}
