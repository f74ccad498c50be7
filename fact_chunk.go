package wavefile

import (
	"errors"
	"fmt"
)

// ErrShortFactChunk is returned when a fact chunk declares fewer bytes than
// its fixed 4-byte body.
var ErrShortFactChunk = errors.New("fact chunk size shorter than its fixed body")

// CIDFact is the chunk ID for the fact chunk.
var CIDFact = [4]byte{'f', 'a', 'c', 't'}

// FactChunk carries the sample frame count most non-PCM encoders write.
// The body is a single 32-bit value; any extra bytes declared by Size are
// skipped on decode and not reproduced on encode.
type FactChunk struct {
	Size uint32
	Data uint32
}

const (
	factFixedBodyLen = 4
	factEncodedLen   = 12
)

type factCodec struct{}

func (factCodec) magic() []byte { return CIDFact[:] }

func (factCodec) decode(d *Decoder) error {
	var chunk FactChunk

	err := d.readLE(&chunk.Size)
	if err != nil {
		return fmt.Errorf("failed to read fact chunk size: %w", err)
	}

	if chunk.Size < factFixedBodyLen {
		return fmt.Errorf("declared %d bytes: %w", chunk.Size, ErrShortFactChunk)
	}

	err = d.readLE(&chunk.Data)
	if err != nil {
		return fmt.Errorf("failed to read fact data: %w", err)
	}

	// keep the stream aligned for the next chunk tag
	if extra := int64(chunk.Size) - factFixedBodyLen; extra > 0 {
		err = d.skip(extra)
		if err != nil {
			return fmt.Errorf("failed to skip %d extra fact bytes: %w", extra, err)
		}
	}

	d.fact = &chunk

	return nil
}

func (factCodec) encode(e *Encoder, w *Wave) error {
	if w.Fact == nil {
		return nil
	}

	err := e.writeMagic(CIDFact[:])
	if err != nil {
		return err
	}

	err = e.addLE(w.Fact.Size)
	if err != nil {
		return fmt.Errorf("failed to write fact chunk size: %w", err)
	}

	err = e.addLE(w.Fact.Data)
	if err != nil {
		return fmt.Errorf("failed to write fact data: %w", err)
	}

	return nil
}
