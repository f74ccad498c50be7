package wavefile

import (
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// DataChunk owns the raw sample payload. The payload is opaque at this layer
// and always holds exactly Size bytes; no even-byte padding is consumed or
// emitted around it.
type DataChunk struct {
	Size uint32
	Data []byte
}

func (c *DataChunk) encodedLen() uint32 {
	return 8 + uint32(len(c.Data))
}

type dataCodec struct{}

func (dataCodec) magic() []byte { return riff.DataFormatID[:] }

func (dataCodec) decode(d *Decoder) error {
	var chunk DataChunk

	err := d.readLE(&chunk.Size)
	if err != nil {
		return fmt.Errorf("failed to read data chunk size: %w", err)
	}

	chunk.Data = make([]byte, chunk.Size)

	_, err = io.ReadFull(d.r, chunk.Data)
	if err != nil {
		return fmt.Errorf("failed to read %d bytes of sample payload: %w", chunk.Size, err)
	}

	d.data = &chunk

	return nil
}

func (dataCodec) encode(e *Encoder, w *Wave) error {
	err := e.writeMagic(riff.DataFormatID[:])
	if err != nil {
		return err
	}

	err = e.addLE(w.Data.Size)
	if err != nil {
		return fmt.Errorf("failed to write data chunk size: %w", err)
	}

	err = e.writeBytes(w.Data.Data)
	if err != nil {
		return fmt.Errorf("failed to write sample payload: %w", err)
	}

	return nil
}
