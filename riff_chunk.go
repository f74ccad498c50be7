package wavefile

import (
	"fmt"

	"github.com/go-audio/riff"
)

// RiffHeader is the outer RIFF container header. Size declares the total
// payload size following the size field; it is carried verbatim and never
// validated against the actual stream length.
type RiffHeader struct {
	Size uint32
}

// magic + size field
const riffEncodedLen = 8

type riffCodec struct{}

func (riffCodec) magic() []byte { return riff.RiffID[:] }

func (riffCodec) decode(d *Decoder) error {
	var header RiffHeader

	err := d.readLE(&header.Size)
	if err != nil {
		return fmt.Errorf("failed to read RIFF size: %w", err)
	}

	d.riff = &header

	return nil
}

func (riffCodec) encode(e *Encoder, w *Wave) error {
	err := e.writeMagic(riff.RiffID[:])
	if err != nil {
		return err
	}

	err = e.addLE(w.Riff.Size)
	if err != nil {
		return fmt.Errorf("failed to write RIFF size: %w", err)
	}

	return nil
}
