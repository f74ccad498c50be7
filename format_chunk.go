package wavefile

import (
	"errors"
	"fmt"

	"github.com/go-audio/riff"
)

var (
	// ErrUnknownAudioFormat is returned when the fmt chunk carries a format
	// tag outside the supported set.
	ErrUnknownAudioFormat = errors.New("unknown audio format tag")
	// ErrExtensibleMismatch is returned on encode when the presence of the
	// extensible sub-structure disagrees with the format tag gating it.
	ErrExtensibleMismatch = errors.New("extensible sub-structure presence doesn't match the format tag")
)

// WaveFormat identifies the codec of the samples stored in the data chunk.
type WaveFormat uint16

// Supported wave format tags. Decoding any other value fails with
// ErrUnknownAudioFormat.
const (
	WaveFormatPCM       WaveFormat = 0x0001
	WaveFormatIEEEFloat WaveFormat = 0x0003
	// 8-bit ITU-T G.711 A-law
	WaveFormatALaw WaveFormat = 0x0006
	// 8-bit ITU-T G.711 mu-law
	WaveFormatMuLaw      WaveFormat = 0x0007
	WaveFormatExtensible WaveFormat = 0x0008
)

func (f WaveFormat) String() string {
	switch f {
	case WaveFormatPCM:
		return "PCM"
	case WaveFormatIEEEFloat:
		return "IEEE float"
	case WaveFormatALaw:
		return "A-law"
	case WaveFormatMuLaw:
		return "mu-law"
	case WaveFormatExtensible:
		return "extensible"
	default:
		return fmt.Sprintf("unknown (%#04x)", uint16(f))
	}
}

func (f WaveFormat) valid() bool {
	switch f {
	case WaveFormatPCM, WaveFormatIEEEFloat, WaveFormatALaw, WaveFormatMuLaw, WaveFormatExtensible:
		return true
	default:
		return false
	}
}

// FormatChunk describes how the data chunk payload is laid out.
type FormatChunk struct {
	Size        uint32
	AudioFormat WaveFormat
	NumChannels uint16
	SampleRate  uint32
	// ByteRate is the average number of bytes per second at which the data
	// should be transferred.
	ByteRate uint32
	// BlockAlign is the byte size of one sample frame. Playback software
	// processes a multiple of BlockAlign bytes at a time.
	BlockAlign    uint16
	BitsPerSample uint16
	// Extensible is present exactly when AudioFormat is WaveFormatExtensible.
	Extensible *ExtensibleFormat
}

// ExtensibleFormat carries the extra fields of an extensible fmt chunk. It
// only exists nested inside a FormatChunk.
type ExtensibleFormat struct {
	Size               uint16
	ValidBitsPerSample uint16
	ChannelMask        uint32
	SubFormatGUID      [16]byte
}

const (
	formatFixedBodyLen = 16
	// size field + fixed fields + guid
	extensibleBodyLen = 24
	// the byte count an extensible chunk declares after its own size field
	extensibleDeclaredLen = 22
)

// The fmt chunk magic is the RIFF form type and the chunk id read as one
// 8-byte tag.
var formatChunkMagic = append(append([]byte(nil), riff.WavFormatID[:]...), riff.FmtID[:]...)

// bodyLen is the size a well-formed file declares for the fmt chunk body.
func (c *FormatChunk) bodyLen() uint32 {
	if c.Extensible != nil {
		return formatFixedBodyLen + extensibleBodyLen
	}

	return formatFixedBodyLen
}

// encodedLen is the full on-disk footprint including the 8-byte magic.
func (c *FormatChunk) encodedLen() uint32 {
	return uint32(len(formatChunkMagic)) + 4 + c.bodyLen()
}

type formatCodec struct{}

func (formatCodec) magic() []byte { return formatChunkMagic }

func (formatCodec) decode(d *Decoder) error {
	var chunk FormatChunk

	err := d.readLE(&chunk.Size)
	if err != nil {
		return fmt.Errorf("failed to read fmt chunk size: %w", err)
	}

	var tag uint16

	err = d.readLE(&tag)
	if err != nil {
		return fmt.Errorf("failed to read wav format: %w", err)
	}

	chunk.AudioFormat = WaveFormat(tag)
	if !chunk.AudioFormat.valid() {
		return fmt.Errorf("%#04x: %w", tag, ErrUnknownAudioFormat)
	}

	err = d.readLE(&chunk.NumChannels)
	if err != nil {
		return fmt.Errorf("failed to read channels: %w", err)
	}

	err = d.readLE(&chunk.SampleRate)
	if err != nil {
		return fmt.Errorf("failed to read sample rate: %w", err)
	}

	err = d.readLE(&chunk.ByteRate)
	if err != nil {
		return fmt.Errorf("failed to read avg bytes/sec: %w", err)
	}

	err = d.readLE(&chunk.BlockAlign)
	if err != nil {
		return fmt.Errorf("failed to read block align: %w", err)
	}

	err = d.readLE(&chunk.BitsPerSample)
	if err != nil {
		return fmt.Errorf("failed to read bit depth: %w", err)
	}

	if chunk.AudioFormat == WaveFormatExtensible {
		ext := &ExtensibleFormat{}

		err = d.readLE(&ext.Size)
		if err != nil {
			return fmt.Errorf("failed to read fmt extension size: %w", err)
		}

		err = d.readLE(&ext.ValidBitsPerSample)
		if err != nil {
			return fmt.Errorf("failed to read valid bits per sample: %w", err)
		}

		err = d.readLE(&ext.ChannelMask)
		if err != nil {
			return fmt.Errorf("failed to read channel mask: %w", err)
		}

		err = d.readLE(&ext.SubFormatGUID)
		if err != nil {
			return fmt.Errorf("failed to read sub format GUID: %w", err)
		}

		chunk.Extensible = ext
	}

	d.format = &chunk

	return nil
}

func (formatCodec) encode(e *Encoder, w *Wave) error {
	chunk := &w.Format

	hasExtensible := chunk.Extensible != nil
	if hasExtensible != (chunk.AudioFormat == WaveFormatExtensible) {
		return fmt.Errorf("%s: %w", chunk.AudioFormat, ErrExtensibleMismatch)
	}

	err := e.writeMagic(formatChunkMagic)
	if err != nil {
		return err
	}

	err = e.addLE(chunk.Size)
	if err != nil {
		return fmt.Errorf("failed to write fmt chunk size: %w", err)
	}

	err = e.addLE(uint16(chunk.AudioFormat))
	if err != nil {
		return fmt.Errorf("failed to write wav format: %w", err)
	}

	err = e.addLE(chunk.NumChannels)
	if err != nil {
		return fmt.Errorf("failed to write channels: %w", err)
	}

	err = e.addLE(chunk.SampleRate)
	if err != nil {
		return fmt.Errorf("failed to write sample rate: %w", err)
	}

	err = e.addLE(chunk.ByteRate)
	if err != nil {
		return fmt.Errorf("failed to write avg bytes/sec: %w", err)
	}

	err = e.addLE(chunk.BlockAlign)
	if err != nil {
		return fmt.Errorf("failed to write block align: %w", err)
	}

	err = e.addLE(chunk.BitsPerSample)
	if err != nil {
		return fmt.Errorf("failed to write bit depth: %w", err)
	}

	if !hasExtensible {
		return nil
	}

	ext := chunk.Extensible

	err = e.addLE(ext.Size)
	if err != nil {
		return fmt.Errorf("failed to write fmt extension size: %w", err)
	}

	err = e.addLE(ext.ValidBitsPerSample)
	if err != nil {
		return fmt.Errorf("failed to write valid bits per sample: %w", err)
	}

	err = e.addLE(ext.ChannelMask)
	if err != nil {
		return fmt.Errorf("failed to write channel mask: %w", err)
	}

	err = e.addLE(ext.SubFormatGUID)
	if err != nil {
		return fmt.Errorf("failed to write sub format GUID: %w", err)
	}

	return nil
}
