package wavefile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrMissingRiffChunk is returned when no RIFF header was found.
	ErrMissingRiffChunk = errors.New("RIFF chunk was not found in file")
	// ErrMissingFormatChunk is returned when no fmt chunk was found.
	ErrMissingFormatChunk = errors.New("fmt chunk was not found in file")
	// ErrMissingDataChunk is returned when no data chunk was found.
	ErrMissingDataChunk = errors.New("data chunk was not found in file")
	// ErrMissingFactChunk is returned when a non-PCM format carries no fact
	// chunk. Set Decoder.AllowMissingFact to skip the check.
	ErrMissingFactChunk = errors.New("fact chunk required for a non-PCM format was not found")
	// ErrUnknownChunk is returned when the bytes at a chunk boundary match
	// no known magic.
	ErrUnknownChunk = errors.New("unrecognized chunk tag")
)

// Decoder handles the decoding of wav containers.
type Decoder struct {
	r      io.ReadSeeker
	codecs *chunkRegistry

	// AllowMissingFact relaxes the fact chunk requirement for non-PCM
	// formats. Some writers in the wild omit the chunk.
	AllowMissingFact bool

	riff   *RiffHeader
	format *FormatChunk
	data   *DataChunk
	fact   *FactChunk
	peak   *PeakChunk
}

// NewDecoder creates a decoder for the passed wav reader.
// Note that the reader doesn't get rewinded as the container is processed.
func NewDecoder(r io.ReadSeeker) *Decoder {
	return &Decoder{
		r:      r,
		codecs: newDefaultChunkRegistry(),
	}
}

// Decode reads a whole wav container out of r. It is shorthand for
// NewDecoder(r).Decode().
func Decode(r io.ReadSeeker) (*Wave, error) {
	return NewDecoder(r).Decode()
}

// Decode walks the stream chunk by chunk until its end and assembles the
// result. Chunks may appear in any on-disk order; later chunks of a kind
// replace earlier ones. The returned Wave owns an independent copy of the
// bytes it represents.
func (d *Decoder) Decode() (*Wave, error) {
	for {
		done, err := d.nextChunk()
		if err != nil {
			return nil, err
		}

		if done {
			break
		}
	}

	return d.assemble()
}

// nextChunk consumes one chunk, or a single filler byte, at the current
// position. It reports done when the stream ends cleanly at a chunk
// boundary. The stream position only ever advances.
func (d *Decoder) nextChunk() (bool, error) {
	var lead [1]byte

	_, err := io.ReadFull(d.r, lead[:])
	if errors.Is(err, io.EOF) {
		return true, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to read chunk tag: %w", err)
	}

	// a lone zero byte is filler between chunks, consumed without effect
	if lead[0] == 0 {
		return false, nil
	}

	var tag [4]byte

	tag[0] = lead[0]

	_, err = io.ReadFull(d.r, tag[1:])
	if err != nil {
		return false, fmt.Errorf("failed to read chunk tag: %w", err)
	}

	codec := d.codecs.match(tag)
	if codec == nil {
		return false, fmt.Errorf("%q: %w", tag[:], ErrUnknownChunk)
	}

	// an 8-byte magic still has its second half to verify
	if rest := codec.magic()[4:]; len(rest) > 0 {
		got := make([]byte, len(rest))

		_, err = io.ReadFull(d.r, got)
		if err != nil {
			return false, fmt.Errorf("failed to read chunk tag %q: %w", codec.magic(), err)
		}

		if !bytes.Equal(got, rest) {
			return false, fmt.Errorf("%q: %w", append(tag[:], got...), ErrUnknownChunk)
		}
	}

	return false, codec.decode(d)
}

// assemble folds the decoded slots into a Wave and enforces the
// required-chunk rules. No cross-chunk consistency beyond presence is
// checked here; callers needing stronger guarantees validate independently.
func (d *Decoder) assemble() (*Wave, error) {
	if d.riff == nil {
		return nil, ErrMissingRiffChunk
	}

	if d.format == nil {
		return nil, ErrMissingFormatChunk
	}

	if d.data == nil {
		return nil, ErrMissingDataChunk
	}

	if d.format.AudioFormat != WaveFormatPCM && d.fact == nil && !d.AllowMissingFact {
		return nil, ErrMissingFactChunk
	}

	return &Wave{
		Riff:   *d.riff,
		Format: *d.format,
		Data:   *d.data,
		Fact:   d.fact,
		Peak:   d.peak,
	}, nil
}

// readLE decodes a little-endian value at the current position.
func (d *Decoder) readLE(dst any) error {
	return binary.Read(d.r, binary.LittleEndian, dst)
}

// skip advances past n bytes without keeping them.
func (d *Decoder) skip(n int64) error {
	_, err := io.CopyN(io.Discard, d.r, n)

	return err
}
