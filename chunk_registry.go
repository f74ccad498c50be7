package wavefile

import "bytes"

// chunkCodec decodes and encodes one chunk kind.
type chunkCodec interface {
	// magic returns the full chunk tag, at least 4 bytes long.
	magic() []byte
	// decode reads the chunk body (the stream is positioned just past the
	// magic) and folds it into the decoder's slot for this chunk kind.
	decode(d *Decoder) error
	// encode writes the magic and body for this chunk kind, or nothing when
	// the wave doesn't carry it.
	encode(e *Encoder, w *Wave) error
}

// ChunkRegistry resolves chunk tags to codecs and fixes the write order.
type chunkRegistry struct {
	// dispatch holds the codecs in match priority order for decoding.
	dispatch []chunkCodec
	// canonical holds the codecs in the fixed serialization order
	// RIFF, fmt, data, fact, PEAK.
	canonical []chunkCodec
}

func newDefaultChunkRegistry() *chunkRegistry {
	var (
		riffC   = &riffCodec{}
		formatC = &formatCodec{}
		factC   = &factCodec{}
		peakC   = &peakCodec{}
		dataC   = &dataCodec{}
	)

	return &chunkRegistry{
		dispatch:  []chunkCodec{riffC, formatC, factC, peakC, dataC},
		canonical: []chunkCodec{riffC, formatC, dataC, factC, peakC},
	}
}

// match returns the first codec whose magic starts with the passed tag, or
// nil when the tag is unknown. Codecs with a magic longer than 4 bytes only
// match on the prefix here; the dispatcher verifies the remainder.
func (r *chunkRegistry) match(tag [4]byte) chunkCodec {
	if r == nil {
		return nil
	}

	for _, codec := range r.dispatch {
		if bytes.Equal(codec.magic()[:4], tag[:]) {
			return codec
		}
	}

	return nil
}
