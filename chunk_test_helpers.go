package wavefile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// waveFixture builds synthetic wav byte streams for tests without going
// through the encoder under test.
type waveFixture struct {
	b []byte
}

func (f *waveFixture) tag(s string) *waveFixture {
	f.b = append(f.b, s...)

	return f
}

func (f *waveFixture) u16(v uint16) *waveFixture {
	f.b = binary.LittleEndian.AppendUint16(f.b, v)

	return f
}

func (f *waveFixture) u32(v uint32) *waveFixture {
	f.b = binary.LittleEndian.AppendUint32(f.b, v)

	return f
}

func (f *waveFixture) f32(v float32) *waveFixture {
	return f.u32(math.Float32bits(v))
}

func (f *waveFixture) raw(p []byte) *waveFixture {
	f.b = append(f.b, p...)

	return f
}

func (f *waveFixture) bytes() []byte { return f.b }

func (f *waveFixture) riffChunk(size uint32) *waveFixture {
	return f.tag("RIFF").u32(size)
}

func (f *waveFixture) formatChunk(c FormatChunk) *waveFixture {
	f.tag("WAVEfmt ").
		u32(c.Size).
		u16(uint16(c.AudioFormat)).
		u16(c.NumChannels).
		u32(c.SampleRate).
		u32(c.ByteRate).
		u16(c.BlockAlign).
		u16(c.BitsPerSample)

	if ext := c.Extensible; ext != nil {
		f.u16(ext.Size).u16(ext.ValidBitsPerSample).u32(ext.ChannelMask).raw(ext.SubFormatGUID[:])
	}

	return f
}

func (f *waveFixture) factChunk(c FactChunk) *waveFixture {
	return f.tag("fact").u32(c.Size).u32(c.Data)
}

func (f *waveFixture) dataChunk(payload []byte) *waveFixture {
	return f.tag("data").u32(uint32(len(payload))).raw(payload)
}

func (f *waveFixture) peakChunk(c PeakChunk) *waveFixture {
	f.tag("PEAK").u32(c.Size).u32(c.Version).u32(c.Timestamp)
	for _, p := range c.Peaks {
		f.f32(p.Value).u32(p.Position)
	}

	return f
}

// floatStereoFormat matches the 64-bit float stereo fixture shared by the
// decoder and encoder tests.
func floatStereoFormat() FormatChunk {
	return FormatChunk{
		Size:          16,
		AudioFormat:   WaveFormatIEEEFloat,
		NumChannels:   2,
		SampleRate:    44100,
		ByteRate:      705600,
		BlockAlign:    16,
		BitsPerSample: 64,
	}
}

func pcmMonoFormat() FormatChunk {
	return FormatChunk{
		Size:          16,
		AudioFormat:   WaveFormatPCM,
		NumChannels:   1,
		SampleRate:    8000,
		ByteRate:      16000,
		BlockAlign:    2,
		BitsPerSample: 16,
	}
}

func testPeakChunk() PeakChunk {
	return PeakChunk{
		Size:      peakBodyLen,
		Version:   1,
		Timestamp: 1688222400,
		Peaks: [peakChannelCount]Peak{
			{Value: 0.87, Position: 12},
			{Value: 0.91, Position: 31},
		},
	}
}

// canonicalFloatWave builds a stream already in canonical chunk order so it
// must round-trip byte for byte.
func canonicalFloatWave(payload []byte) []byte {
	riffSize := uint32(28 + 8 + len(payload) + int(factEncodedLen) + int(peakEncodedLen))

	f := &waveFixture{}
	f.riffChunk(riffSize)
	f.formatChunk(floatStereoFormat())
	f.dataChunk(payload)
	f.factChunk(FactChunk{Size: factFixedBodyLen, Data: uint32(len(payload) / 16)})
	f.peakChunk(testPeakChunk())

	return f.bytes()
}

type testChunk struct {
	id   string
	size uint32
	data []byte
}

var (
	errFileTooSmall         = errors.New("file too small")
	errInvalidRiffWaveHdr   = errors.New("invalid riff/wave header")
	errChunkExceedsFileSize = errors.New("chunk exceeds file size")
)

// parseWaveChunks walks an encoded stream chunk by chunk so tests can assert
// on the emitted layout independently of the decoder under test. Unlike
// generic RIFF walkers it expects no padding bytes after odd-sized chunks,
// because the encoder never emits any.
func parseWaveChunks(data []byte) ([]testChunk, error) {
	if len(data) < 12 {
		return nil, errFileTooSmall
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, errInvalidRiffWaveHdr
	}

	chunks := make([]testChunk, 0)

	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		offset += 8

		end := offset + int(size)
		if end > len(data) {
			return nil, fmt.Errorf("%w: %q", errChunkExceedsFileSize, id)
		}

		payload := append([]byte(nil), data[offset:end]...)
		chunks = append(chunks, testChunk{id: id, size: size, data: payload})

		offset = end
	}

	return chunks, nil
}

func chunkOrder(chunks []testChunk) []string {
	out := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		out = append(out, ch.id)
	}

	return out
}
