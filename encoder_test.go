package wavefile

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func TestEncodeCanonicalRoundTrip(t *testing.T) {
	payload := make([]byte, 160)
	for i := range payload {
		payload[i] = byte(i * 7)
	}

	in := canonicalFloatWave(payload)

	wave, err := Decode(bytes.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer

	err = NewEncoder(&out).Encode(wave)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(in, out.Bytes()) {
		t.Fatalf("round trip mismatch: in %d bytes, out %d bytes", len(in), out.Len())
	}

	if out.Len() != riffEncodedLen+int(wave.Riff.Size) {
		t.Fatalf("stream length = %d, want %d declared by the RIFF header", out.Len(), riffEncodedLen+int(wave.Riff.Size))
	}
}

func TestEncodeReordersChunksCanonically(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	// jumbled on-disk order: PEAK and fact ahead of fmt and data
	f := &waveFixture{}
	f.riffChunk(uint32(28 + 8 + len(payload) + factEncodedLen + peakEncodedLen))
	f.peakChunk(testPeakChunk())
	f.factChunk(FactChunk{Size: 4, Data: 1})
	f.formatChunk(floatStereoFormat())
	f.dataChunk(payload)

	wave, err := Decode(bytes.NewReader(f.bytes()))
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer

	err = wave.Encode(&out)
	if err != nil {
		t.Fatal(err)
	}

	chunks, err := parseWaveChunks(out.Bytes())
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"fmt ", "data", "fact", "PEAK"}
	if got := chunkOrder(chunks); !reflect.DeepEqual(got, want) {
		t.Fatalf("chunk order = %v, want %v", got, want)
	}
}

func TestEncodeOmitsAbsentOptionalChunks(t *testing.T) {
	wave := &Wave{
		Format: pcmMonoFormat(),
		Data:   DataChunk{Data: []byte{1, 2, 3, 4}},
	}
	wave.RecalculateSizes()

	var out bytes.Buffer

	err := wave.Encode(&out)
	if err != nil {
		t.Fatal(err)
	}

	chunks, err := parseWaveChunks(out.Bytes())
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"fmt ", "data"}
	if got := chunkOrder(chunks); !reflect.DeepEqual(got, want) {
		t.Fatalf("chunk order = %v, want %v", got, want)
	}

	if out.Len() != riffEncodedLen+28+8+4 {
		t.Fatalf("stream length = %d, want %d", out.Len(), riffEncodedLen+28+8+4)
	}
}

func TestEncodeOddPayloadNoPadding(t *testing.T) {
	payload := make([]byte, 37)
	for i := range payload {
		payload[i] = byte(255 - i)
	}

	wave := &Wave{
		Format: pcmMonoFormat(),
		Data:   DataChunk{Data: append([]byte(nil), payload...)},
	}
	wave.RecalculateSizes()

	var out bytes.Buffer

	err := wave.Encode(&out)
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := Decode(bytes.NewReader(out.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(decoded.Data.Data, payload) {
		t.Fatalf("payload altered on round trip: %v", decoded.Data.Data)
	}

	// 37 payload bytes stay 37 bytes, no even-byte padding
	if out.Len() != riffEncodedLen+28+8+37 {
		t.Fatalf("stream length = %d, want %d", out.Len(), riffEncodedLen+28+8+37)
	}
}

func TestEncodeExtensibleMismatch(t *testing.T) {
	missingSub := &Wave{
		Format: FormatChunk{AudioFormat: WaveFormatExtensible},
		Data:   DataChunk{},
	}

	straySub := &Wave{
		Format: FormatChunk{
			AudioFormat: WaveFormatPCM,
			Extensible:  &ExtensibleFormat{},
		},
		Data: DataChunk{},
	}

	tests := []struct {
		name string
		wave *Wave
	}{
		{"extensible tag without sub-structure", missingSub},
		{"sub-structure without extensible tag", straySub},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.wave.Encode(&bytes.Buffer{})
			if !errors.Is(err, ErrExtensibleMismatch) {
				t.Fatalf("Encode error = %v, want %v", err, ErrExtensibleMismatch)
			}
		})
	}
}

func TestEncodeExtensibleRoundTrip(t *testing.T) {
	wave := &Wave{
		Format: FormatChunk{
			AudioFormat:   WaveFormatExtensible,
			NumChannels:   2,
			SampleRate:    48000,
			ByteRate:      288000,
			BlockAlign:    6,
			BitsPerSample: 24,
			Extensible: &ExtensibleFormat{
				ValidBitsPerSample: 20,
				ChannelMask:        0x3,
				SubFormatGUID:      [16]byte{1, 0, 0, 0, 0, 0, 16, 0, 128, 0, 0, 170, 0, 56, 155, 113},
			},
		},
		Data: DataChunk{Data: make([]byte, 12)},
		Fact: &FactChunk{Data: 2},
	}
	wave.RecalculateSizes()

	var out bytes.Buffer

	err := wave.Encode(&out)
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := Decode(bytes.NewReader(out.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	if decoded.Format.Size != 40 {
		t.Fatalf("fmt chunk size = %d, want 40", decoded.Format.Size)
	}

	if !reflect.DeepEqual(decoded.Format.Extensible, wave.Format.Extensible) {
		t.Fatalf("extensible mismatch: %+v vs %+v", decoded.Format.Extensible, wave.Format.Extensible)
	}
}

func TestEncodeNilWave(t *testing.T) {
	err := NewEncoder(&bytes.Buffer{}).Encode(nil)
	if err == nil {
		t.Fatal("expected an error encoding a nil wave")
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("sink is broken")
}

func TestEncodeWriteFailurePropagates(t *testing.T) {
	wave := &Wave{
		Format: pcmMonoFormat(),
		Data:   DataChunk{Data: []byte{1}},
	}
	wave.RecalculateSizes()

	err := NewEncoder(failingWriter{}).Encode(wave)
	if err == nil {
		t.Fatal("expected the sink failure to propagate")
	}
}

func TestEncoderWrittenBytes(t *testing.T) {
	wave := &Wave{
		Format: pcmMonoFormat(),
		Data:   DataChunk{Data: []byte{1, 2, 3, 4}},
	}
	wave.RecalculateSizes()

	var out bytes.Buffer

	enc := NewEncoder(&out)

	err := enc.Encode(wave)
	if err != nil {
		t.Fatal(err)
	}

	if enc.WrittenBytes != out.Len() {
		t.Fatalf("WrittenBytes = %d, want %d", enc.WrittenBytes, out.Len())
	}
}
