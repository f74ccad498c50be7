package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/wavefile"
)

func writeTestWave(t *testing.T) string {
	t.Helper()

	wave := &wavefile.Wave{
		Format: wavefile.FormatChunk{
			AudioFormat:   wavefile.WaveFormatIEEEFloat,
			NumChannels:   2,
			SampleRate:    44100,
			ByteRate:      705600,
			BlockAlign:    16,
			BitsPerSample: 64,
		},
		Data: wavefile.DataChunk{Data: make([]byte, 160)},
		Fact: &wavefile.FactChunk{Data: 10},
		Peak: &wavefile.PeakChunk{
			Version:   1,
			Timestamp: 1688222400,
			Peaks: [2]wavefile.Peak{
				{Value: 0.5, Position: 3},
				{Value: 0.25, Position: 7},
			},
		},
	}
	wave.RecalculateSizes()

	path := filepath.Join(t.TempDir(), "info.wav")

	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	err = wave.Encode(file)
	if err != nil {
		t.Fatal(err)
	}

	return path
}

func TestRunRequiresPath(t *testing.T) {
	var out bytes.Buffer

	err := run(nil, &out)
	if err == nil {
		t.Fatalf("expected error without input path")
	}

	if !errors.Is(err, errMissingPath) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunPrintsChunkInfo(t *testing.T) {
	var outBuf bytes.Buffer

	err := run([]string{writeTestWave(t)}, &outBuf)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	out := outBuf.String()
	checks := []string{
		"Format: IEEE float",
		"Channels: 2",
		"SampleRate: 44100",
		"ByteRate: 705600",
		"BitsPerSample: 64",
		"DataBytes: 160",
		"Frames: 10",
		"FactData: 10",
		"PeakVersion: 1",
		"position=7",
	}

	for _, c := range checks {
		if !strings.Contains(out, c) {
			t.Fatalf("expected output to contain %q\nfull output:\n%s", c, out)
		}
	}
}

func TestRunInvalidPath(t *testing.T) {
	var outBuf bytes.Buffer

	err := run([]string{"/nonexistent/path.wav"}, &outBuf)
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
