// This tool prints every chunk of metadata in the passed wav file.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/cwbudde/wavefile"
)

const missingPathMessage = "You must pass the path of the file to inspect"

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	log.Fatal(err)
}

var errMissingPath = errors.New("missing path argument")

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errMissingPath
	}

	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	dec := wavefile.NewDecoder(file)
	// inspecting files shouldn't reject the ones a strict writer would
	dec.AllowMissingFact = true

	wave, err := dec.Decode()
	if err != nil {
		return err
	}

	format := wave.Format
	fmt.Fprintf(out, "Format: %s\n", format.AudioFormat)
	fmt.Fprintf(out, "Channels: %d\n", format.NumChannels)
	fmt.Fprintf(out, "SampleRate: %d\n", format.SampleRate)
	fmt.Fprintf(out, "ByteRate: %d\n", format.ByteRate)
	fmt.Fprintf(out, "BlockAlign: %d\n", format.BlockAlign)
	fmt.Fprintf(out, "BitsPerSample: %d\n", format.BitsPerSample)

	if ext := format.Extensible; ext != nil {
		fmt.Fprintf(out, "ValidBitsPerSample: %d\n", ext.ValidBitsPerSample)
		fmt.Fprintf(out, "ChannelMask: %#08x\n", ext.ChannelMask)
		fmt.Fprintf(out, "SubFormatGUID: % x\n", ext.SubFormatGUID)
	}

	fmt.Fprintf(out, "DataBytes: %d\n", wave.Data.Size)
	fmt.Fprintf(out, "Frames: %d\n", wave.FrameCount())

	if dur, err := wave.Duration(); err == nil {
		fmt.Fprintf(out, "Duration: %s\n", dur)
	}

	if wave.Fact != nil {
		fmt.Fprintf(out, "FactData: %d\n", wave.Fact.Data)
	}

	if peak := wave.Peak; peak != nil {
		fmt.Fprintf(out, "PeakVersion: %d\n", peak.Version)
		fmt.Fprintf(out, "PeakScanned: %s\n", time.Unix(int64(peak.Timestamp), 0).UTC().Format(time.RFC3339))

		for i, p := range peak.Peaks {
			fmt.Fprintf(out, "\tpeak [%d]: value=%g position=%d\n", i, p.Value, p.Position)
		}
	}

	return nil
}
