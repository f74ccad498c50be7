package wavefile

import "fmt"

// CIDPeak is the chunk ID for the PEAK chunk.
var CIDPeak = [4]byte{'P', 'E', 'A', 'K'}

// peakChannelCount is a current limitation: the chunk always carries exactly
// two records, independent of FormatChunk.NumChannels.
const peakChannelCount = 2

const (
	peakBodyLen    = 24
	peakEncodedLen = 32
)

// PeakChunk indicates the peak amplitude of the soundfile, one record per
// channel in sample interleave order.
type PeakChunk struct {
	Size    uint32
	Version uint32
	// Timestamp is the Unix time of the peak scan. Callers compare it
	// against the file modification time; an older timestamp means the file
	// should be rescanned for new peak data.
	Timestamp uint32
	Peaks     [peakChannelCount]Peak
}

// Peak is one channel's amplitude peak.
type Peak struct {
	Value float32
	// Position is the sample frame index at which the peak occurs, not a
	// sample point nor a byte offset.
	Position uint32
}

type peakCodec struct{}

func (peakCodec) magic() []byte { return CIDPeak[:] }

func (peakCodec) decode(d *Decoder) error {
	var chunk PeakChunk

	err := d.readLE(&chunk.Size)
	if err != nil {
		return fmt.Errorf("failed to read PEAK chunk size: %w", err)
	}

	err = d.readLE(&chunk.Version)
	if err != nil {
		return fmt.Errorf("failed to read PEAK version: %w", err)
	}

	err = d.readLE(&chunk.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to read PEAK timestamp: %w", err)
	}

	for i := range chunk.Peaks {
		err = d.readLE(&chunk.Peaks[i].Value)
		if err != nil {
			return fmt.Errorf("failed to read peak value %d: %w", i, err)
		}

		err = d.readLE(&chunk.Peaks[i].Position)
		if err != nil {
			return fmt.Errorf("failed to read peak position %d: %w", i, err)
		}
	}

	d.peak = &chunk

	return nil
}

func (peakCodec) encode(e *Encoder, w *Wave) error {
	if w.Peak == nil {
		return nil
	}

	err := e.writeMagic(CIDPeak[:])
	if err != nil {
		return err
	}

	err = e.addLE(w.Peak.Size)
	if err != nil {
		return fmt.Errorf("failed to write PEAK chunk size: %w", err)
	}

	err = e.addLE(w.Peak.Version)
	if err != nil {
		return fmt.Errorf("failed to write PEAK version: %w", err)
	}

	err = e.addLE(w.Peak.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to write PEAK timestamp: %w", err)
	}

	for i, peak := range w.Peak.Peaks {
		err = e.addLE(peak.Value)
		if err != nil {
			return fmt.Errorf("failed to write peak value %d: %w", i, err)
		}

		err = e.addLE(peak.Position)
		if err != nil {
			return fmt.Errorf("failed to write peak position %d: %w", i, err)
		}
	}

	return nil
}
