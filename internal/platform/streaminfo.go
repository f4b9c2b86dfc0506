package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/wav"
)

// ErrInvalidWAV is returned for files that do not start with a RIFF/WAVE header
var ErrInvalidWAV = errors.New("not a valid WAV file")

// StreamInfo describes the PCM stream of an uncompressed file
type StreamInfo struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
}

// ReadWAVInfo reads the format chunk and data size of a WAV file
func ReadWAVInfo(path string) (StreamInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return StreamInfo{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return StreamInfo{}, ErrInvalidWAV
	}

	// Duration needs a sane byte rate; a zero duration still leaves a useful description
	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}

	return StreamInfo{
		SampleRate: int(decoder.SampleRate),
		Channels:   int(decoder.NumChans),
		BitDepth:   int(decoder.BitDepth),
		Duration:   duration,
	}, nil
}

// Display returns e.g. "44.1 kHz · 2 ch · 3:05"
func (s StreamInfo) Display() string {
	khz := strings.TrimSuffix(fmt.Sprintf("%.1f", float64(s.SampleRate)/1000), ".0")
	total := int(s.Duration.Round(time.Second) / time.Second)
	return fmt.Sprintf("%s kHz · %d ch · %d:%02d", khz, s.Channels, total/60, total%60)
}

// Describe returns a short subtitle for a file row: tag artist and title
// when present, stream parameters for WAV files, otherwise empty
func Describe(path string) string {
	if tags, err := ReadTags(path); err == nil && !tags.IsEmpty() {
		return tags.Display()
	}
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		if info, err := ReadWAVInfo(path); err == nil {
			return info.Display()
		}
	}
	return ""
}
