package platform

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// pcmWAV builds a canonical 16-bit PCM WAV with silent samples
func pcmWAV(sampleRate, channels int, seconds int) []byte {
	const bitDepth = 16
	dataSize := sampleRate * channels * bitDepth / 8 * seconds

	var b bytes.Buffer
	b.WriteString("RIFF")
	_ = binary.Write(&b, binary.LittleEndian, uint32(36+dataSize))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	_ = binary.Write(&b, binary.LittleEndian, uint32(16))
	_ = binary.Write(&b, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&b, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&b, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&b, binary.LittleEndian, uint32(sampleRate*channels*bitDepth/8))
	_ = binary.Write(&b, binary.LittleEndian, uint16(channels*bitDepth/8))
	_ = binary.Write(&b, binary.LittleEndian, uint16(bitDepth))
	b.WriteString("data")
	_ = binary.Write(&b, binary.LittleEndian, uint32(dataSize))
	b.Write(make([]byte, dataSize))
	return b.Bytes()
}

func TestReadWAVInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := os.WriteFile(path, pcmWAV(8000, 2, 1), 0o644); err != nil {
		t.Fatalf("Failed to write wav: %v", err)
	}

	info, err := ReadWAVInfo(path)
	if err != nil {
		t.Fatalf("ReadWAVInfo failed: %v", err)
	}
	if info.SampleRate != 8000 {
		t.Errorf("Expected sample rate 8000, got %d", info.SampleRate)
	}
	if info.Channels != 2 {
		t.Errorf("Expected 2 channels, got %d", info.Channels)
	}
	if info.BitDepth != 16 {
		t.Errorf("Expected 16 bit, got %d", info.BitDepth)
	}
}

func TestReadWAVInfo_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.wav")
	if err := os.WriteFile(path, []byte("not a wav file at all"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := ReadWAVInfo(path); !errors.Is(err, ErrInvalidWAV) {
		t.Errorf("Expected ErrInvalidWAV, got %v", err)
	}
	if _, err := ReadWAVInfo(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestStreamInfoDisplay(t *testing.T) {
	tests := []struct {
		info     StreamInfo
		expected string
	}{
		{StreamInfo{SampleRate: 44100, Channels: 2, Duration: 185 * time.Second}, "44.1 kHz · 2 ch · 3:05"},
		{StreamInfo{SampleRate: 48000, Channels: 1, Duration: 1500 * time.Millisecond}, "48 kHz · 1 ch · 0:02"},
	}

	for _, test := range tests {
		if result := test.info.Display(); result != test.expected {
			t.Errorf("Display() = %q, expected %q", result, test.expected)
		}
	}
}

func TestDescribe(t *testing.T) {
	dir := t.TempDir()

	tagged := filepath.Join(dir, "tagged.mp3")
	if err := os.WriteFile(tagged, id3v23(map[string]string{"TIT2": "Song", "TPE1": "Band"}), 0o644); err != nil {
		t.Fatalf("Failed to write mp3: %v", err)
	}
	if result := Describe(tagged); result != "Band – Song" {
		t.Errorf("Expected tag subtitle, got %q", result)
	}

	wavPath := filepath.Join(dir, "tone.wav")
	if err := os.WriteFile(wavPath, pcmWAV(8000, 1, 1), 0o644); err != nil {
		t.Fatalf("Failed to write wav: %v", err)
	}
	if result := Describe(wavPath); !strings.HasPrefix(result, "8 kHz · 1 ch · ") {
		t.Errorf("Expected stream subtitle, got %q", result)
	}

	if result := Describe(filepath.Join(dir, "missing.ogg")); result != "" {
		t.Errorf("Expected empty subtitle, got %q", result)
	}
}
