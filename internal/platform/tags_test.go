package platform

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// id3v23 builds a minimal ID3v2.3 tag followed by a few fake MPEG bytes
func id3v23(frames map[string]string) []byte {
	var body bytes.Buffer
	for _, id := range []string{"TIT2", "TPE1", "TALB"} {
		text, ok := frames[id]
		if !ok {
			continue
		}
		body.WriteString(id)
		_ = binary.Write(&body, binary.BigEndian, uint32(len(text)+1))
		body.Write([]byte{0, 0}) // flags
		body.WriteByte(0)        // ISO-8859-1
		body.WriteString(text)
	}

	size := body.Len()
	var tag bytes.Buffer
	tag.WriteString("ID3")
	tag.Write([]byte{3, 0, 0})
	tag.Write([]byte{
		byte(size >> 21 & 0x7f),
		byte(size >> 14 & 0x7f),
		byte(size >> 7 & 0x7f),
		byte(size & 0x7f),
	})
	tag.Write(body.Bytes())
	tag.Write([]byte{0xff, 0xfb, 0x90, 0x64, 0, 0, 0, 0})
	return tag.Bytes()
}

func TestReadTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	data := id3v23(map[string]string{
		"TIT2": "Ohne Dich",
		"TPE1": "Rammstein",
		"TALB": "Reise, Reise",
	})
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	tags, err := ReadTags(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if tags.Title != "Ohne Dich" {
		t.Errorf("Expected title 'Ohne Dich', got %q", tags.Title)
	}
	if tags.Artist != "Rammstein" {
		t.Errorf("Expected artist 'Rammstein', got %q", tags.Artist)
	}
	if tags.Display() != "Rammstein – Ohne Dich" {
		t.Errorf("Unexpected display text %q", tags.Display())
	}
}

func TestReadTags_NoTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.wav")
	if err := os.WriteFile(path, []byte("this is not an audio file at all"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := ReadTags(path); err == nil {
		t.Error("Expected error for file without tags")
	}

	if _, err := ReadTags(filepath.Join(t.TempDir(), "missing.mp3")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestTags_Display(t *testing.T) {
	tests := []struct {
		tags     Tags
		expected string
	}{
		{Tags{Artist: "A", Title: "T"}, "A – T"},
		{Tags{Title: "T"}, "T"},
		{Tags{Artist: "A"}, "A"},
		{Tags{Album: "only album"}, ""},
	}

	for _, test := range tests {
		if result := test.tags.Display(); result != test.expected {
			t.Errorf("Display(%+v) = %q, expected %q", test.tags, result, test.expected)
		}
	}

	if !(Tags{Album: "x"}).IsEmpty() {
		t.Error("Tags with only album should be empty for display")
	}
}
