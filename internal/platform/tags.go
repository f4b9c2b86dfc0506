package platform

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhowden/tag"
)

// Tags holds the few metadata fields shown next to a file name
type Tags struct {
	Title  string
	Artist string
	Album  string
}

// ReadTags reads embedded metadata (ID3, MP4, FLAC, OGG) from an audio file.
// Files without a recognizable tag return an error; callers treat tags as optional.
func ReadTags(path string) (Tags, error) {
	file, err := os.Open(path)
	if err != nil {
		return Tags{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return Tags{}, fmt.Errorf("failed to read tags: %w", err)
	}

	return Tags{
		Title:  strings.TrimSpace(metadata.Title()),
		Artist: strings.TrimSpace(metadata.Artist()),
		Album:  strings.TrimSpace(metadata.Album()),
	}, nil
}

// IsEmpty returns true if no displayable field is set
func (t Tags) IsEmpty() bool {
	return t.Title == "" && t.Artist == ""
}

// Display returns "Artist – Title", or whichever of the two is present
func (t Tags) Display() string {
	switch {
	case t.Artist != "" && t.Title != "":
		return t.Artist + " – " + t.Title
	case t.Title != "":
		return t.Title
	default:
		return t.Artist
	}
}
