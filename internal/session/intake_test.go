package session

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ytget/audio-converter/internal/model"
)

func TestAdd(t *testing.T) {
	s := New(model.FormatMP3)
	path := filepath.Join(t.TempDir(), "song.mp3")

	ref, err := s.Add(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if ref.Name != "song.mp3" {
		t.Errorf("Expected Name to be 'song.mp3', got '%s'", ref.Name)
	}
	if ref.Path != ResolvePath(path) {
		t.Errorf("Expected Path to be '%s', got '%s'", ResolvePath(path), ref.Path)
	}
	if s.Len() != 1 {
		t.Errorf("Expected 1 file, got %d", s.Len())
	}
}

func TestTryAdd_Duplicate(t *testing.T) {
	s := New(model.FormatMP3)
	path := filepath.Join(t.TempDir(), "song.mp3")

	if !s.TryAdd(path) {
		t.Fatal("Expected first add to be accepted")
	}
	if s.TryAdd(path) {
		t.Error("Expected duplicate add to be rejected")
	}
	if s.Len() != 1 {
		t.Errorf("Expected file count to stay 1, got %d", s.Len())
	}

	_, err := s.Add(path)
	if !errors.Is(err, ErrDuplicateFile) {
		t.Errorf("Expected ErrDuplicateFile, got %v", err)
	}
}

func TestTryAdd_EquivalentSpellings(t *testing.T) {
	s := New(model.FormatMP3)
	dir := t.TempDir()

	sep := string(filepath.Separator)
	if !s.TryAdd(dir + sep + "album" + sep + ".." + sep + "song.mp3") {
		t.Fatal("Expected first add to be accepted")
	}
	if s.TryAdd(filepath.Join(dir, "song.mp3")) {
		t.Error("Expected cleaned path to be treated as duplicate")
	}

	// "é" composed (NFC) and decomposed (NFD)
	if !s.TryAdd(filepath.Join(dir, "caf\u00e9.flac")) {
		t.Fatal("Expected composed name to be accepted")
	}
	if s.TryAdd(filepath.Join(dir, "cafe\u0301.flac")) {
		t.Error("Expected decomposed name to be treated as duplicate")
	}

	if s.Len() != 2 {
		t.Errorf("Expected 2 files, got %d", s.Len())
	}
}

func TestTryAdd_Unsupported(t *testing.T) {
	s := New(model.FormatMP3)
	dir := t.TempDir()

	for _, name := range []string{"movie.mp4", "notes.txt", "noext", "archive.mp3.zip", ""} {
		if s.TryAdd(filepath.Join(dir, name)) {
			t.Errorf("Expected %q to be rejected", name)
		}
	}
	if s.Len() != 0 {
		t.Errorf("Expected session to stay empty, got %d files", s.Len())
	}

	_, err := s.Add(filepath.Join(dir, "movie.mp4"))
	if !errors.Is(err, ErrUnsupportedFile) {
		t.Errorf("Expected ErrUnsupportedFile, got %v", err)
	}
}

func TestTryAdd_CaseInsensitive(t *testing.T) {
	s := New(model.FormatMP3)
	dir := t.TempDir()

	for _, name := range []string{"SONG.MP3", "song.mp3", "Take.WaV", "x.FLAC", "y.Ogg", "z.M4A"} {
		if !s.TryAdd(filepath.Join(dir, name)) {
			t.Errorf("Expected %q to be accepted", name)
		}
	}
	if s.Len() != 6 {
		t.Errorf("Expected 6 files, got %d", s.Len())
	}
}

func TestAddAll(t *testing.T) {
	s := New(model.FormatMP3)
	dir := t.TempDir()
	a := filepath.Join(dir, "a.mp3")
	b := filepath.Join(dir, "b.wav")

	if !s.TryAdd(a) {
		t.Fatal("Expected pre-add to be accepted")
	}

	result := s.AddAll([]string{a, b, filepath.Join(dir, "c.txt"), b})

	if len(result.Accepted) != 1 || result.Accepted[0].Name != "b.wav" {
		t.Errorf("Expected only b.wav to be accepted, got %+v", result.Accepted)
	}
	if len(result.Duplicates) != 2 {
		t.Errorf("Expected 2 duplicates, got %v", result.Duplicates)
	}
	if len(result.Unsupported) != 1 {
		t.Errorf("Expected 1 unsupported file, got %v", result.Unsupported)
	}
	if result.Rejected() != 3 {
		t.Errorf("Expected 3 rejected, got %d", result.Rejected())
	}

	files := s.Files()
	if len(files) != 2 || files[0].Name != "a.mp3" || files[1].Name != "b.wav" {
		t.Errorf("Expected insertion order [a.mp3 b.wav], got %+v", files)
	}
}
