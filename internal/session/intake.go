package session

import (
	"errors"
	"fmt"
	"path/filepath"

	"golang.org/x/text/unicode/norm"

	"github.com/ytget/audio-converter/internal/model"
)

var (
	// ErrUnsupportedFile means the extension is not one of the supported formats
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrDuplicateFile means the resolved path is already in the session
	ErrDuplicateFile = errors.New("file already added")
)

// IntakeResult reports what happened to a group of candidate paths
type IntakeResult struct {
	Accepted    []model.AudioFileRef
	Unsupported []string
	Duplicates  []string
}

// Rejected returns the number of paths that were not added
func (r IntakeResult) Rejected() int {
	return len(r.Unsupported) + len(r.Duplicates)
}

// ResolvePath turns a user-supplied path into the string used for identity:
// absolute, cleaned and NFC-normalized. Drag-and-drop on macOS delivers
// decomposed (NFD) names while pickers usually deliver composed ones.
func ResolvePath(path string) string {
	resolved, err := filepath.Abs(path)
	if err != nil {
		resolved = filepath.Clean(path)
	}
	return norm.NFC.String(resolved)
}

// Add validates path and appends it to the session
func (s *Session) Add(path string) (model.AudioFileRef, error) {
	if !model.IsSupportedPath(path) {
		return model.AudioFileRef{}, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}

	ref := model.NewAudioFileRef(ResolvePath(path))

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[ref.Path]; exists {
		return model.AudioFileRef{}, fmt.Errorf("%w: %s", ErrDuplicateFile, ref.Path)
	}

	s.files = append(s.files, ref)
	s.index[ref.Path] = struct{}{}
	return ref, nil
}

// TryAdd adds path and reports whether it was accepted. Rejected paths leave
// the session untouched.
func (s *Session) TryAdd(path string) bool {
	_, err := s.Add(path)
	return err == nil
}

// AddAll validates each path independently, as delivered by one drop,
// paste, folder pick or command line
func (s *Session) AddAll(paths []string) IntakeResult {
	var result IntakeResult
	for _, path := range paths {
		ref, err := s.Add(path)
		switch {
		case err == nil:
			result.Accepted = append(result.Accepted, ref)
		case errors.Is(err, ErrDuplicateFile):
			result.Duplicates = append(result.Duplicates, path)
		default:
			result.Unsupported = append(result.Unsupported, path)
		}
	}
	return result
}
