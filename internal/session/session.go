package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ytget/audio-converter/internal/model"
	"github.com/ytget/audio-converter/internal/platform"
)

var (
	// ErrUnsupportedFormat is returned by SetFormat for values outside the five formats
	ErrUnsupportedFormat = errors.New("unsupported output format")

	// ErrOutputDirNotWritable is returned when the chosen directory cannot receive files
	ErrOutputDirNotWritable = errors.New("output directory is not writable")

	// ErrNoFiles means a batch was requested with an empty file list
	ErrNoFiles = errors.New("no files to convert")

	// ErrNoOutputDirectory means a batch was requested before choosing a directory
	ErrNoOutputDirectory = errors.New("no output directory selected")
)

// Session is the mutable store for the current batch. It is safe for
// concurrent use.
type Session struct {
	mu        sync.RWMutex
	files     []model.AudioFileRef
	index     map[string]struct{} // resolved paths of files
	format    model.Format
	outputDir string
}

// New creates an empty session. An invalid format falls back to the default.
func New(format model.Format) *Session {
	if !format.Valid() {
		format = model.DefaultFormat
	}
	return &Session{
		index:  make(map[string]struct{}),
		format: format,
	}
}

// Files returns a copy of the accepted files in insertion order
func (s *Session) Files() []model.AudioFileRef {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files := make([]model.AudioFileRef, len(s.files))
	copy(files, s.files)
	return files
}

// Len returns the number of accepted files
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// Contains reports whether path, once resolved, is already in the session
func (s *Session) Contains(path string) bool {
	key := ResolvePath(path)

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.index[key]
	return exists
}

// Remove removes a file by path identity. Removing an absent file is a no-op.
func (s *Session) Remove(ref model.AudioFileRef) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(func(f model.AudioFileRef) bool { return f.Path == ref.Path })
}

// RemoveByName removes the first file whose display name is name.
// Removing a name that is not present is a no-op.
func (s *Session) RemoveByName(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(func(f model.AudioFileRef) bool { return f.Name == name })
}

// RemoveAll removes several files by identity and returns how many were removed
func (s *Session) RemoveAll(refs ...model.AudioFileRef) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, ref := range refs {
		path := ref.Path
		if s.removeLocked(func(f model.AudioFileRef) bool { return f.Path == path }) {
			removed++
		}
	}
	return removed
}

// removeLocked deletes the first file matching fn
func (s *Session) removeLocked(match func(model.AudioFileRef) bool) bool {
	for i, f := range s.files {
		if match(f) {
			s.files = append(s.files[:i], s.files[i+1:]...)
			delete(s.index, f.Path)
			return true
		}
	}
	return false
}

// Format returns the selected output format
func (s *Session) Format() model.Format {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.format
}

// SetFormat replaces the output format
func (s *Session) SetFormat(format model.Format) error {
	if !format.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	s.mu.Lock()
	s.format = format
	s.mu.Unlock()
	return nil
}

// OutputDirectory returns the selected output directory, or "" if none was chosen
func (s *Session) OutputDirectory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.outputDir
}

// SetOutputDirectory replaces the output directory after verifying that it
// is an existing, writable directory. On error the previous value is kept.
func (s *Session) SetOutputDirectory(dir string) error {
	if err := platform.CheckWritableDir(dir); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputDirNotWritable, err)
	}

	resolved := ResolvePath(dir)

	s.mu.Lock()
	s.outputDir = resolved
	s.mu.Unlock()
	return nil
}

// Snapshot is an immutable copy of the session taken when a batch starts
type Snapshot struct {
	Files     []model.AudioFileRef
	Format    model.Format
	OutputDir string
}

// Snapshot copies the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files := make([]model.AudioFileRef, len(s.files))
	copy(files, s.files)
	return Snapshot{
		Files:     files,
		Format:    s.format,
		OutputDir: s.outputDir,
	}
}

// Validate checks the preconditions for starting a batch
func (snap Snapshot) Validate() error {
	if len(snap.Files) == 0 {
		return ErrNoFiles
	}
	if snap.OutputDir == "" {
		return ErrNoOutputDirectory
	}
	if !snap.Format.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, snap.Format)
	}
	return nil
}

// OutputPath derives the output path of ref for this snapshot
func (snap Snapshot) OutputPath(ref model.AudioFileRef) string {
	return ref.OutputPath(snap.OutputDir, snap.Format)
}

