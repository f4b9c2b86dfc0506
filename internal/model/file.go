package model

import (
	"path/filepath"
	"strings"
)

// AudioFileRef is an accepted input file. Path is the resolved path used for
// identity, Name is the base name shown to the user.
type AudioFileRef struct {
	Path string `yaml:"path"`
	Name string `yaml:"name"`
}

// NewAudioFileRef builds a reference for an already resolved path
func NewAudioFileRef(path string) AudioFileRef {
	return AudioFileRef{
		Path: path,
		Name: filepath.Base(path),
	}
}

// Stem returns the base name without its trailing extension
func (r AudioFileRef) Stem() string {
	return strings.TrimSuffix(r.Name, filepath.Ext(r.Name))
}

// OutputPath derives where the converted file is written: the output
// directory joined with the stem and the format extension.
func (r AudioFileRef) OutputPath(outputDir string, format Format) string {
	return filepath.Join(outputDir, r.Stem()+format.Ext())
}
