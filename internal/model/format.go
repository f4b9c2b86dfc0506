package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an output audio format, named after the file extension it produces.
type Format string

const (
	FormatMP3  Format = "mp3"
	FormatWAV  Format = "wav"
	FormatFLAC Format = "flac"
	FormatOGG  Format = "ogg"
	FormatM4A  Format = "m4a"
)

// DefaultFormat is selected when nothing else is configured
const DefaultFormat = FormatMP3

// m4a files are MPEG-4 containers; the encoder only knows them as mp4.
const containerMP4 = "mp4"

// Formats returns the supported formats in menu order.
func Formats() []Format {
	return []Format{FormatMP3, FormatWAV, FormatFLAC, FormatOGG, FormatM4A}
}

// FormatNames returns the supported formats as plain strings, for select widgets.
func FormatNames() []string {
	formats := Formats()
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, string(f))
	}
	return names
}

// ParseFormat parses a format name, ignoring case and a leading dot.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	f := Format(name)
	if !f.Valid() {
		return "", fmt.Errorf("unsupported audio format %q", s)
	}
	return f, nil
}

// String returns the string representation of Format
func (f Format) String() string {
	return string(f)
}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	switch f {
	case FormatMP3, FormatWAV, FormatFLAC, FormatOGG, FormatM4A:
		return true
	}
	return false
}

// Ext returns the file extension including the leading dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Container returns the container identifier passed to the encoder. It equals
// the format name for everything except m4a, which is written as mp4.
func (f Format) Container() string {
	if f == FormatM4A {
		return containerMP4
	}
	return string(f)
}

// IsSupportedPath reports whether path ends in a supported extension, ignoring case.
func IsSupportedPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	return Format(ext[1:]).Valid()
}

// SupportedExtensions returns the accepted input extensions, with dots.
func SupportedExtensions() []string {
	formats := Formats()
	exts := make([]string, 0, len(formats))
	for _, f := range formats {
		exts = append(exts, f.Ext())
	}
	return exts
}
