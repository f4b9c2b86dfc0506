package config

import (
	"strings"
	"sync"
)

// Settings holds the values the settings dialog can change at runtime.
// Changes are kept in memory only.
type Settings struct {
	mu  sync.RWMutex
	cfg Config
}

// NewSettings creates a settings manager seeded from cfg
func NewSettings(cfg *Config) *Settings {
	if cfg == nil {
		cfg = Default()
	}
	return &Settings{cfg: *cfg}
}

// GetFFmpegPath returns the ffmpeg binary used for new batches
func (s *Settings) GetFFmpegPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.FFmpegPath
}

// SetFFmpegPath sets the ffmpeg binary; blank restores the default
func (s *Settings) SetFFmpegPath(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultFFmpegPath
	}
	s.mu.Lock()
	s.cfg.FFmpegPath = expandTilde(path)
	s.mu.Unlock()
}

// GetTheme returns the configured theme name
func (s *Settings) GetTheme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Theme
}

// SetTheme sets the theme; unknown names are ignored
func (s *Settings) SetTheme(name string) bool {
	if !IsValidTheme(name) {
		return false
	}
	s.mu.Lock()
	s.cfg.Theme = name
	s.mu.Unlock()
	return true
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Language
}

// SetLanguage sets the application language; unknown names are ignored
func (s *Settings) SetLanguage(lang string) bool {
	if !IsValidLanguage(lang) {
		return false
	}
	s.mu.Lock()
	s.cfg.Language = lang
	s.mu.Unlock()
	return true
}

// GetThemeOptions returns available theme names in menu order
func (s *Settings) GetThemeOptions() []string {
	return []string{ThemeDark, ThemeLight, ThemeSystem}
}

// GetLanguageOptions returns available language codes in menu order
func (s *Settings) GetLanguageOptions() []string {
	return []string{LanguageSystem, LanguageEnglish, LanguageRussian, LanguagePortuguese}
}
