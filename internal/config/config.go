package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ytget/audio-converter/internal/model"
)

// Environment variables
const (
	EnvConfigPath = "AUDIO_CONVERTER_CONFIG"
	EnvFFmpegPath = "AUDIO_CONVERTER_FFMPEG"
	EnvFormat     = "AUDIO_CONVERTER_FORMAT"
	EnvTheme      = "AUDIO_CONVERTER_THEME"
	EnvLanguage   = "AUDIO_CONVERTER_LANG"
)

// AppDirName is the directory under the user config dir holding config.toml
const AppDirName = "audio-converter"

// Theme names
const (
	ThemeDark   = "dark"
	ThemeLight  = "light"
	ThemeSystem = "system"
)

// Language names
const (
	LanguageSystem     = "system"
	LanguageEnglish    = "en"
	LanguageRussian    = "ru"
	LanguagePortuguese = "pt"
)

// Default values
const (
	DefaultFFmpegPath = "ffmpeg"
	DefaultTheme      = ThemeDark
	DefaultLanguage   = LanguageSystem
)

// Config is the startup configuration
type Config struct {
	FFmpegPath    string
	DefaultFormat model.Format
	Theme         string
	Language      string
}

type fileConfig struct {
	FFmpegPath    string `toml:"ffmpeg_path"`
	DefaultFormat string `toml:"default_format"`
	Theme         string `toml:"theme"`
	Language      string `toml:"language"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		FFmpegPath:    DefaultFFmpegPath,
		DefaultFormat: model.DefaultFormat,
		Theme:         DefaultTheme,
		Language:      DefaultLanguage,
	}
}

// Load reads the TOML file at path and applies environment overrides. An
// empty path means $AUDIO_CONVERTER_CONFIG or the default location; a
// missing default file is not an error, a missing explicit one is.
// Invalid values fall back to defaults with a warning.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if v := os.Getenv(EnvConfigPath); v != "" {
			path, explicit = v, true
		} else {
			path = DefaultPath()
		}
	}

	if path != "" {
		var fc fileConfig
		_, err := toml.DecodeFile(path, &fc)
		switch {
		case err == nil:
			cfg.apply(fc)
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	cfg.normalize()
	return cfg, nil
}

// DefaultPath returns the config file location inside the user config dir
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppDirName, "config.toml")
}

func (c *Config) apply(fc fileConfig) {
	if fc.FFmpegPath != "" {
		c.FFmpegPath = expandTilde(fc.FFmpegPath)
	}
	if fc.DefaultFormat != "" {
		c.DefaultFormat = model.Format(strings.ToLower(fc.DefaultFormat))
	}
	if fc.Theme != "" {
		c.Theme = fc.Theme
	}
	if fc.Language != "" {
		c.Language = fc.Language
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvFFmpegPath); v != "" {
		cfg.FFmpegPath = expandTilde(v)
	}
	if v := os.Getenv(EnvFormat); v != "" {
		cfg.DefaultFormat = model.Format(strings.ToLower(v))
	}
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv(EnvLanguage); v != "" {
		cfg.Language = v
	}
}

func (c *Config) normalize() {
	if !c.DefaultFormat.Valid() {
		slog.Warn("unsupported default format, using fallback", "format", c.DefaultFormat, "fallback", model.DefaultFormat)
		c.DefaultFormat = model.DefaultFormat
	}
	c.Theme = strings.ToLower(c.Theme)
	if !IsValidTheme(c.Theme) {
		slog.Warn("unknown theme, using fallback", "theme", c.Theme, "fallback", DefaultTheme)
		c.Theme = DefaultTheme
	}
	c.Language = strings.ToLower(c.Language)
	if !IsValidLanguage(c.Language) {
		slog.Warn("unknown language, using fallback", "language", c.Language, "fallback", DefaultLanguage)
		c.Language = DefaultLanguage
	}
}

// IsValidTheme checks a theme name
func IsValidTheme(name string) bool {
	switch name {
	case ThemeDark, ThemeLight, ThemeSystem:
		return true
	}
	return false
}

// IsValidLanguage checks a language name
func IsValidLanguage(name string) bool {
	switch name {
	case LanguageSystem, LanguageEnglish, LanguageRussian, LanguagePortuguese:
		return true
	}
	return false
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
