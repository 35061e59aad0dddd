package config

import "time"

// Config is the top-level pagectl configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Editor EditorConfig `mapstructure:"editor" yaml:"editor"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

// ServerConfig holds the document server connection settings.
type ServerConfig struct {
	BaseURL       string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Retries       int           `mapstructure:"retries" yaml:"retries"`
	CSRFCookie    string        `mapstructure:"csrf_cookie" yaml:"csrf_cookie"`
	CSRFHeader    string        `mapstructure:"csrf_header" yaml:"csrf_header"`
	SessionCookie string        `mapstructure:"session_cookie" yaml:"session_cookie"`
	SessionEnv    string        `mapstructure:"session_env" yaml:"session_env"`

	Session   string `mapstructure:"-" yaml:"-"` // resolved at runtime, never written
	CSRFToken string `mapstructure:"-" yaml:"-"` // resolved at runtime, never written
}

// EditorConfig holds editing session defaults.
type EditorConfig struct {
	DefaultZoom           int  `mapstructure:"default_zoom" yaml:"default_zoom"`
	MaxZoom               int  `mapstructure:"max_zoom" yaml:"max_zoom"`
	ClearClipboardOnPaste bool `mapstructure:"clear_clipboard_on_paste" yaml:"clear_clipboard_on_paste"`
	Confirm               bool `mapstructure:"confirm" yaml:"confirm"`
}

// LogConfig controls the structured log.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// EffectiveZoom returns the default zoom, falling back to 3.
func (e EditorConfig) EffectiveZoom() int {
	if e.DefaultZoom > 0 {
		return e.DefaultZoom
	}
	return 3
}

// EffectiveMaxZoom returns the max zoom, never below the default zoom.
func (e EditorConfig) EffectiveMaxZoom() int {
	limit := e.MaxZoom
	if limit <= 0 {
		limit = 10
	}
	if z := e.EffectiveZoom(); limit < z {
		return z
	}
	return limit
}

// Authenticated reports whether a session cookie was resolved.
func (s ServerConfig) Authenticated() bool {
	return s.Session != ""
}
