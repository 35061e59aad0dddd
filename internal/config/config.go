package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "pagectl", "config.yml")
}

// Path returns the config file in use: PAGECTL_CONFIG or the default.
func Path() string {
	if p := os.Getenv("PAGECTL_CONFIG"); p != "" {
		return ExpandHome(p)
	}
	return DefaultPath()
}

// Load reads the config from Path (or env). A missing file yields the
// defaults.
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile reads the config from path, layered over defaults and
// PAGECTL_* environment variables.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.base_url", "http://127.0.0.1:8000")
	v.SetDefault("server.timeout", "30s")
	v.SetDefault("server.retries", 2)
	v.SetDefault("server.csrf_cookie", "csrftoken")
	v.SetDefault("server.csrf_header", "X-CSRFToken")
	v.SetDefault("server.session_cookie", "sessionid")
	v.SetDefault("server.session_env", "PAGECTL_SESSION")
	v.SetDefault("editor.default_zoom", 3)
	v.SetDefault("editor.max_zoom", 10)
	v.SetDefault("editor.clear_clipboard_on_paste", false)
	v.SetDefault("editor.confirm", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetEnvPrefix("PAGECTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(ExpandHome(path))
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; pagectl runs on defaults.
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Credentials come from the environment only.
	sessionEnv := cfg.Server.SessionEnv
	if sessionEnv == "" {
		sessionEnv = "PAGECTL_SESSION"
	}
	cfg.Server.Session = os.Getenv(sessionEnv)
	cfg.Server.CSRFToken = os.Getenv("PAGECTL_CSRF_TOKEN")

	cfg.Log.File = ExpandHome(cfg.Log.File)

	return &cfg, nil
}

// Save writes the config to Path.
func Save(cfg *Config) error {
	return SaveFile(cfg, Path())
}

// SaveFile writes the config to path as YAML.
func SaveFile(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
