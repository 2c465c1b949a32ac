// Package config resolves where pinsearch keeps its files and how it behaves.
//
// Resolve is the only place that consults the process environment. Everything else
// receives the resulting *Config explicitly.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const appName = "pinsearch"

// Environment keys. The alfred_* variables are set by Alfred for every workflow run.
const (
	EnvWorkflowData  = "alfred_workflow_data"
	EnvWorkflowCache = "alfred_workflow_cache"
	EnvAPIURL        = "PINSEARCH_API_URL"
	EnvStaleness     = "PINSEARCH_STALENESS"
	EnvOutput        = "PINSEARCH_OUTPUT"
	EnvLogLevel      = "PINSEARCH_LOG_LEVEL"
	EnvToken         = "PINBOARD_TOKEN"
)

// Paths locates pinsearch's files.
type Paths struct {
	DataDir  string
	CacheDir string
}

// SettingsFile is the optional YAML settings file.
func (p Paths) SettingsFile() string { return filepath.Join(p.DataDir, "settings.yaml") }

// CredentialsFile holds the API token.
func (p Paths) CredentialsFile() string { return filepath.Join(p.DataDir, "config.json") }

// DotEnvFile holds optional KEY=VALUE overrides.
func (p Paths) DotEnvFile() string { return filepath.Join(p.DataDir, ".env") }

// CacheFile holds the bookmark snapshot.
func (p Paths) CacheFile() string { return filepath.Join(p.CacheDir, "bookmarks.json") }

// LockFile is held by a running background refresh.
func (p Paths) LockFile() string { return filepath.Join(p.CacheDir, "refresh.lock") }

// LogFile receives background refresh logs.
func (p Paths) LogFile() string { return filepath.Join(p.CacheDir, "refresh.log") }

// Settings is the in-memory representation of settings.yaml.
type Settings struct {
	APIBaseURL  string        `yaml:"api_base_url"`
	Staleness   time.Duration `yaml:"staleness"`
	ResultLimit int           `yaml:"result_limit"`
	Icon        string        `yaml:"icon"`
	Output      string        `yaml:"output"`
	LogLevel    string        `yaml:"log_level"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`
}

// DefaultSettings returns the settings used when settings.yaml is absent.
func DefaultSettings() Settings {
	return Settings{
		APIBaseURL:  "https://api.pinboard.in/v1",
		Staleness:   10 * time.Minute,
		ResultLimit: 8,
		Icon:        "icon.png",
		Output:      "xml",
		LogLevel:    "warn",
	}
}

// Level parses LogLevel, defaulting to warn.
func (s Settings) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return l
}

// Config is everything a command needs to run.
type Config struct {
	Paths    Paths
	Settings Settings
	// TokenOverride comes from the environment and is never persisted.
	TokenOverride string
}

// Resolve builds a Config. getenv is consulted first, then the .env file in the data
// directory, then settings.yaml, then defaults.
func Resolve(getenv func(string) string) (*Config, error) {
	paths, err := resolvePaths(getenv)
	if err != nil {
		return nil, err
	}

	dotenv, err := LoadDotEnv(paths.DotEnvFile())
	if err != nil {
		return nil, err
	}
	value := func(key string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return strings.TrimSpace(dotenv[key])
	}

	settings, err := LoadSettings(paths.SettingsFile())
	if err != nil {
		return nil, err
	}
	if v := value(EnvAPIURL); v != "" {
		settings.APIBaseURL = v
	}
	if v := value(EnvStaleness); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvStaleness, v, err)
		}
		settings.Staleness = d
	}
	if v := value(EnvOutput); v != "" {
		settings.Output = v
	}
	if v := value(EnvLogLevel); v != "" {
		settings.LogLevel = v
	}
	if err := settings.validate(); err != nil {
		return nil, err
	}

	return &Config{
		Paths:         paths,
		Settings:      settings,
		TokenOverride: value(EnvToken),
	}, nil
}

func resolvePaths(getenv func(string) string) (Paths, error) {
	p := Paths{
		DataDir:  getenv(EnvWorkflowData),
		CacheDir: getenv(EnvWorkflowCache),
	}
	if p.DataDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Paths{}, fmt.Errorf("cannot determine config directory: %w", err)
		}
		p.DataDir = filepath.Join(dir, appName)
	}
	if p.CacheDir == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return Paths{}, fmt.Errorf("cannot determine cache directory: %w", err)
		}
		p.CacheDir = filepath.Join(dir, appName)
	}
	return p, nil
}

// LoadSettings reads settings.yaml at path. A missing file yields DefaultSettings;
// keys absent from the file keep their defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("cannot read settings %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	return s, nil
}

func (s *Settings) validate() error {
	switch s.Output {
	case "xml", "json":
	default:
		return fmt.Errorf("invalid output format %q (expected xml or json)", s.Output)
	}
	if s.ResultLimit <= 0 {
		s.ResultLimit = DefaultSettings().ResultLimit
	}
	if s.Staleness <= 0 {
		s.Staleness = DefaultSettings().Staleness
	}
	if s.HTTPTimeout < 0 {
		return errors.New("http_timeout must not be negative")
	}
	return nil
}

// LoadDotEnv reads KEY=VALUE pairs from path. A missing file yields an empty map.
func LoadDotEnv(path string) (map[string]string, error) {
	m, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("cannot read dotenv file %s: %w", path, err)
	}
	return m, nil
}
