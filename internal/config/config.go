// Package config resolves checkform settings from defaults, a YAML file
// and CHECKFORM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/checkform/internal/labels"
	"github.com/abhisek/checkform/internal/store"
	"github.com/abhisek/checkform/internal/submit"
)

// Config holds all checkform configuration.
type Config struct {
	// Endpoint is the base URL of the submission server.
	Endpoint string `yaml:"endpoint"`
	FormPath string `yaml:"form_path"`
	NamePath string `yaml:"name_path"`

	// Timeout bounds a single submission request.
	Timeout Duration `yaml:"timeout"`

	// Locale selects the label catalog: "it" or "en".
	Locale string `yaml:"locale"`

	// DB is the submission journal path. Empty means the XDG default.
	DB string `yaml:"db"`

	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

// Duration is a time.Duration read from strings like "10s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// DefaultConfig returns a Config pointing at the local development server.
func DefaultConfig() Config {
	sc := submit.DefaultConfig()
	return Config{
		Endpoint: sc.BaseURL,
		FormPath: sc.FormPath,
		NamePath: sc.NamePath,
		Timeout:  Duration(sc.Timeout),
		Locale:   labels.DefaultLocale,
		LogLevel: "info",
	}
}

// Load builds a Config from defaults, the YAML file at path and the
// environment, in increasing precedence. An empty path reads the default
// file if it exists; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("CHECKFORM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("CHECKFORM_FORM_PATH"); v != "" {
		cfg.FormPath = v
	}
	if v := os.Getenv("CHECKFORM_NAME_PATH"); v != "" {
		cfg.NamePath = v
	}
	if v := os.Getenv("CHECKFORM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CHECKFORM_TIMEOUT: %w", err)
		}
		cfg.Timeout = Duration(d)
	}
	if v := os.Getenv("CHECKFORM_LANG"); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv("CHECKFORM_DB"); v != "" {
		cfg.DB = v
	}
	if v := os.Getenv("CHECKFORM_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("CHECKFORM_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return nil
}

// Validate rejects settings the app cannot run with.
func (c Config) Validate() error {
	if err := c.Submit().Validate(); err != nil {
		return err
	}
	if !labels.Has(c.Locale) {
		return fmt.Errorf("unknown locale %q (available: %v)", c.Locale, labels.Locales())
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// Submit returns the submission client settings.
func (c Config) Submit() submit.Config {
	return submit.Config{
		BaseURL:  c.Endpoint,
		FormPath: c.FormPath,
		NamePath: c.NamePath,
		Timeout:  time.Duration(c.Timeout),
	}
}

// DBPath returns the journal path, creating its directory.
func (c Config) DBPath() (string, error) {
	if c.DB == "" {
		return store.DefaultDBPath()
	}
	return c.DB, store.EnsureDir(c.DB)
}

// LogPath returns the log file path, creating its directory.
func (c Config) LogPath() (string, error) {
	p := c.LogFile
	if p == "" {
		dir, err := xdgDir("XDG_STATE_HOME", ".local", "state")
		if err != nil {
			return "", err
		}
		p = filepath.Join(dir, "checkform", "checkform.log")
	}
	return p, store.EnsureDir(p)
}

// DefaultPath returns $XDG_CONFIG_HOME/checkform/config.yaml.
func DefaultPath() (string, error) {
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "checkform", "config.yaml"), nil
}

func xdgDir(env string, fallback ...string) (string, error) {
	if v := os.Getenv(env); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(append([]string{home}, fallback...)...), nil
}
