// Package config loads radstar settings from a YAML file, creating it with
// defaults on first run, then applies environment overrides and validates.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/radstar/internal/casebook"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the on-disk settings file.
type Config struct {
	Theme        string        `yaml:"theme" validate:"oneof=dark light"`
	DefaultCase  string        `yaml:"default_case" validate:"required"`
	DefaultDepth string        `yaml:"default_depth" validate:"required,depth"`
	Guided       bool          `yaml:"guided"`
	Journal      JournalConfig `yaml:"journal"`
	Log          LogConfig     `yaml:"log"`
	Serve        ServeConfig   `yaml:"serve"`

	// Path is the file the config was read from.
	Path string `yaml:"-"`
	// Created is true when Load wrote a fresh default file.
	Created bool `yaml:"-"`
}

type JournalConfig struct {
	Enabled bool `yaml:"enabled"`
	// Path overrides the default database location. Empty means DefaultDBPath.
	Path string `yaml:"path"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

type ServeConfig struct {
	Addr   string `yaml:"addr" validate:"required,hostname_port"`
	Assets string `yaml:"assets"`
}

// Default returns the settings written on first run.
func Default() Config {
	return Config{
		Theme:        "dark",
		DefaultCase:  casebook.DefaultID,
		DefaultDepth: casebook.DepthClinicalApplication.String(),
		Journal:      JournalConfig{Enabled: true},
		Log:          LogConfig{Level: "info"},
		Serve:        ServeConfig{Addr: "127.0.0.1:8787"},
	}
}

// Depth returns DefaultDepth parsed, falling back to clinical application.
func (c Config) Depth() casebook.Depth {
	d, _ := casebook.ParseDepth(c.DefaultDepth)
	return d
}

// DefaultPath resolves the config file path:
// 1. $XDG_CONFIG_HOME/radstar/config.yaml
// 2. ~/.config/radstar/config.yaml
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "radstar", "config.yaml"), nil
}

// Load reads the config at path (DefaultPath when empty), creating it with
// defaults if it does not exist. Fields missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	created := false
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, err
		}
		created = true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	cfg.Created = created
	return cfg, nil
}

// Parse decodes YAML over the defaults, applies environment overrides and
// validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv overrides fields from RADSTAR_THEME and RADSTAR_DB.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("RADSTAR_THEME")); v != "" {
		c.Theme = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("RADSTAR_DB")); v != "" {
		c.Journal.Path = v
	}
}

// Validate checks struct tags; failures wrap ErrInvalid.
func (c *Config) Validate() error {
	if err := validate().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s=%q)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Update applies fn to the settings stored at c.Path and writes them back.
// Environment and flag overrides held by c are not persisted; fn is applied
// to c as well.
func (c *Config) Update(fn func(*Config)) error {
	if c.Path == "" {
		return errors.New("config has no path")
	}
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	stored := Default()
	if err := yaml.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	fn(&stored)
	if err := stored.Validate(); err != nil {
		return err
	}
	if err := write(c.Path, stored); err != nil {
		return err
	}
	fn(c)
	return nil
}

func createDefault(path string) error {
	return write(path, Default())
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

var (
	validateOnce   sync.Once
	configValidate *validator.Validate
)

func validate() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("depth", func(fl validator.FieldLevel) bool {
			_, ok := casebook.ParseDepth(fl.Field().String())
			return ok
		})
		configValidate = v
	})
	return configValidate
}
