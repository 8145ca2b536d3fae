// Package config loads the wasend YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/entrhq/wasend/pkg/browser"
	"github.com/entrhq/wasend/pkg/logging"
	"github.com/entrhq/wasend/pkg/whatsapp"
)

// Config is the content of config.yaml.
type Config struct {
	// Browser is chrome, edge or firefox
	Browser string `yaml:"browser" json:"browser"`

	// WaitSeconds is the implicit wait applied to element lookups
	WaitSeconds float64 `yaml:"wait_seconds" json:"wait_seconds"`

	// LoginWait is how long a send waits for a QR code scan
	LoginWait time.Duration `yaml:"login_wait" json:"login_wait"`

	// StepDelay separates the file dialog keystrokes
	StepDelay time.Duration `yaml:"step_delay" json:"step_delay"`

	// Headless launches the browser without a window
	Headless bool `yaml:"headless" json:"headless"`

	// LogLevel is debug, info, warn or error
	LogLevel string `yaml:"log_level" json:"log_level"`

	// Selectors overrides entries of the default selector map
	Selectors whatsapp.SelectorOverrides `yaml:"selectors,omitempty" json:"selectors,omitempty"`
}

// DefaultWaitSeconds is the implicit wait used when none is configured.
// Navigation returns once the DOM is loaded, well before WhatsApp Web has
// rendered its chat view.
const DefaultWaitSeconds = 10

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Browser:     string(browser.KindChrome),
		WaitSeconds: DefaultWaitSeconds,
		LoginWait:   whatsapp.DefaultLoginWait,
		StepDelay:   whatsapp.DefaultStepDelay,
		LogLevel:    "info",
	}
}

// DefaultPath returns ~/.wasend/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".wasend", "config.yaml"), nil
}

// Load reads the configuration at path on top of the defaults. With an
// empty path the default location is used and a missing file is not an
// error; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path atomically, creating the directory if needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp config file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// MarshalYAML writes durations in their string form ("20s"), which is
// the only form yaml.v3 decodes back into a time.Duration.
func (c Config) MarshalYAML() (interface{}, error) {
	return struct {
		Browser     string                     `yaml:"browser"`
		WaitSeconds float64                    `yaml:"wait_seconds"`
		LoginWait   string                     `yaml:"login_wait"`
		StepDelay   string                     `yaml:"step_delay"`
		Headless    bool                       `yaml:"headless"`
		LogLevel    string                     `yaml:"log_level"`
		Selectors   whatsapp.SelectorOverrides `yaml:"selectors,omitempty"`
	}{
		Browser:     c.Browser,
		WaitSeconds: c.WaitSeconds,
		LoginWait:   c.LoginWait.String(),
		StepDelay:   c.StepDelay.String(),
		Headless:    c.Headless,
		LogLevel:    c.LogLevel,
		Selectors:   c.Selectors,
	}, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := browser.ParseKind(c.Browser); err != nil {
		return err
	}
	if c.WaitSeconds < 0 {
		return fmt.Errorf("%w: wait_seconds must not be negative", whatsapp.ErrInvalidArgument)
	}
	if c.LoginWait < 0 || c.StepDelay < 0 {
		return fmt.Errorf("%w: login_wait and step_delay must not be negative", whatsapp.ErrInvalidArgument)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return whatsapp.DefaultSelectors().Merge(c.Selectors).Validate()
}

// ClientOptions returns the whatsapp.Client options this configuration
// describes.
func (c *Config) ClientOptions() []whatsapp.Option {
	opts := []whatsapp.Option{
		whatsapp.WithBrowserOptions(browser.Options{Headless: c.Headless}),
		whatsapp.WithLoginWait(c.LoginWait),
		whatsapp.WithStepDelay(c.StepDelay),
	}
	if len(c.Selectors) > 0 {
		opts = append(opts, whatsapp.WithSelectors(c.Selectors))
	}
	return opts
}
