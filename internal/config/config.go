package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Service ServiceConfig `yaml:"service" json:"service"`
	Input   InputConfig   `yaml:"input" json:"input"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Chart   ChartConfig   `yaml:"chart" json:"chart"`
	Server  ServerConfig  `yaml:"server" json:"server"`
	Watch   WatchConfig   `yaml:"watch" json:"watch"`
}

// ServiceConfig configures the remote analysis service
type ServiceConfig struct {
	Endpoint string        `yaml:"endpoint" json:"endpoint"` // base URL of the scoring API
	Timeout  time.Duration `yaml:"timeout" json:"timeout"`   // per-request timeout
}

// InputConfig bounds the text a user may submit
type InputConfig struct {
	MaxLength  int `yaml:"max_length" json:"max_length"`   // hard limit, edits beyond it are rejected
	WarnLength int `yaml:"warn_length" json:"warn_length"` // counter turns to warning color above this
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // json|text|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`               // default verbosity
	Theme         string `yaml:"theme" json:"theme"`                   // default|high-contrast|minimal
	LogFile       string `yaml:"log_file" json:"log_file"`             // diagnostics file used by the terminal UI
}

// ChartConfig configures exported trend charts
type ChartConfig struct {
	Width  int    `yaml:"width" json:"width"`
	Height int    `yaml:"height" json:"height"`
	Format string `yaml:"format" json:"format"` // png|svg
}

// ServerConfig configures the web dashboard
type ServerConfig struct {
	Address string `yaml:"address" json:"address"`
	Mode    string `yaml:"mode" json:"mode"` // debug|release|test
}

// WatchConfig configures the file watcher
type WatchConfig struct {
	Format string `yaml:"format" json:"format"` // raw|auto|json|logfmt|text
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Service: ServiceConfig{
			Endpoint: "http://127.0.0.1:5000",
			Timeout:  30 * time.Second,
		},
		Input: InputConfig{
			MaxLength:  1000,
			WarnLength: 450,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
			Theme:         "default",
			LogFile:       "",
		},
		Chart: ChartConfig{
			Width:  800,
			Height: 400,
			Format: "png",
		},
		Server: ServerConfig{
			Address: ":8080",
			Mode:    "release",
		},
		Watch: WatchConfig{
			Format: "raw",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateServiceConfig(); err != nil {
		return err
	}
	if err := c.validateInputConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateChartConfig(); err != nil {
		return err
	}
	if err := c.validateServerConfig(); err != nil {
		return err
	}
	return c.validateWatchConfig()
}

func (c *Config) validateServiceConfig() error {
	if c.Service.Endpoint == "" {
		return fmt.Errorf("service endpoint is required")
	}
	u, err := url.Parse(c.Service.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid service endpoint: %s", c.Service.Endpoint)
	}
	if c.Service.Timeout < 0 {
		return fmt.Errorf("service timeout must be non-negative")
	}
	return nil
}

func (c *Config) validateInputConfig() error {
	if c.Input.MaxLength < 1 {
		return fmt.Errorf("max_length must be greater than 0")
	}
	if c.Input.WarnLength < 0 {
		return fmt.Errorf("warn_length must be non-negative")
	}
	if c.Input.WarnLength > c.Input.MaxLength {
		return fmt.Errorf("warn_length must not exceed max_length")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	if c.Output.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.Output.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.Output.Theme)
		}
	}
	return nil
}

func (c *Config) validateChartConfig() error {
	if c.Chart.Width < 100 || c.Chart.Height < 100 {
		return fmt.Errorf("chart width and height must be at least 100 pixels")
	}
	if c.Chart.Format != "" && c.Chart.Format != "png" && c.Chart.Format != "svg" {
		return fmt.Errorf("invalid chart format: %s (must be one of: png, svg)", c.Chart.Format)
	}
	return nil
}

func (c *Config) validateServerConfig() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server address is required")
	}
	if c.Server.Mode != "" {
		validModes := map[string]bool{
			"debug":   true,
			"release": true,
			"test":    true,
		}
		if !validModes[c.Server.Mode] {
			return fmt.Errorf("invalid server mode: %s (must be one of: debug, release, test)", c.Server.Mode)
		}
	}
	return nil
}

func (c *Config) validateWatchConfig() error {
	if c.Watch.Format == "" {
		return nil
	}
	validFormats := map[string]bool{
		"raw":    true,
		"auto":   true,
		"json":   true,
		"logfmt": true,
		"text":   true,
	}
	if !validFormats[c.Watch.Format] {
		return fmt.Errorf("invalid watch format: %s (must be one of: raw, auto, json, logfmt, text)", c.Watch.Format)
	}
	return nil
}
