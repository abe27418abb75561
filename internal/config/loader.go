package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.textpulse.yaml",               // Project-specific config (highest priority)
	"~/.config/textpulse/config.yaml", // User config
	"/etc/textpulse/config.yaml",      // System config (lowest priority)
}

// DotEnvFile is read before environment overrides are applied.
// Variables already present in the process environment win.
const DotEnvFile = ".env"

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	dotEnvPath  string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		dotEnvPath:  DotEnvFile,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables (including a local .env file)
// 3. ./.textpulse.yaml
// 4. ~/.config/textpulse/config.yaml
// 5. /etc/textpulse/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// lowest priority first
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if !fileExists(expandedPath) {
				continue
			}
			if err := l.loadFromFile(config, expandedPath); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
			}
		}
	}

	if err := l.loadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", l.dotEnvPath, err)
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file and merges it with existing config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() before reaching here
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	mergeConfigs(config, &fileConfig)
	return nil
}

// loadDotEnv populates the process environment from the .env file, if any
func (l *Loader) loadDotEnv() error {
	if l.dotEnvPath == "" || !fileExists(l.dotEnvPath) {
		return nil
	}
	return godotenv.Load(l.dotEnvPath)
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Service Config
		"TEXTPULSE_SERVICE_ENDPOINT": func(v string) error { config.Service.Endpoint = v; return nil },
		"TEXTPULSE_SERVICE_TIMEOUT":  func(v string) error { return parseDuration(v, &config.Service.Timeout) },

		// Input Config
		"TEXTPULSE_INPUT_MAX_LENGTH":  func(v string) error { return parseInt(v, &config.Input.MaxLength) },
		"TEXTPULSE_INPUT_WARN_LENGTH": func(v string) error { return parseInt(v, &config.Input.WarnLength) },

		// Output Config
		"TEXTPULSE_OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		"TEXTPULSE_OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },
		"TEXTPULSE_OUTPUT_VERBOSE":        func(v string) error { return parseBool(v, &config.Output.Verbose) },
		"TEXTPULSE_OUTPUT_THEME":          func(v string) error { config.Output.Theme = v; return nil },
		"TEXTPULSE_OUTPUT_LOG_FILE":       func(v string) error { config.Output.LogFile = v; return nil },

		// Chart Config
		"TEXTPULSE_CHART_WIDTH":  func(v string) error { return parseInt(v, &config.Chart.Width) },
		"TEXTPULSE_CHART_HEIGHT": func(v string) error { return parseInt(v, &config.Chart.Height) },
		"TEXTPULSE_CHART_FORMAT": func(v string) error { config.Chart.Format = v; return nil },

		// Server Config
		"TEXTPULSE_SERVER_ADDRESS": func(v string) error { config.Server.Address = v; return nil },
		"TEXTPULSE_SERVER_MODE":    func(v string) error { config.Server.Mode = v; return nil },

		// Watch Config
		"TEXTPULSE_WATCH_FORMAT": func(v string) error { config.Watch.Format = v; return nil },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/proc/") || strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// mergeConfigs merges source config into destination config.
// Only non-zero values from source overwrite destination.
func mergeConfigs(dst, src *Config) {
	if src.Version != "" {
		dst.Version = src.Version
	}

	if src.Service.Endpoint != "" {
		dst.Service.Endpoint = src.Service.Endpoint
	}
	if src.Service.Timeout != 0 {
		dst.Service.Timeout = src.Service.Timeout
	}

	if src.Input.MaxLength != 0 {
		dst.Input.MaxLength = src.Input.MaxLength
	}
	if src.Input.WarnLength != 0 {
		dst.Input.WarnLength = src.Input.WarnLength
	}

	mergeOutputConfig(&dst.Output, &src.Output)

	if src.Chart.Width != 0 {
		dst.Chart.Width = src.Chart.Width
	}
	if src.Chart.Height != 0 {
		dst.Chart.Height = src.Chart.Height
	}
	if src.Chart.Format != "" {
		dst.Chart.Format = src.Chart.Format
	}

	if src.Server.Address != "" {
		dst.Server.Address = src.Server.Address
	}
	if src.Server.Mode != "" {
		dst.Server.Mode = src.Server.Mode
	}

	if src.Watch.Format != "" {
		dst.Watch.Format = src.Watch.Format
	}
}

func mergeOutputConfig(dst, src *OutputConfig) {
	if src.DefaultFormat != "" {
		dst.DefaultFormat = src.DefaultFormat
	}
	if src.ColorMode != "" {
		dst.ColorMode = src.ColorMode
	}
	if src.Theme != "" {
		dst.Theme = src.Theme
	}
	if src.LogFile != "" {
		dst.LogFile = src.LogFile
	}
	// A false in YAML is indistinguishable from an absent key; only true is merged.
	// TEXTPULSE_OUTPUT_VERBOSE=false can still turn it off.
	if src.Verbose {
		dst.Verbose = true
	}
}

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
