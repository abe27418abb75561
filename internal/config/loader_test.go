package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}
	return path
}

// isolatedLoader never touches the user's real config files.
func isolatedLoader(t *testing.T) (*Loader, string) {
	t.Helper()
	dir := t.TempDir()
	return &Loader{
		configPaths: []string{
			filepath.Join(dir, "project.yaml"),
			filepath.Join(dir, "user.yaml"),
			filepath.Join(dir, "system.yaml"),
		},
		dotEnvPath: filepath.Join(dir, ".env"),
	}, dir
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader returned nil")
	}
	if len(loader.configPaths) != 3 {
		t.Errorf("Expected 3 config paths, got %d", len(loader.configPaths))
	}
	if loader.dotEnvPath != ".env" {
		t.Errorf("Expected .env dotenv path, got %s", loader.dotEnvPath)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	loader, _ := isolatedLoader(t)

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}
	if cfg.Service.Endpoint != "http://127.0.0.1:5000" {
		t.Errorf("Expected default endpoint, got %s", cfg.Service.Endpoint)
	}
	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("Expected default output format text, got %s", cfg.Output.DefaultFormat)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "test-config.yaml", `version: "1.0"
service:
  endpoint: "http://scoring.internal:9000"
  timeout: 5s
input:
  max_length: 280
  warn_length: 200
output:
  default_format: "json"
  verbose: true
`)

	loader, _ := isolatedLoader(t)
	cfg, err := loader.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config from file: %v", err)
	}

	if cfg.Service.Endpoint != "http://scoring.internal:9000" {
		t.Errorf("Expected endpoint from file, got %s", cfg.Service.Endpoint)
	}
	if cfg.Service.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", cfg.Service.Timeout)
	}
	if cfg.Input.MaxLength != 280 {
		t.Errorf("Expected max length 280, got %d", cfg.Input.MaxLength)
	}
	if cfg.Output.DefaultFormat != "json" {
		t.Errorf("Expected output format json, got %s", cfg.Output.DefaultFormat)
	}
	if !cfg.Output.Verbose {
		t.Errorf("Expected verbose to be true")
	}
	// untouched sections keep their defaults
	if cfg.Chart.Width != 800 {
		t.Errorf("Expected default chart width 800, got %d", cfg.Chart.Width)
	}
}

func TestLoadConfigPriority(t *testing.T) {
	loader, dir := isolatedLoader(t)
	writeConfig(t, dir, "system.yaml", "service:\n  endpoint: \"http://system:1\"\nchart:\n  width: 640\n")
	writeConfig(t, dir, "project.yaml", "service:\n  endpoint: \"http://project:2\"\n")

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Service.Endpoint != "http://project:2" {
		t.Errorf("Expected project config to win, got %s", cfg.Service.Endpoint)
	}
	if cfg.Chart.Width != 640 {
		t.Errorf("Expected system chart width 640, got %d", cfg.Chart.Width)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "invalid-config.yaml", `version: "1.0"
output:
  default_format: "json
  verbose: true
`)

	loader, _ := isolatedLoader(t)
	if _, err := loader.LoadConfig(configPath); err == nil {
		t.Error("Expected error loading invalid YAML config, but got none")
	}
}

func TestLoadConfigDotEnv(t *testing.T) {
	const key = "TEXTPULSE_SERVICE_ENDPOINT"
	_ = os.Unsetenv(key)
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	loader, dir := isolatedLoader(t)
	writeConfig(t, dir, ".env", key+"=http://from-dotenv:7000\n")

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Service.Endpoint != "http://from-dotenv:7000" {
		t.Errorf("Expected endpoint from .env, got %s", cfg.Service.Endpoint)
	}
}

func TestLoadConfigDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	t.Setenv("TEXTPULSE_SERVICE_ENDPOINT", "http://from-env:8000")

	loader, dir := isolatedLoader(t)
	writeConfig(t, dir, ".env", "TEXTPULSE_SERVICE_ENDPOINT=http://from-dotenv:7000\n")

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Service.Endpoint != "http://from-env:8000" {
		t.Errorf("Expected process environment to win, got %s", cfg.Service.Endpoint)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TEXTPULSE_SERVICE_ENDPOINT", "http://env:5001")
	t.Setenv("TEXTPULSE_SERVICE_TIMEOUT", "3s")
	t.Setenv("TEXTPULSE_INPUT_MAX_LENGTH", "500")
	t.Setenv("TEXTPULSE_OUTPUT_VERBOSE", "true")
	t.Setenv("TEXTPULSE_SERVER_ADDRESS", "127.0.0.1:9090")

	loader := NewLoader()
	cfg := DefaultConfig()

	if err := loader.applyEnvOverrides(cfg); err != nil {
		t.Fatalf("Failed to apply env overrides: %v", err)
	}

	if cfg.Service.Endpoint != "http://env:5001" {
		t.Errorf("Expected endpoint http://env:5001, got %s", cfg.Service.Endpoint)
	}
	if cfg.Service.Timeout != 3*time.Second {
		t.Errorf("Expected timeout 3s, got %v", cfg.Service.Timeout)
	}
	if cfg.Input.MaxLength != 500 {
		t.Errorf("Expected max length 500, got %d", cfg.Input.MaxLength)
	}
	if !cfg.Output.Verbose {
		t.Errorf("Expected verbose to be true")
	}
	if cfg.Server.Address != "127.0.0.1:9090" {
		t.Errorf("Expected server address 127.0.0.1:9090, got %s", cfg.Server.Address)
	}
}

func TestApplyEnvOverridesInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"invalid int", "TEXTPULSE_INPUT_MAX_LENGTH", "not-a-number"},
		{"invalid bool", "TEXTPULSE_OUTPUT_VERBOSE", "not-a-bool"},
		{"invalid duration", "TEXTPULSE_SERVICE_TIMEOUT", "not-a-duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.value)

			loader := NewLoader()
			cfg := DefaultConfig()

			if err := loader.applyEnvOverrides(cfg); err == nil {
				t.Error("Expected error for invalid env var value, but got none")
			}
		})
	}
}

func TestParseHelpers(t *testing.T) {
	var d time.Duration
	if err := parseDuration("30s", &d); err != nil || d != 30*time.Second {
		t.Errorf("Expected 30s, got %v (err %v)", d, err)
	}
	if err := parseDuration("invalid", &d); err == nil {
		t.Error("Expected error for invalid duration, but got none")
	}

	var n int
	if err := parseInt("42", &n); err != nil || n != 42 {
		t.Errorf("Expected 42, got %d (err %v)", n, err)
	}
	if err := parseInt("not-a-number", &n); err == nil {
		t.Error("Expected error for invalid int, but got none")
	}

	var b bool
	if err := parseBool("true", &b); err != nil || !b {
		t.Errorf("Expected true, got %v (err %v)", b, err)
	}
	if err := parseBool("not-a-bool", &b); err == nil {
		t.Error("Expected error for invalid bool, but got none")
	}
}

func TestValidateConfigPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
		errMsg  string
	}{
		{name: "valid yaml file", path: "config.yaml"},
		{name: "valid yml file", path: "config.yml"},
		{name: "relative path with valid extension", path: "./configs/app.yaml"},
		{
			name:    "path traversal attempt",
			path:    "../../../etc/passwd",
			wantErr: true,
			errMsg:  "path traversal not allowed",
		},
		{
			name:    "non-yaml file",
			path:    "config.txt",
			wantErr: true,
			errMsg:  "config file must have .yaml or .yml extension",
		},
		{
			name:    "proc filesystem access",
			path:    "/proc/version.yaml",
			wantErr: true,
			errMsg:  "access to system files not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfigPath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got none")
				} else if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Expected error message to contain '%s', got '%s'", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandPath("~/x/config.yaml"); got != filepath.Join(home, "x/config.yaml") {
		t.Errorf("Expected expanded home path, got %s", got)
	}
	if got := expandPath("/etc/textpulse/config.yaml"); got != "/etc/textpulse/config.yaml" {
		t.Errorf("Expected absolute path unchanged, got %s", got)
	}
}
