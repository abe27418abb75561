package scoring

import (
	"net/url"
	"time"
)

// Config holds the analysis service client configuration
type Config struct {
	// BaseURL is the service root, e.g. http://127.0.0.1:5000
	BaseURL string `json:"base_url"`

	// Timeout bounds every request
	Timeout time.Duration `json:"timeout"`
}

// DefaultConfig returns the configuration for a locally running service
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "http://127.0.0.1:5000",
		Timeout: 30 * time.Second,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return NewConfigurationError("base_url", "base URL is required")
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return NewConfigurationError("base_url", "invalid base URL: "+err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return NewConfigurationError("base_url", "scheme must be http or https")
	}

	if c.Timeout <= 0 {
		return NewConfigurationError("timeout", "timeout must be positive")
	}

	return nil
}
