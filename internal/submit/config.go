package submit

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds the submission endpoint configuration.
type Config struct {
	// BaseURL is the scheme and host of the endpoint, e.g. "http://localhost:3001".
	BaseURL string

	// FormPath receives the full answer record. Default: "/form2".
	FormPath string

	// NamePath receives a lone name for the name check. Default: "/form1".
	NamePath string

	// Timeout bounds a single request. Default: 10s.
	Timeout time.Duration
}

// DefaultConfig returns a Config pointing at the local development server.
func DefaultConfig() Config {
	return Config{
		BaseURL:  "http://localhost:3001",
		FormPath: "/form2",
		NamePath: "/form1",
		Timeout:  10 * time.Second,
	}
}

// Validate checks that the endpoint is usable.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("endpoint is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("parse endpoint %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint %q must use http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint %q has no host", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

func (c Config) url(path string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
