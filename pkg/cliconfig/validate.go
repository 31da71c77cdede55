package cliconfig

import (
	"fmt"
	"net/url"
)

// Validate checks that the configuration holds usable values.
func (c *CLIConfig) Validate() error {
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("baseUrl %q is not a valid URL: %w", c.BaseURL, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("baseUrl %q must use http or https", c.BaseURL)
		}
		if u.Host == "" {
			return fmt.Errorf("baseUrl %q has no host", c.BaseURL)
		}
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logLevel %q is not one of: debug, info, warn, error", c.LogLevel)
	}

	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("logFormat %q is not one of: text, json", c.LogFormat)
	}

	return nil
}
