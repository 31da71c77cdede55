// Package webconsole serves the embedded web console: a single-page UI plus
// a small JSON API that runs catalog actions through the gateway.
package webconsole

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix is the namespace for console environment variables, e.g.
// ASTROCTL_LISTEN.
const envPrefix = "astroctl"

// Config holds the console server configuration.
type Config struct {
	// Listen is the address the console binds to.
	Listen string `envconfig:"LISTEN" default:":8780"`

	// BaseURL is the backend the console dispatches against.
	BaseURL string `envconfig:"BASE_URL"`

	// Token is the bearer token for authenticated actions.
	Token string `envconfig:"TOKEN"`

	// AuditLog, when set, appends an entry per dispatched action to this
	// file.
	AuditLog string `envconfig:"AUDIT_LOG"`

	ReadHeaderTimeout time.Duration `envconfig:"READ_HEADER_TIMEOUT" default:"3s"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

// LoadConfig builds a Config from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config before the server starts.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return errors.New("listen address is required")
	}
	if c.BaseURL == "" {
		return errors.New("backend base URL is required")
	}
	return nil
}
