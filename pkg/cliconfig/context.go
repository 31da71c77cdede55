package cliconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ContextConfigFileName is the name of the context configuration file.
const ContextConfigFileName = "contexts.json"

// ContextConfigVersion is the current version of the context config schema.
const ContextConfigVersion = 1

// DefaultContextName is the name of the default context.
const DefaultContextName = "local"

// ContextConfig holds the user's named backend configurations.
// This is stored separately from CLIConfig so switching deployments does not
// disturb file-based settings.
type ContextConfig struct {
	// Version is the config schema version for future migrations
	Version int `json:"version"`

	// CurrentContext is the name of the currently active context
	CurrentContext string `json:"currentContext"`

	// Contexts maps context names to their configuration
	Contexts map[string]*Context `json:"contexts"`
}

// Context represents a named backend deployment.
// Similar to kubectl contexts - allows quick switching between different
// astrology backends (local, staging, production, etc.)
type Context struct {
	// BaseURL is the root of the backend API (e.g., "http://localhost:8010")
	BaseURL string `json:"baseUrl"`

	// Token is an optional bearer token saved for this context. Tokens are
	// written here only when the user asks for it explicitly; the usual path
	// is the --token flag or ASTROCTL_TOKEN, which live only for the session.
	Token string `json:"token,omitempty"`

	// Description is an optional human-readable description
	Description string `json:"description,omitempty"`
}

// NewDefaultContextConfig creates a new ContextConfig with default values.
func NewDefaultContextConfig() *ContextConfig {
	return &ContextConfig{
		Version:        ContextConfigVersion,
		CurrentContext: DefaultContextName,
		Contexts: map[string]*Context{
			DefaultContextName: {
				BaseURL:     DefaultBaseURL,
				Description: "Local astrology backend",
			},
		},
	}
}

// GetContextConfigPath returns the path to the context config file.
func GetContextConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(configDir, GlobalConfigDir, ContextConfigFileName), nil
}

// LoadContextConfig loads the context configuration from disk.
// If the file doesn't exist, returns a default configuration.
func LoadContextConfig() (*ContextConfig, error) {
	path, err := GetContextConfigPath()
	if err != nil {
		return NewDefaultContextConfig(), nil
	}
	return LoadContextConfigFromPath(path)
}

// LoadContextConfigFromPath loads the context configuration from a specific
// file. A missing file yields the default configuration.
func LoadContextConfigFromPath(path string) (*ContextConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDefaultContextConfig(), nil
		}
		return nil, fmt.Errorf("failed to read context config: %w", err)
	}

	var cfg ContextConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		cerr := &ConfigError{
			Path:    path,
			Message: fmt.Sprintf("invalid JSON: %s", err.Error()),
		}
		var syn *json.SyntaxError
		if errors.As(err, &syn) {
			cerr.Line, cerr.Column = FindLineColumn(data, syn.Offset)
		}
		return nil, cerr
	}

	// Initialize map if nil
	if cfg.Contexts == nil {
		cfg.Contexts = make(map[string]*Context)
	}

	// Ensure default context exists
	if _, exists := cfg.Contexts[DefaultContextName]; !exists && len(cfg.Contexts) == 0 {
		cfg.Contexts[DefaultContextName] = &Context{
			BaseURL:     DefaultBaseURL,
			Description: "Local astrology backend",
		}
		if cfg.CurrentContext == "" {
			cfg.CurrentContext = DefaultContextName
		}
	}

	return &cfg, nil
}

// SaveContextConfig saves the context configuration to disk.
// The file may hold tokens, so it is written owner-readable only.
func SaveContextConfig(cfg *ContextConfig) error {
	path, err := GetContextConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode context config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write context config: %w", err)
	}

	return nil
}

// GetCurrentContext returns the currently active context.
// Returns nil if no context is set or the context doesn't exist.
func (c *ContextConfig) GetCurrentContext() *Context {
	if c.CurrentContext == "" {
		return nil
	}
	return c.Contexts[c.CurrentContext]
}

// SetCurrentContext switches to the named context.
// Returns an error if the context doesn't exist.
func (c *ContextConfig) SetCurrentContext(name string) error {
	if _, exists := c.Contexts[name]; !exists {
		return fmt.Errorf("context not found: %s", name)
	}
	c.CurrentContext = name
	return nil
}

// AddContext adds a new context with the given name.
// Returns an error if a context with that name already exists.
func (c *ContextConfig) AddContext(name string, ctx *Context) error {
	if _, exists := c.Contexts[name]; exists {
		return fmt.Errorf("context already exists: %s", name)
	}
	if c.Contexts == nil {
		c.Contexts = make(map[string]*Context)
	}
	c.Contexts[name] = ctx
	return nil
}

// RemoveContext removes a context by name.
// Returns an error if the context doesn't exist or is the current context.
func (c *ContextConfig) RemoveContext(name string) error {
	if _, exists := c.Contexts[name]; !exists {
		return fmt.Errorf("context not found: %s", name)
	}
	if c.CurrentContext == name {
		return errors.New("cannot remove current context; switch to another context first")
	}
	delete(c.Contexts, name)
	return nil
}

// ResolveContext resolves which context to use.
// Priority: explicit flag > env var > current context
func ResolveContext(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envCtx := GetContextFromEnv(); envCtx != "" {
		return envCtx
	}
	cfg, err := LoadContextConfig()
	if err != nil {
		return DefaultContextName
	}
	return cfg.CurrentContext
}

// GetContextByName returns a specific context by name.
// Returns nil if not found.
func GetContextByName(name string) *Context {
	cfg, err := LoadContextConfig()
	if err != nil {
		return nil
	}
	return cfg.Contexts[name]
}

// ResolveBaseURLWithContext resolves the base URL considering a context override.
// Priority: flag > env > named context > current context > config file > default
func ResolveBaseURLWithContext(flagBaseURL, flagContext string) string {
	if flagBaseURL != "" {
		return flagBaseURL
	}
	if url := GetBaseURLFromEnv(); url != "" {
		return url
	}

	// If a context flag is given, use that context
	contextName := ResolveContext(flagContext)
	if ctx := GetContextByName(contextName); ctx != nil && ctx.BaseURL != "" {
		return ctx.BaseURL
	}

	// Fall back to file-based config
	if cfg, err := LoadAll(); err == nil && cfg.BaseURL != "" {
		return cfg.BaseURL
	}

	return DefaultBaseURL
}

// ResolveTokenWithContext resolves the bearer token considering a context override.
// Priority: flag > env > named context token > empty (unauthenticated)
func ResolveTokenWithContext(flagToken, flagContext string) string {
	if flagToken != "" {
		return flagToken
	}
	if tok := GetTokenFromEnv(); tok != "" {
		return tok
	}

	contextName := ResolveContext(flagContext)
	if ctx := GetContextByName(contextName); ctx != nil && ctx.Token != "" {
		return ctx.Token
	}

	return ""
}
