// Package cliconfig provides configuration types and loading for the astroctl CLI.
package cliconfig

// CLIConfig represents the complete configuration for the astroctl CLI.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Active context (contexts.json)
// 4. Local config file (.astroctlrc.yaml in current directory)
// 5. Global config file (~/.config/astroctl/config.yaml)
// 6. Default values (lowest priority)
type CLIConfig struct {
	// Backend settings
	BaseURL string `yaml:"baseUrl" json:"baseUrl"`

	// DefaultContext selects the context when none is given on the command line.
	DefaultContext string `yaml:"defaultContext,omitempty" json:"defaultContext,omitempty"`

	// Logging settings
	LogLevel  string `yaml:"logLevel,omitempty" json:"logLevel,omitempty"`
	LogFormat string `yaml:"logFormat,omitempty" json:"logFormat,omitempty"`
	LogFile   string `yaml:"logFile,omitempty" json:"logFile,omitempty"`

	// Output settings
	Verbose bool `yaml:"verbose" json:"verbose"`
	JSON    bool `yaml:"json" json:"json"`

	// SetFields records which keys were explicitly present in a loaded file,
	// so merging can tell an explicit false from an absent boolean.
	SetFields map[string]bool `yaml:"-" json:"-"`

	// Sources tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceContext = "context"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)
