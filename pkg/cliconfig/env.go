package cliconfig

import "os"

// Environment variable names
const (
	EnvBaseURL   = "ASTROCTL_BASE_URL"
	EnvToken     = "ASTROCTL_TOKEN"
	EnvContext   = "ASTROCTL_CONTEXT"
	EnvLogLevel  = "ASTROCTL_LOG_LEVEL"
	EnvLogFormat = "ASTROCTL_LOG_FORMAT"
	EnvLogFile   = "ASTROCTL_LOG_FILE"
	EnvVerbose   = "ASTROCTL_VERBOSE"

	// EnvBaseURLAlias is the variable the backend deployment scripts export.
	// It is honored when ASTROCTL_BASE_URL is unset.
	EnvBaseURLAlias = "API_BASE_URL"
)

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present in the environment.
func LoadEnvConfig(cfg *CLIConfig) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	// ASTROCTL_BASE_URL, with API_BASE_URL as a lower-priority alias
	if v := GetBaseURLFromEnv(); v != "" {
		cfg.BaseURL = v
		cfg.Sources["baseUrl"] = SourceEnv
	}

	// ASTROCTL_CONTEXT
	if v := os.Getenv(EnvContext); v != "" {
		cfg.DefaultContext = v
		cfg.Sources["defaultContext"] = SourceEnv
	}

	// ASTROCTL_LOG_LEVEL
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		cfg.Sources["logLevel"] = SourceEnv
	}

	// ASTROCTL_LOG_FORMAT
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		cfg.Sources["logFormat"] = SourceEnv
	}

	// ASTROCTL_LOG_FILE
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
		cfg.Sources["logFile"] = SourceEnv
	}

	// ASTROCTL_VERBOSE
	if v := os.Getenv(EnvVerbose); v != "" {
		cfg.Verbose = v == "true" || v == "1" || v == "yes"
		cfg.Sources["verbose"] = SourceEnv
	}
}

// GetBaseURLFromEnv returns the base URL from the environment.
// ASTROCTL_BASE_URL wins over the API_BASE_URL alias. Returns empty string
// if neither is set.
func GetBaseURLFromEnv() string {
	if v := os.Getenv(EnvBaseURL); v != "" {
		return v
	}
	return os.Getenv(EnvBaseURLAlias)
}

// GetTokenFromEnv returns the bearer token from environment variable.
// Returns empty string if not set.
func GetTokenFromEnv() string {
	return os.Getenv(EnvToken)
}

// GetContextFromEnv returns the context name from environment variable.
// Returns empty string if not set.
func GetContextFromEnv() string {
	return os.Getenv(EnvContext)
}
