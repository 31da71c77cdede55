package cliconfig

// ClientConfig holds resolved configuration for talking to the backend.
// This is the single source of truth for CLI commands needing to connect.
type ClientConfig struct {
	// BaseURL is the resolved backend root URL
	BaseURL string

	// Token is the resolved bearer token (may be empty; requests then go out
	// unauthenticated)
	Token string

	// Context is the resolved context name
	Context string

	// Sources tracks where BaseURL and Token came from (for `config view`
	// and doctor output)
	Sources map[string]string
}

// ResolveClientConfig resolves all client configuration from various sources.
// Pass empty strings for flag values that weren't provided.
// Priority for each field: flag > env > context > config file > default
//
// Resolution happens from scratch on every call so each invocation observes
// the current flags, environment and files.
func ResolveClientConfig(flagBaseURL, flagToken, flagContext string) *ClientConfig {
	cfg := &ClientConfig{
		Context: ResolveContext(flagContext),
		Sources: make(map[string]string),
	}

	cfg.BaseURL = ResolveBaseURLWithContext(flagBaseURL, flagContext)
	cfg.Sources["baseUrl"] = baseURLSource(flagBaseURL, flagContext)

	cfg.Token = ResolveTokenWithContext(flagToken, flagContext)
	cfg.Sources["token"] = tokenSource(flagToken, flagContext)

	return cfg
}

func baseURLSource(flagBaseURL, flagContext string) string {
	switch {
	case flagBaseURL != "":
		return SourceFlag
	case GetBaseURLFromEnv() != "":
		return SourceEnv
	default:
		name := ResolveContext(flagContext)
		if ctx := GetContextByName(name); ctx != nil && ctx.BaseURL != "" {
			return SourceContext
		}
		if cfg, err := LoadAll(); err == nil && cfg.BaseURL != "" {
			if src, ok := cfg.Sources["baseUrl"]; ok {
				return src
			}
		}
		return SourceDefault
	}
}

func tokenSource(flagToken, flagContext string) string {
	switch {
	case flagToken != "":
		return SourceFlag
	case GetTokenFromEnv() != "":
		return SourceEnv
	default:
		name := ResolveContext(flagContext)
		if ctx := GetContextByName(name); ctx != nil && ctx.Token != "" {
			return SourceContext
		}
		return SourceDefault
	}
}
