package cli

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/astrobooklet/astroctl/pkg/cliconfig"
	"github.com/astrobooklet/astroctl/pkg/gateway"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose common setup issues",
	Long:  `Diagnose common setup issues: configuration, connectivity, and credentials.`,
	Example: `  # Run all checks against the resolved configuration
  astroctl doctor

  # Check a specific backend
  astroctl doctor --base-url http://staging:8010`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// doctorCheck holds the result of a single doctor check.
type doctorCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "ok", "fail", "info"
	Detail string `json:"detail"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	client := cliconfig.ResolveClientConfig(flagBaseURL, flagToken, flagContext)

	allPassed := true
	var checks []doctorCheck

	add := func(c doctorCheck) {
		checks = append(checks, c)
		if c.Status == "fail" {
			allPassed = false
		}
	}

	// Check 1: base URL well-formed
	add(checkBaseURL(client.BaseURL))

	// Check 2: backend reachable
	add(checkBackendReachable(cmd, client.BaseURL, client.Token))

	// Check 3: config file parses
	add(checkConfigFile())

	// Check 4: contexts file parses and current context exists
	add(checkContexts())

	// Check 5: token inspection
	add(checkToken(client.Token))

	// Check 6: .env presence
	add(checkDotEnv())

	printResult(map[string]any{"checks": checks, "allPassed": allPassed}, func() {
		fmt.Println("astroctl doctor")
		fmt.Println("===============")
		fmt.Println()
		for _, c := range checks {
			switch c.Status {
			case "ok":
				fmt.Printf("  ✓ %s: %s\n", c.Name, c.Detail)
			case "fail":
				fmt.Printf("  ✗ %s: %s\n", c.Name, c.Detail)
			default:
				fmt.Printf("  • %s: %s\n", c.Name, c.Detail)
			}
		}
		fmt.Println()
		if allPassed {
			fmt.Println("All checks passed!")
		} else {
			fmt.Println("Some checks failed. See above for details.")
		}
	})

	return nil
}

// checkBaseURL validates the resolved base URL shape.
func checkBaseURL(baseURL string) doctorCheck {
	u, err := url.Parse(baseURL)
	switch {
	case err != nil:
		return doctorCheck{Name: "base_url_format", Status: "fail", Detail: err.Error()}
	case u.Scheme != "http" && u.Scheme != "https":
		return doctorCheck{Name: "base_url_format", Status: "fail", Detail: fmt.Sprintf("%s: scheme must be http or https", baseURL)}
	case u.Host == "":
		return doctorCheck{Name: "base_url_format", Status: "fail", Detail: fmt.Sprintf("%s: missing host", baseURL)}
	default:
		return doctorCheck{Name: "base_url_format", Status: "ok", Detail: baseURL}
	}
}

// checkBackendReachable probes the health endpoint with a short timeout.
func checkBackendReachable(cmd *cobra.Command, baseURL, token string) doctorCheck {
	gw := gateway.New(gateway.Config{BaseURL: baseURL, Token: token}, gateway.WithLogger(log))
	action, _ := gateway.Lookup(gateway.ActionHealth)
	u, err := action.BuildURL(baseURL, gateway.Params{})
	if err != nil {
		return doctorCheck{Name: "backend_reachable", Status: "fail", Detail: err.Error()}
	}
	out := gw.Dispatch(cmd.Context(), action.Method, u, gateway.RequestOptions{
		Headers: gw.BuildHeaders(false),
		Timeout: 2 * time.Second,
	})
	if out.Kind == gateway.OutcomeResponse && out.Status == 200 {
		return doctorCheck{Name: "backend_reachable", Status: "ok", Detail: "health endpoint responding"}
	}
	if out.Kind == gateway.OutcomeResponse {
		return doctorCheck{Name: "backend_reachable", Status: "fail", Detail: fmt.Sprintf("health endpoint returned %d", out.Status)}
	}
	return doctorCheck{Name: "backend_reachable", Status: "fail", Detail: out.Failure.Message}
}

// checkConfigFile reports whether the global and local config files parse.
func checkConfigFile() doctorCheck {
	cfg, err := cliconfig.LoadAll()
	if err != nil {
		return doctorCheck{Name: "config_file", Status: "fail", Detail: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return doctorCheck{Name: "config_file", Status: "fail", Detail: err.Error()}
	}
	if src, ok := cfg.Sources["baseUrl"]; ok && src != cliconfig.SourceDefault {
		return doctorCheck{Name: "config_file", Status: "ok", Detail: "loaded (" + src + ")"}
	}
	return doctorCheck{Name: "config_file", Status: "info", Detail: "none found, using defaults"}
}

// checkContexts reports on the contexts file and the current context.
func checkContexts() doctorCheck {
	cfg, err := cliconfig.LoadContextConfig()
	if err != nil {
		return doctorCheck{Name: "contexts_file", Status: "fail", Detail: err.Error()}
	}
	if cfg.CurrentContext == "" {
		return doctorCheck{Name: "contexts_file", Status: "info", Detail: "no current context set"}
	}
	if cfg.GetCurrentContext() == nil {
		return doctorCheck{Name: "contexts_file", Status: "fail", Detail: fmt.Sprintf("current context %q not defined", cfg.CurrentContext)}
	}
	return doctorCheck{Name: "contexts_file", Status: "ok", Detail: fmt.Sprintf("current context %q", cfg.CurrentContext)}
}

// checkToken peeks at the resolved token without verifying it. A JWT gets an
// expiry check; anything else is reported as opaque.
func checkToken(token string) doctorCheck {
	if token == "" {
		return doctorCheck{Name: "token", Status: "info", Detail: "not set; authenticated actions will be rejected by the backend"}
	}

	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return doctorCheck{Name: "token", Status: "ok", Detail: "opaque token (not a JWT)"}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return doctorCheck{Name: "token", Status: "ok", Detail: "JWT without expiry"}
	}
	if exp.Before(time.Now()) {
		return doctorCheck{Name: "token", Status: "fail", Detail: fmt.Sprintf("JWT expired at %s", exp.Format(time.RFC3339))}
	}
	return doctorCheck{Name: "token", Status: "ok", Detail: fmt.Sprintf("JWT valid until %s", exp.Format(time.RFC3339))}
}

// checkDotEnv reports whether a .env file exists in the working directory.
func checkDotEnv() doctorCheck {
	if _, err := os.Stat(".env"); err == nil {
		return doctorCheck{Name: "env_file", Status: "ok", Detail: ".env found"}
	}
	return doctorCheck{Name: "env_file", Status: "info", Detail: "no .env in working directory"}
}
