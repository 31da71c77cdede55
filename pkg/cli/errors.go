package cli

import (
	"errors"
	"fmt"

	"github.com/astrobooklet/astroctl/pkg/gateway"
)

// errReported marks a command failure whose message was already written to
// the terminal. Execute exits 1 without printing it a second time.
var errReported = errors.New("command failed")

// FormatFailure returns a user-friendly message for a transport failure or
// config error outcome.
func FormatFailure(out gateway.Outcome) string {
	if out.Failure == nil {
		return "unknown failure"
	}
	if out.Failure.Kind == gateway.FailureConnection {
		return fmt.Sprintf(`Error: %s

Suggestions:
  • Start the backend, or point astroctl at a running one with --base-url
  • Check the effective configuration with: astroctl config
  • Run diagnostics with: astroctl doctor`, out.Failure.Message)
	}
	return "Error: " + out.Failure.Message
}
