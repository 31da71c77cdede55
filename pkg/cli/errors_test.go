package cli

import (
	"strings"
	"testing"

	"github.com/astrobooklet/astroctl/pkg/gateway"
)

func TestFormatFailure_ConnectionSuggestions(t *testing.T) {
	out := gateway.Outcome{
		Kind: gateway.OutcomeTransport,
		Failure: &gateway.Failure{
			Kind:    gateway.FailureConnection,
			Message: "Connection failed. Is the backend running at http://localhost:8010?",
		},
	}

	got := FormatFailure(out)
	if !strings.Contains(got, "Connection failed") {
		t.Errorf("missing failure message: %q", got)
	}
	if !strings.Contains(got, "Suggestions:") {
		t.Errorf("connection failures should carry suggestions: %q", got)
	}
	if !strings.Contains(got, "astroctl doctor") {
		t.Errorf("suggestions should mention doctor: %q", got)
	}
}

func TestFormatFailure_PlainForOtherKinds(t *testing.T) {
	out := gateway.Outcome{
		Kind: gateway.OutcomeTransport,
		Failure: &gateway.Failure{
			Kind:    gateway.FailureTimeout,
			Message: "Request timed out",
		},
	}

	got := FormatFailure(out)
	if got != "Error: Request timed out" {
		t.Errorf("got %q", got)
	}
	if strings.Contains(got, "Suggestions:") {
		t.Error("timeouts should not carry connection suggestions")
	}
}
