package cli

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/astrobooklet/astroctl/pkg/gateway"
)

// captureStderr runs fn with os.Stderr redirected and returns what was written.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w
	defer func() { os.Stderr = old }()

	fn()

	_ = w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}

func TestEmitOutcome_ErrorPrintedOnce(t *testing.T) {
	out := gateway.Outcome{
		Kind:   gateway.OutcomeResponse,
		Status: 404,
		Body:   gateway.Body{Kind: gateway.BodyText, Raw: []byte("User not found")},
	}

	var err error
	stderr := captureStderr(t, func() {
		err = emitOutcome(gateway.ActionGetUser, out)
	})

	if got := strings.Count(stderr, "User not found"); got != 1 {
		t.Errorf("message appeared %d times on stderr, want 1:\n%s", got, stderr)
	}
	// The sentinel tells Execute the message is already on screen, so it
	// must exit 1 without repeating it.
	if !errors.Is(err, errReported) {
		t.Errorf("err = %v, want errReported", err)
	}
}

func TestEmitOutcome_FailurePrintedOnce(t *testing.T) {
	out := gateway.Outcome{
		Kind: gateway.OutcomeTransport,
		Failure: &gateway.Failure{
			Kind:    gateway.FailureTimeout,
			Message: "Request timed out",
		},
	}

	var err error
	stderr := captureStderr(t, func() {
		err = emitOutcome(gateway.ActionListUsers, out)
	})

	if got := strings.Count(stderr, "Request timed out"); got != 1 {
		t.Errorf("message appeared %d times on stderr, want 1:\n%s", got, stderr)
	}
	if !errors.Is(err, errReported) {
		t.Errorf("err = %v, want errReported", err)
	}
}
