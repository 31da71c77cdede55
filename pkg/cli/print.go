package cli

import (
	"fmt"
	"os"

	"github.com/astrobooklet/astroctl/pkg/cli/internal/output"
	"github.com/astrobooklet/astroctl/pkg/gateway"
)

// printResult outputs a single operation result.
//
// Contract: when --json is active, ONLY the JSON encoding of data is written
// to stdout. Human-readable prose (progress messages, hints) must go to stderr
// or be omitted entirely. textFn is called only in text mode.
func printResult(data any, textFn func()) {
	if jsonOutput {
		_ = output.JSON(data)
		return
	}
	textFn()
}

// outcomeEnvelope is the JSON form of a rendered outcome, shared by --json
// mode and the web console API.
type outcomeEnvelope struct {
	Action  string `json:"action"`
	Kind    string `json:"kind"`
	Status  int    `json:"status,omitempty"`
	Data    any    `json:"data,omitempty"`
	Text    string `json:"text,omitempty"`
	Message string `json:"message,omitempty"`
	TraceID string `json:"traceId,omitempty"`
}

func newEnvelope(id gateway.ActionID, out gateway.Outcome) outcomeEnvelope {
	r := gateway.RenderOutcome(out)
	return outcomeEnvelope{
		Action:  string(id),
		Kind:    string(r.Kind),
		Status:  r.Status,
		Data:    r.Data,
		Text:    r.Text,
		Message: r.Message,
		TraceID: out.TraceID,
	}
}

// emitOutcome renders one dispatch result. Text mode prints data outcomes as
// pretty JSON on stdout and error or failure messages on stderr; --json mode
// prints the envelope. The returned error is non-nil for error and failure
// outcomes so Execute() exits 1.
func emitOutcome(id gateway.ActionID, out gateway.Outcome) error {
	r := gateway.RenderOutcome(out)

	if jsonOutput {
		env := newEnvelope(id, out)
		if v, ok := applyQuery(queryExpr, env.Data); ok {
			env.Data = v
		}
		if err := output.JSON(env); err != nil {
			return err
		}
		if r.Kind == gateway.RenderError || r.Kind == gateway.RenderFailure {
			// The envelope already carries the message.
			return errReported
		}
		return nil
	}

	switch r.Kind {
	case gateway.RenderData:
		data := r.Data
		if v, ok := applyQuery(queryExpr, data); ok {
			data = v
		}
		fmt.Println(gateway.Pretty(data))
		return nil
	case gateway.RenderRawText:
		fmt.Println(r.Text)
		return nil
	case gateway.RenderError:
		fmt.Fprintln(os.Stderr, r.Message)
		return errReported
	default:
		fmt.Fprintln(os.Stderr, FormatFailure(out))
		return errReported
	}
}
