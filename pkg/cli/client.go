package cli

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/astrobooklet/astroctl/pkg/audit"
	"github.com/astrobooklet/astroctl/pkg/cli/internal/output"
	"github.com/astrobooklet/astroctl/pkg/cliconfig"
	"github.com/astrobooklet/astroctl/pkg/gateway"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// EnvAuditLog names the file the CLI appends its action trail to. Unset
// means no trail.
const EnvAuditLog = "ASTROCTL_AUDIT_LOG"

// newGatewayClient resolves the connection settings for this invocation and
// returns a client bound to them. Resolution happens from scratch every call
// so a corrected base URL or token takes effect immediately.
func newGatewayClient() *gateway.Client {
	cfg := cliconfig.ResolveClientConfig(flagBaseURL, flagToken, flagContext)
	return gateway.New(gateway.Config{
		BaseURL: cfg.BaseURL,
		Token:   cfg.Token,
	},
		gateway.WithLogger(log),
		gateway.WithUserAgent("astroctl/"+Version),
	)
}

// newRecorder builds the action trail recorder. The CLI trail is opt-in via
// ASTROCTL_AUDIT_LOG; without it every record is dropped.
func newRecorder() *audit.Recorder {
	path := os.Getenv(EnvAuditLog)
	if path == "" {
		return audit.NewRecorder(nil, nil, audit.OriginCLI)
	}

	cfg := &audit.AuditConfig{
		Enabled:    true,
		Level:      audit.LevelInfo,
		OutputFile: path,
	}
	logger, err := audit.NewLogger(cfg)
	if err != nil {
		output.Warn("audit log unavailable: %v", err)
		return audit.NewRecorder(nil, nil, audit.OriginCLI)
	}
	return audit.NewRecorder(logger, cfg, audit.OriginCLI)
}

// dispatchAction runs one catalog action end to end: resolve config, record
// the dispatch, perform the call, record the result. It never returns an
// error; the outcome carries failures.
func dispatchAction(cmd *cobra.Command, id gateway.ActionID, p gateway.Params) gateway.Outcome {
	client := newGatewayClient()
	rec := newRecorder()
	defer func() { _ = rec.Close() }()

	p.TraceID = uuid.NewString()
	req := auditRequestInfo(client.Config().BaseURL, id, p)
	rec.ActionDispatched(string(id), p.TraceID, req, nil)

	start := time.Now()
	out := client.Do(cmd.Context(), id, p)
	elapsed := time.Since(start)

	if out.Kind == gateway.OutcomeResponse {
		rec.ActionCompleted(string(id), p.TraceID, req, &audit.ResponseInfo{
			StatusCode: out.Status,
			BodySize:   int64(len(out.Body.Raw)),
			DurationMs: elapsed.Milliseconds(),
		}, nil)
	} else {
		rec.ActionFailed(string(id), p.TraceID, req, &audit.ErrorInfo{
			Code:    string(out.Failure.Kind),
			Message: out.Failure.Message,
		}, elapsed, nil)
	}

	return out
}

// runAction dispatches an action and renders its outcome. Most commands are
// exactly this.
func runAction(cmd *cobra.Command, id gateway.ActionID, p gateway.Params) error {
	return emitOutcome(id, dispatchAction(cmd, id, p))
}

// auditRequestInfo describes the request for the trail. The URL is rebuilt
// best-effort; an unresolvable action still gets a record with the template.
func auditRequestInfo(baseURL string, id gateway.ActionID, p gateway.Params) *audit.RequestInfo {
	action, ok := gateway.Lookup(id)
	if !ok {
		return &audit.RequestInfo{URL: baseURL}
	}

	u, err := action.BuildURL(baseURL, p)
	if err != nil {
		u = baseURL + action.PathTemplate
	}

	info := &audit.RequestInfo{
		Method: action.Method,
		URL:    u,
	}
	if p.Body != nil {
		preview := gateway.Pretty(p.Body)
		info.BodySize = int64(len(preview))
		info.BodyPreview = preview
	}
	return info
}

// parseUserID validates a positional user ID argument. IDs are opaque to the
// backend contract but a stray flag landing here is a common slip, so reject
// anything flag-shaped.
func parseUserID(arg string) (string, error) {
	if arg == "" {
		return "", fmt.Errorf("user ID is required")
	}
	if arg[0] == '-' {
		return "", fmt.Errorf("invalid user ID %q", arg)
	}
	if _, err := url.Parse(arg); err != nil {
		return "", fmt.Errorf("invalid user ID %q: %w", arg, err)
	}
	return arg, nil
}
