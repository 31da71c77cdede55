package audit

import (
	"time"

	"github.com/astrobooklet/astroctl/pkg/util"
)

// Recorder emits the audit events for one action lifecycle: dispatched when
// the backend call goes out, then completed or failed when it returns. Both
// the CLI and the web console drive their trails through a Recorder.
//
// Dispatched events log at debug level, completed at info, failed at error,
// so the default info level keeps one entry per finished action.
type Recorder struct {
	logger AuditLogger
	config *AuditConfig
	origin string
}

// NewRecorder creates a Recorder writing to the given logger.
// A nil logger or config is replaced with safe defaults.
func NewRecorder(logger AuditLogger, config *AuditConfig, origin string) *Recorder {
	if logger == nil {
		logger = &NoOpLogger{}
	}
	if config == nil {
		config = DefaultAuditConfig()
	}
	return &Recorder{
		logger: logger,
		config: config,
		origin: origin,
	}
}

// ActionDispatched records that an action's backend request went out.
func (r *Recorder) ActionDispatched(action, traceID string, req *RequestInfo, client *ClientInfo) {
	if !r.config.ShouldLog(LevelDebug) {
		return
	}
	entry := NewAuditEntry(EventActionDispatched, traceID).
		WithAction(action).
		WithOrigin(r.origin).
		WithRequest(r.clampRequest(req)).
		WithClient(client)
	r.log(entry)
}

// ActionCompleted records a finished action with its backend response.
func (r *Recorder) ActionCompleted(action, traceID string, req *RequestInfo, resp *ResponseInfo, client *ClientInfo) {
	if !r.config.ShouldLog(LevelInfo) {
		return
	}
	entry := NewAuditEntry(EventActionCompleted, traceID).
		WithAction(action).
		WithOrigin(r.origin).
		WithRequest(r.clampRequest(req)).
		WithResponse(r.clampResponse(resp)).
		WithClient(client)
	if resp != nil {
		entry.WithMetadata(&EntryMetadata{
			Duration: resp.DurationMs * int64(time.Millisecond),
		})
	}
	r.log(entry)
}

// ActionFailed records an action that never produced a backend response.
func (r *Recorder) ActionFailed(action, traceID string, req *RequestInfo, errInfo *ErrorInfo, duration time.Duration, client *ClientInfo) {
	if !r.config.ShouldLog(LevelError) {
		return
	}
	entry := NewAuditEntry(EventActionFailed, traceID).
		WithAction(action).
		WithOrigin(r.origin).
		WithRequest(r.clampRequest(req)).
		WithClient(client).
		WithMetadata(&EntryMetadata{
			Error:    errInfo,
			Duration: duration.Nanoseconds(),
		})
	r.log(entry)
}

// Close closes the underlying logger.
func (r *Recorder) Close() error {
	return r.logger.Close()
}

func (r *Recorder) log(entry *AuditEntry) {
	// Trail failures must not disturb the action itself.
	_ = r.logger.Log(*entry)
}

func (r *Recorder) maxPreview() int {
	if r.config.MaxBodyPreviewSize > 0 {
		return r.config.MaxBodyPreviewSize
	}
	return 1024
}

func (r *Recorder) clampRequest(req *RequestInfo) *RequestInfo {
	if req == nil {
		return nil
	}
	clamped := *req
	clamped.BodyPreview = util.TruncateBody(req.BodyPreview, r.maxPreview())
	return &clamped
}

func (r *Recorder) clampResponse(resp *ResponseInfo) *ResponseInfo {
	if resp == nil {
		return nil
	}
	clamped := *resp
	clamped.BodyPreview = util.TruncateBody(resp.BodyPreview, r.maxPreview())
	return &clamped
}
