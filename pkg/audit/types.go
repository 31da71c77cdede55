// Package audit provides an operator action trail for the astrology console.
// It records which backend actions were dispatched, by whom, and how they
// ended, for debugging and compliance purposes.
package audit

import (
	"time"
)

// Event constants define the types of events that can be logged.
const (
	EventActionDispatched = "action.dispatched"
	EventActionCompleted  = "action.completed"
	EventActionFailed     = "action.failed"
	EventError            = "error"
)

// Origin constants identify where an action was initiated.
const (
	OriginCLI = "cli"
	OriginWeb = "web"
)

// AuditEntry represents a single audit log record capturing one event in an
// action's lifecycle.
type AuditEntry struct {
	// Sequence is a monotonically increasing sequence number for ordering entries.
	Sequence int64 `json:"sequence"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// TraceID correlates the dispatched/completed/failed events of a single
	// action, and matches the X-Request-ID sent to the backend.
	TraceID string `json:"traceId"`

	// Event is the type of event being logged (e.g., "action.completed").
	Event string `json:"event"`

	// Action is the catalog identifier of the action (e.g., "users.save").
	Action string `json:"action,omitempty"`

	// Origin records whether the action came from the CLI or the web console.
	Origin string `json:"origin,omitempty"`

	// Request contains information about the outbound backend request.
	Request *RequestInfo `json:"request,omitempty"`

	// Response contains information about the backend response.
	Response *ResponseInfo `json:"response,omitempty"`

	// Client contains information about the operator's client, when the
	// action came through the web console.
	Client *ClientInfo `json:"client,omitempty"`

	// Metadata contains additional contextual information.
	Metadata *EntryMetadata `json:"metadata,omitempty"`
}

// RequestInfo captures details about the outbound backend request.
// Headers are deliberately absent: the Authorization header must never reach
// the trail.
type RequestInfo struct {
	// Method is the HTTP method (GET, POST, etc.).
	Method string `json:"method"`

	// URL is the full backend URL the action resolved to.
	URL string `json:"url"`

	// BodySize is the size of the request body in bytes.
	BodySize int64 `json:"bodySize,omitempty"`

	// BodyPreview is a truncated preview of the request body.
	BodyPreview string `json:"bodyPreview,omitempty"`
}

// ResponseInfo captures details about the backend response.
type ResponseInfo struct {
	// StatusCode is the HTTP status code.
	StatusCode int `json:"statusCode"`

	// BodySize is the size of the response body in bytes.
	BodySize int64 `json:"bodySize,omitempty"`

	// BodyPreview is a truncated preview of the response body.
	BodyPreview string `json:"bodyPreview,omitempty"`

	// DurationMs is the time from dispatch to response in milliseconds.
	DurationMs int64 `json:"durationMs,omitempty"`
}

// ClientInfo captures details about the operator's client for web console
// actions.
type ClientInfo struct {
	// RemoteAddr is the client's IP address and port.
	RemoteAddr string `json:"remoteAddr"`

	// UserAgent is the User-Agent header value.
	UserAgent string `json:"userAgent,omitempty"`
}

// EntryMetadata contains additional contextual information for an audit entry.
type EntryMetadata struct {
	// Error contains error details if the event represents a failure.
	Error *ErrorInfo `json:"error,omitempty"`

	// Tags are arbitrary key-value pairs for additional context.
	Tags map[string]string `json:"tags,omitempty"`

	// Duration is the total processing time for the action in nanoseconds.
	Duration int64 `json:"duration,omitempty"`
}

// ErrorInfo captures details about a failure.
type ErrorInfo struct {
	// Code is a machine-readable failure kind (e.g., "timeout", "connection").
	Code string `json:"code,omitempty"`

	// Message is a human-readable error description.
	Message string `json:"message"`
}

// NewAuditEntry creates a new AuditEntry with the current timestamp.
func NewAuditEntry(event string, traceID string) *AuditEntry {
	return &AuditEntry{
		Timestamp: time.Now(),
		TraceID:   traceID,
		Event:     event,
	}
}

// WithAction sets the action identifier on the audit entry.
func (e *AuditEntry) WithAction(action string) *AuditEntry {
	e.Action = action
	return e
}

// WithOrigin sets the origin on the audit entry.
func (e *AuditEntry) WithOrigin(origin string) *AuditEntry {
	e.Origin = origin
	return e
}

// WithRequest adds request information to the audit entry.
func (e *AuditEntry) WithRequest(req *RequestInfo) *AuditEntry {
	e.Request = req
	return e
}

// WithResponse adds response information to the audit entry.
func (e *AuditEntry) WithResponse(resp *ResponseInfo) *AuditEntry {
	e.Response = resp
	return e
}

// WithClient adds client information to the audit entry.
func (e *AuditEntry) WithClient(client *ClientInfo) *AuditEntry {
	e.Client = client
	return e
}

// WithMetadata adds metadata to the audit entry.
func (e *AuditEntry) WithMetadata(meta *EntryMetadata) *AuditEntry {
	e.Metadata = meta
	return e
}
