package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// OutcomeKind classifies the result of one dispatch.
type OutcomeKind string

// Outcome kinds.
const (
	// OutcomeResponse means an HTTP response was received, whatever its status.
	OutcomeResponse OutcomeKind = "response"
	// OutcomeTransport means the request never produced an HTTP response.
	OutcomeTransport OutcomeKind = "transport_error"
	// OutcomeConfig means the request was rejected before any network I/O.
	OutcomeConfig OutcomeKind = "config_error"
)

// FailureKind classifies a non-response outcome per the error taxonomy.
type FailureKind string

// Failure kinds.
const (
	FailureConnection FailureKind = "connection"
	FailureTimeout    FailureKind = "timeout"
	FailureRequest    FailureKind = "request"
	FailureConfig     FailureKind = "config"
)

// Failure carries the classified reason a dispatch produced no response.
type Failure struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() error { return f.Err }

// BodyKind tags how a response body was interpreted.
type BodyKind string

// Body kinds.
const (
	// BodyJSON means the body parsed as JSON; JSON holds the value.
	BodyJSON BodyKind = "json"
	// BodyText means the body did not parse; only Raw is meaningful.
	BodyText BodyKind = "text"
)

// Body is a response body as a tagged variant: parsed JSON when the bytes
// decode, raw text otherwise. Raw always holds the original bytes.
type Body struct {
	Kind BodyKind
	JSON any
	Raw  []byte
}

func newBody(raw []byte) Body {
	var v any
	if err := json.Unmarshal(raw, &v); err == nil {
		return Body{Kind: BodyJSON, JSON: v, Raw: raw}
	}
	return Body{Kind: BodyText, Raw: raw}
}

// Outcome is the single result of one dispatch. Exactly one is produced per
// call: a response (any status), a transport failure, or a config error.
type Outcome struct {
	Kind    OutcomeKind
	TraceID string

	// Response outcome fields.
	Status int
	Body   Body

	// Failure fields, set unless Kind is OutcomeResponse.
	Failure *Failure
}

func responseOutcome(traceID string, status int, raw []byte) Outcome {
	return Outcome{
		Kind:    OutcomeResponse,
		TraceID: traceID,
		Status:  status,
		Body:    newBody(raw),
	}
}

func failureOutcome(traceID string, f Failure) Outcome {
	kind := OutcomeTransport
	if f.Kind == FailureConfig {
		kind = OutcomeConfig
	}
	return Outcome{Kind: kind, TraceID: traceID, Failure: &f}
}

func configErrorOutcome(message string) Outcome {
	return failureOutcome("", Failure{Kind: FailureConfig, Message: message})
}

// RenderKind classifies how an outcome should be presented.
type RenderKind string

// Render kinds.
const (
	// RenderData is a parsed success payload.
	RenderData RenderKind = "data"
	// RenderRawText is a success body that did not parse as JSON.
	RenderRawText RenderKind = "raw_text"
	// RenderError is an application error (status >= 400).
	RenderError RenderKind = "error"
	// RenderFailure is a transport failure or config error.
	RenderFailure RenderKind = "failure"
)

// Rendered is the display form of an outcome. Data is set for parsed bodies
// (including parsed error bodies) so callers can branch on fields.
type Rendered struct {
	Kind    RenderKind
	Status  int
	Data    any
	Text    string
	Message string
}

// RenderOutcome interprets an outcome for display. Success bodies degrade to
// raw text when unparsable; error bodies surface their detail field, falling
// back to "Unknown error" or the raw text.
func RenderOutcome(o Outcome) Rendered {
	if o.Kind != OutcomeResponse {
		return Rendered{Kind: RenderFailure, Message: o.Failure.Message}
	}

	if o.Status < 400 {
		if o.Body.Kind == BodyJSON {
			return Rendered{Kind: RenderData, Status: o.Status, Data: o.Body.JSON}
		}
		return Rendered{Kind: RenderRawText, Status: o.Status, Text: string(o.Body.Raw)}
	}

	r := Rendered{Kind: RenderError, Status: o.Status}
	if o.Body.Kind == BodyJSON {
		r.Data = o.Body.JSON
		r.Message = fmt.Sprintf("Error %d: %s", o.Status, errorDetail(o.Body.JSON))
		return r
	}
	r.Message = fmt.Sprintf("Error %d: %s", o.Status, string(o.Body.Raw))
	return r
}

// errorDetail extracts the backend's detail field from a parsed error body.
func errorDetail(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return "Unknown error"
	}
	d, ok := m["detail"]
	if !ok || d == nil {
		return "Unknown error"
	}
	if s, ok := d.(string); ok {
		return s
	}
	// FastAPI validation errors carry detail as a list of objects.
	if enc, err := json.Marshal(d); err == nil {
		return string(enc)
	}
	return fmt.Sprint(d)
}

// Pretty formats a value as indented JSON for display. HTML escaping is off
// so Unicode and markup characters stay legible.
func Pretty(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
