package gateway

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

// =============================================================================
// Dispatch — verb handling
// =============================================================================

// TestDispatch_VerbFidelity verifies each supported verb issues exactly one
// request with that verb against the given URL.
func TestDispatch_VerbFidelity(t *testing.T) {
	t.Parallel()

	for _, method := range []string{"GET", "POST", "PUT", "DELETE"} {
		t.Run(method, func(t *testing.T) {
			var calledMethod, calledPath string
			var calls int
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				calledMethod = r.Method
				calledPath = r.URL.Path
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"ok":true}`))
			}))
			defer ts.Close()

			client := New(Config{BaseURL: ts.URL})
			out := client.Dispatch(context.Background(), method, ts.URL+"/probe", RequestOptions{})

			if out.Kind != OutcomeResponse {
				t.Fatalf("Dispatch(%s) kind = %q, want response", method, out.Kind)
			}
			if calls != 1 {
				t.Errorf("Dispatch(%s) made %d requests, want 1", method, calls)
			}
			if calledMethod != method {
				t.Errorf("Dispatch(%s) used method %q", method, calledMethod)
			}
			if calledPath != "/probe" {
				t.Errorf("Dispatch(%s) called %q, want /probe", method, calledPath)
			}
		})
	}
}

// TestDispatch_LowercaseMethod verifies methods are normalized like the verb
// switch expects ("get" behaves as GET).
func TestDispatch_LowercaseMethod(t *testing.T) {
	t.Parallel()

	var calledMethod string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calledMethod = r.Method
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	client := New(Config{BaseURL: ts.URL})
	out := client.Dispatch(context.Background(), "get", ts.URL, RequestOptions{})

	if out.Kind != OutcomeResponse {
		t.Fatalf("kind = %q, want response", out.Kind)
	}
	if calledMethod != "GET" {
		t.Errorf("method = %q, want GET", calledMethod)
	}
}

// TestDispatch_UnsupportedMethod verifies an unknown verb short-circuits to a
// config-error outcome with zero network calls.
func TestDispatch_UnsupportedMethod(t *testing.T) {
	t.Parallel()

	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer ts.Close()

	client := New(Config{BaseURL: ts.URL})
	out := client.Dispatch(context.Background(), "PATCH", ts.URL, RequestOptions{})

	if out.Kind != OutcomeConfig {
		t.Fatalf("kind = %q, want config_error", out.Kind)
	}
	if out.Failure == nil || out.Failure.Kind != FailureConfig {
		t.Fatalf("failure = %+v, want config kind", out.Failure)
	}
	if !strings.Contains(out.Failure.Message, "Unsupported method") {
		t.Errorf("message = %q, want it to name the unsupported method", out.Failure.Message)
	}
	if calls != 0 {
		t.Errorf("made %d network calls, want 0", calls)
	}
}

// =============================================================================
// Dispatch — transport failure classification
// =============================================================================

// TestDispatch_ConnectionRefused verifies a refused connection becomes a
// transport outcome naming the base URL, and the client stays usable.
func TestDispatch_ConnectionRefused(t *testing.T) {
	t.Parallel()

	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	client := New(Config{BaseURL: deadURL})
	out := client.Dispatch(context.Background(), "GET", deadURL+"/users", RequestOptions{})

	if out.Kind != OutcomeTransport {
		t.Fatalf("kind = %q, want transport_error", out.Kind)
	}
	if out.Failure.Kind != FailureConnection {
		t.Fatalf("failure kind = %q, want connection", out.Failure.Kind)
	}
	if !strings.Contains(out.Failure.Message, deadURL) {
		t.Errorf("message = %q, want it to contain %q", out.Failure.Message, deadURL)
	}

	// The same client must work for an immediate retry against a live server.
	live := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer live.Close()

	retry := client.Dispatch(context.Background(), "GET", live.URL, RequestOptions{})
	if retry.Kind != OutcomeResponse {
		t.Fatalf("retry kind = %q, want response", retry.Kind)
	}
}

// TestDispatch_Timeout verifies deadline expiry is classified as a timeout,
// distinct from a generic transport error.
func TestDispatch_Timeout(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(250 * time.Millisecond)
	}))
	defer ts.Close()

	client := New(Config{BaseURL: ts.URL})
	out := client.Dispatch(context.Background(), "GET", ts.URL, RequestOptions{Timeout: 30 * time.Millisecond})

	if out.Kind != OutcomeTransport {
		t.Fatalf("kind = %q, want transport_error", out.Kind)
	}
	if out.Failure.Kind != FailureTimeout {
		t.Fatalf("failure kind = %q, want timeout", out.Failure.Kind)
	}
	if out.Failure.Message != "Request timed out" {
		t.Errorf("message = %q, want %q", out.Failure.Message, "Request timed out")
	}
}

// =============================================================================
// Dispatch — request construction
// =============================================================================

// TestDispatch_SetsTraceID verifies every request carries an X-Request-ID and
// the outcome reports the same value.
func TestDispatch_SetsTraceID(t *testing.T) {
	t.Parallel()

	var gotTraceID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTraceID = r.Header.Get(RequestIDHeader)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	client := New(Config{BaseURL: ts.URL})
	out := client.Dispatch(context.Background(), "GET", ts.URL, RequestOptions{})

	if gotTraceID == "" {
		t.Fatal("request had no X-Request-ID header")
	}
	if out.TraceID != gotTraceID {
		t.Errorf("outcome trace ID %q, header %q", out.TraceID, gotTraceID)
	}
}

// TestDispatch_CallerTraceID verifies a caller-supplied trace ID is used as-is.
func TestDispatch_CallerTraceID(t *testing.T) {
	t.Parallel()

	var gotTraceID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTraceID = r.Header.Get(RequestIDHeader)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	client := New(Config{BaseURL: ts.URL})
	out := client.Dispatch(context.Background(), "GET", ts.URL, RequestOptions{TraceID: "trace-custom"})

	if gotTraceID != "trace-custom" {
		t.Errorf("header trace ID = %q, want trace-custom", gotTraceID)
	}
	if out.TraceID != "trace-custom" {
		t.Errorf("outcome trace ID = %q, want trace-custom", out.TraceID)
	}
}

// TestDispatch_EncodesJSONBody verifies the Body option is marshaled and sent.
func TestDispatch_EncodesJSONBody(t *testing.T) {
	t.Parallel()

	var gotBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	client := New(Config{BaseURL: ts.URL})
	headers := client.BuildHeaders(false)
	out := client.Dispatch(context.Background(), "POST", ts.URL+"/users", RequestOptions{
		Headers: headers,
		Body:    UserPayload{FirstName: "Mara"},
	})

	if out.Kind != OutcomeResponse {
		t.Fatalf("kind = %q, want response", out.Kind)
	}
	if gotBody != `{"first_name":"Mara"}` {
		t.Errorf("body = %q, want exactly the partial payload", gotBody)
	}
}

// =============================================================================
// BuildHeaders
// =============================================================================

// TestBuildHeaders covers the auth matrix: the bearer header appears only
// when auth is requested and a token is configured.
func TestBuildHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		token       string
		requireAuth bool
		wantAuth    string
	}{
		{"auth with token", "s3cret", true, "Bearer s3cret"},
		{"auth without token", "", true, ""},
		{"no auth with token", "s3cret", false, ""},
		{"no auth without token", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := New(Config{BaseURL: "http://localhost:8010", Token: tt.token})
			h := client.BuildHeaders(tt.requireAuth)

			if got := h.Get("Accept"); got != "application/json" {
				t.Errorf("Accept = %q", got)
			}
			if got := h.Get("Content-Type"); got != "application/json" {
				t.Errorf("Content-Type = %q", got)
			}
			if got := h.Get("Authorization"); got != tt.wantAuth {
				t.Errorf("Authorization = %q, want %q", got, tt.wantAuth)
			}
		})
	}
}

// =============================================================================
// Do — catalog dispatch
// =============================================================================

// TestDo_ResolvesCatalogPaths verifies table-driven dispatch builds the same
// requests the catalog describes.
func TestDo_ResolvesCatalogPaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id         ActionID
		params     Params
		wantMethod string
		wantURI    string
	}{
		{ActionListUsers, Params{}, "GET", "/users"},
		{ActionGetUser, Params{Path: map[string]string{"id": "7"}}, "GET", "/users/7"},
		{ActionPlacements, Params{Path: map[string]string{"id": "7"}}, "GET", "/users/7/placements"},
		{ActionBigThree, Params{Path: map[string]string{"id": "7"}}, "GET", "/users/7/big-three"},
		{ActionBooklet, Params{Path: map[string]string{"id": "7"}}, "GET", "/users/7/booklet"},
		{ActionCalendar, Params{
			Path:  map[string]string{"id": "7"},
			Query: url.Values{"year": []string{"2026"}},
		}, "GET", "/users/7/calendar?year=2026"},
		{ActionHealth, Params{}, "GET", "/health"},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			var calledMethod, calledURI string
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calledMethod = r.Method
				calledURI = r.URL.RequestURI()
				_, _ = w.Write([]byte(`{}`))
			}))
			defer ts.Close()

			client := New(Config{BaseURL: ts.URL})
			out := client.Do(context.Background(), tt.id, tt.params)

			if out.Kind != OutcomeResponse {
				t.Fatalf("Do(%s) kind = %q, want response", tt.id, out.Kind)
			}
			if calledMethod != tt.wantMethod {
				t.Errorf("Do(%s) method = %q, want %q", tt.id, calledMethod, tt.wantMethod)
			}
			if calledURI != tt.wantURI {
				t.Errorf("Do(%s) called %q, want %q", tt.id, calledURI, tt.wantURI)
			}
		})
	}
}

// TestDo_SaveUserSendsBearer verifies the save action requests auth headers
// while read actions stay unauthenticated.
func TestDo_SaveUserSendsBearer(t *testing.T) {
	t.Parallel()

	var saveAuth, listAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			saveAuth = r.Header.Get("Authorization")
		} else {
			listAuth = r.Header.Get("Authorization")
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	client := New(Config{BaseURL: ts.URL, Token: "tok-1"})

	out := client.Do(context.Background(), ActionSaveUser, Params{Body: UserPayload{FirstName: "Ana"}})
	if out.Kind != OutcomeResponse {
		t.Fatalf("save kind = %q, want response", out.Kind)
	}
	if saveAuth != "Bearer tok-1" {
		t.Errorf("save Authorization = %q, want Bearer tok-1", saveAuth)
	}

	out = client.Do(context.Background(), ActionListUsers, Params{})
	if out.Kind != OutcomeResponse {
		t.Fatalf("list kind = %q, want response", out.Kind)
	}
	if listAuth != "" {
		t.Errorf("list Authorization = %q, want empty", listAuth)
	}
}

// TestDo_UnknownAction returns a config-error outcome without any I/O.
func TestDo_UnknownAction(t *testing.T) {
	t.Parallel()

	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer ts.Close()

	client := New(Config{BaseURL: ts.URL})
	out := client.Do(context.Background(), ActionID("users.purge"), Params{})

	if out.Kind != OutcomeConfig {
		t.Fatalf("kind = %q, want config_error", out.Kind)
	}
	if calls != 0 {
		t.Errorf("made %d network calls, want 0", calls)
	}
}

// TestDo_MissingPathParam returns a config-error outcome without any I/O.
func TestDo_MissingPathParam(t *testing.T) {
	t.Parallel()

	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer ts.Close()

	client := New(Config{BaseURL: ts.URL})
	out := client.Do(context.Background(), ActionGetUser, Params{})

	if out.Kind != OutcomeConfig {
		t.Fatalf("kind = %q, want config_error", out.Kind)
	}
	if !strings.Contains(out.Failure.Message, "id") {
		t.Errorf("message = %q, want it to name the missing parameter", out.Failure.Message)
	}
	if calls != 0 {
		t.Errorf("made %d network calls, want 0", calls)
	}
}

// TestDo_EscapesPathParams verifies URL-unsafe IDs are escaped into a single
// path segment.
func TestDo_EscapesPathParams(t *testing.T) {
	t.Parallel()

	var calledRawPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calledRawPath = r.URL.RequestURI()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	client := New(Config{BaseURL: ts.URL})
	out := client.Do(context.Background(), ActionGetUser, Params{Path: map[string]string{"id": "a/b c"}})

	if out.Kind != OutcomeResponse {
		t.Fatalf("kind = %q, want response", out.Kind)
	}
	if calledRawPath != "/users/a%2Fb%20c" {
		t.Errorf("raw path = %q, want /users/a%%2Fb%%20c", calledRawPath)
	}
}

// TestDo_TrailingSlashBaseURL verifies base URLs with a trailing slash do not
// produce a double slash.
func TestDo_TrailingSlashBaseURL(t *testing.T) {
	t.Parallel()

	var calledPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calledPath = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	client := New(Config{BaseURL: ts.URL + "/"})
	out := client.Do(context.Background(), ActionListUsers, Params{})

	if out.Kind != OutcomeResponse {
		t.Fatalf("kind = %q, want response", out.Kind)
	}
	if calledPath != "/users" {
		t.Errorf("path = %q, want /users", calledPath)
	}
}
