package webconsole

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/astrobooklet/astroctl/pkg/audit"
	"github.com/astrobooklet/astroctl/pkg/gateway"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//go:embed console.html
var consolePage []byte

func (s *Server) registerRoutes(engine *gin.Engine) {
	engine.GET("/", s.handleIndex)
	engine.GET("/healthz", s.handleHealthz)

	api := engine.Group("/api")
	api.GET("/actions", s.handleActions)
	api.POST("/run/:action", s.handleRun)
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", consolePage)
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// actionView is the catalog entry as the page consumes it.
type actionView struct {
	ID           string   `json:"id"`
	Method       string   `json:"method"`
	Path         string   `json:"path"`
	TimeoutSec   int      `json:"timeoutSec"`
	RequiresAuth bool     `json:"requiresAuth"`
	HasBody      bool     `json:"hasBody"`
	QueryKeys    []string `json:"queryKeys,omitempty"`
}

// handleActions returns the action table so the page builds its forms from
// the same data the CLI dispatches on.
func (s *Server) handleActions(c *gin.Context) {
	views := make([]actionView, 0, len(gateway.Catalog))
	for _, id := range gateway.ActionIDs() {
		a := gateway.Catalog[id]
		views = append(views, actionView{
			ID:           string(a.ID),
			Method:       a.Method,
			Path:         a.PathTemplate,
			TimeoutSec:   int(a.Timeout / time.Second),
			RequiresAuth: a.RequiresAuth,
			HasBody:      a.HasBody,
			QueryKeys:    a.QueryKeys,
		})
	}
	c.JSON(http.StatusOK, gin.H{"actions": views})
}

// flexibleID accepts a JSON string or number so the page can post either.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number")
	}
	*f = flexibleID(n.String())
	return nil
}

type runRequest struct {
	Params runParams `json:"params"`
}

type runParams struct {
	ID   flexibleID           `json:"id,omitempty"`
	Year int                  `json:"year,omitempty"`
	User *gateway.UserPayload `json:"user,omitempty"`
}

// runEnvelope is the rendered outcome as the API returns it. Backend errors
// and transport failures are data to the console, so the HTTP status is 200
// whenever a dispatch happened at all.
type runEnvelope struct {
	Action  string `json:"action"`
	Kind    string `json:"kind"`
	Status  int    `json:"status,omitempty"`
	Data    any    `json:"data,omitempty"`
	Text    string `json:"text,omitempty"`
	Message string `json:"message,omitempty"`
	TraceID string `json:"traceId,omitempty"`
}

// handleRun resolves a catalog action from the path and dispatches it with
// the posted parameters.
func (s *Server) handleRun(c *gin.Context) {
	id := gateway.ActionID(c.Param("action"))

	var req runRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
	}

	p := gateway.Params{}
	if req.Params.ID != "" {
		p.Path = map[string]string{"id": string(req.Params.ID)}
	}
	if req.Params.Year != 0 {
		p.Query = url.Values{"year": []string{strconv.Itoa(req.Params.Year)}}
	}
	if id == gateway.ActionSaveUser {
		if req.Params.User == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user payload is required"})
			return
		}
		if err := req.Params.User.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		p.Body = req.Params.User
	}

	out := s.dispatch(c, id, p)

	r := gateway.RenderOutcome(out)
	c.JSON(http.StatusOK, runEnvelope{
		Action:  string(id),
		Kind:    string(r.Kind),
		Status:  r.Status,
		Data:    r.Data,
		Text:    r.Text,
		Message: r.Message,
		TraceID: out.TraceID,
	})
}

// dispatch performs one action with the audit lifecycle around it.
func (s *Server) dispatch(c *gin.Context, id gateway.ActionID, p gateway.Params) gateway.Outcome {
	p.TraceID = uuid.NewString()

	client := &audit.ClientInfo{
		RemoteAddr: c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	}
	req := s.auditRequestInfo(id, p)
	s.rec.ActionDispatched(string(id), p.TraceID, req, client)

	start := time.Now()
	out := s.gw.Do(c.Request.Context(), id, p)
	elapsed := time.Since(start)

	if out.Kind == gateway.OutcomeResponse {
		s.rec.ActionCompleted(string(id), p.TraceID, req, &audit.ResponseInfo{
			StatusCode: out.Status,
			BodySize:   int64(len(out.Body.Raw)),
			DurationMs: elapsed.Milliseconds(),
		}, client)
	} else {
		s.rec.ActionFailed(string(id), p.TraceID, req, &audit.ErrorInfo{
			Code:    string(out.Failure.Kind),
			Message: out.Failure.Message,
		}, elapsed, client)
	}

	return out
}

func (s *Server) auditRequestInfo(id gateway.ActionID, p gateway.Params) *audit.RequestInfo {
	action, ok := gateway.Lookup(id)
	if !ok {
		return &audit.RequestInfo{URL: s.cfg.BaseURL}
	}
	u, err := action.BuildURL(s.cfg.BaseURL, p)
	if err != nil {
		u = s.cfg.BaseURL + action.PathTemplate
	}
	info := &audit.RequestInfo{Method: action.Method, URL: u}
	if p.Body != nil {
		preview := gateway.Pretty(p.Body)
		info.BodySize = int64(len(preview))
		info.BodyPreview = preview
	}
	return info
}
