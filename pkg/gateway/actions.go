package gateway

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

// ActionID identifies one operation in the backend catalog.
type ActionID string

// Catalog action identifiers.
const (
	ActionListUsers  ActionID = "users.list"
	ActionGetUser    ActionID = "users.get"
	ActionSaveUser   ActionID = "users.save"
	ActionPlacements ActionID = "placements"
	ActionBigThree   ActionID = "bigthree"
	ActionBooklet    ActionID = "booklet"
	ActionCalendar   ActionID = "calendar"
	ActionHealth     ActionID = "health"
)

// Action describes one backend operation: verb, path template, per-action
// timeout, and whether the Authorization header is requested for it.
// The console dispatches on this table instead of branching per action.
type Action struct {
	ID           ActionID      `json:"id"`
	Method       string        `json:"method"`
	PathTemplate string        `json:"path"`
	Timeout      time.Duration `json:"-"`
	RequiresAuth bool          `json:"requiresAuth"`

	// HasBody marks actions that send a JSON request body.
	HasBody bool `json:"hasBody,omitempty"`

	// QueryKeys lists the query parameters the action accepts.
	QueryKeys []string `json:"queryKeys,omitempty"`
}

// Catalog is the complete table of backend operations.
var Catalog = map[ActionID]Action{
	ActionListUsers: {
		ID:           ActionListUsers,
		Method:       "GET",
		PathTemplate: "/users",
		Timeout:      10 * time.Second,
	},
	ActionGetUser: {
		ID:           ActionGetUser,
		Method:       "GET",
		PathTemplate: "/users/{id}",
		Timeout:      10 * time.Second,
	},
	ActionSaveUser: {
		ID:           ActionSaveUser,
		Method:       "POST",
		PathTemplate: "/users",
		Timeout:      10 * time.Second,
		RequiresAuth: true,
		HasBody:      true,
	},
	ActionPlacements: {
		ID:           ActionPlacements,
		Method:       "GET",
		PathTemplate: "/users/{id}/placements",
		Timeout:      30 * time.Second,
	},
	ActionBigThree: {
		ID:           ActionBigThree,
		Method:       "GET",
		PathTemplate: "/users/{id}/big-three",
		Timeout:      30 * time.Second,
	},
	ActionBooklet: {
		ID:           ActionBooklet,
		Method:       "GET",
		PathTemplate: "/users/{id}/booklet",
		Timeout:      120 * time.Second,
	},
	ActionCalendar: {
		ID:           ActionCalendar,
		Method:       "GET",
		PathTemplate: "/users/{id}/calendar",
		Timeout:      120 * time.Second,
		QueryKeys:    []string{"year"},
	},
	ActionHealth: {
		ID:           ActionHealth,
		Method:       "GET",
		PathTemplate: "/health",
		Timeout:      5 * time.Second,
	},
}

// Lookup returns the catalog entry for id.
func Lookup(id ActionID) (Action, bool) {
	a, ok := Catalog[id]
	return a, ok
}

// ActionIDs returns all catalog identifiers in stable order.
func ActionIDs() []ActionID {
	ids := make([]ActionID, 0, len(Catalog))
	for id := range Catalog {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Params carries the per-call inputs for a catalog action: path parameter
// values, query values, and an optional JSON body.
type Params struct {
	Path  map[string]string
	Query url.Values
	Body  any

	// TraceID, when set, is used as the dispatch trace ID.
	TraceID string
}

// BuildURL joins the base URL with the expanded path template and query
// string. Path parameter values are escaped; a placeholder with no value is
// an error.
func (a Action) BuildURL(baseURL string, p Params) (string, error) {
	path := a.PathTemplate
	for {
		start := strings.Index(path, "{")
		if start < 0 {
			break
		}
		end := strings.Index(path[start:], "}")
		if end < 0 {
			return "", fmt.Errorf("malformed path template %q", a.PathTemplate)
		}
		name := path[start+1 : start+end]
		value, ok := p.Path[name]
		if !ok || value == "" {
			return "", fmt.Errorf("action %s: missing path parameter %q", a.ID, name)
		}
		path = path[:start] + url.PathEscape(value) + path[start+end+1:]
	}

	full := strings.TrimSuffix(baseURL, "/") + path
	if len(p.Query) > 0 {
		full += "?" + p.Query.Encode()
	}
	return full, nil
}
