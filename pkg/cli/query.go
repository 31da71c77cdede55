package cli

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
)

// validateQuery checks a --query expression before any dispatch happens. A
// bad expression is a usage error, not a failed action.
func validateQuery(expr string) error {
	if expr == "" {
		return nil
	}
	if _, err := jp.ParseString(expr); err != nil {
		return fmt.Errorf("invalid --query expression %q: %w", expr, err)
	}
	return nil
}

// applyQuery evaluates the JSONPath expression against a parsed result.
// A single match is returned bare, multiple matches as a slice, no match as
// nil. A nil return with ok=false means no expression was set.
func applyQuery(expr string, data any) (any, bool) {
	if expr == "" {
		return nil, false
	}
	x, err := jp.ParseString(expr)
	if err != nil {
		// Validated in PersistentPreRunE; treat a late failure as no-op.
		return nil, false
	}
	results := x.Get(data)
	switch len(results) {
	case 0:
		return nil, true
	case 1:
		return results[0], true
	default:
		return results, true
	}
}
