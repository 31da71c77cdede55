package cli

import (
	"reflect"
	"testing"
)

func TestValidateQuery(t *testing.T) {
	if err := validateQuery(""); err != nil {
		t.Errorf("empty expression should be valid: %v", err)
	}
	if err := validateQuery("$.users[0].name"); err != nil {
		t.Errorf("valid expression rejected: %v", err)
	}
	if err := validateQuery("$[unclosed"); err == nil {
		t.Error("expected error for malformed expression")
	}
}

func TestApplyQuery(t *testing.T) {
	data := map[string]any{
		"users": []any{
			map[string]any{"name": "Mara", "id": 1.0},
			map[string]any{"name": "Iris", "id": 2.0},
		},
	}

	// No expression set
	if _, ok := applyQuery("", data); ok {
		t.Error("empty expression should report not applied")
	}

	// Single match prints bare
	got, ok := applyQuery("$.users[0].name", data)
	if !ok || got != "Mara" {
		t.Errorf("single match = %v (%v), want Mara", got, ok)
	}

	// Multiple matches come back as a slice
	got, ok = applyQuery("$.users[*].name", data)
	if !ok {
		t.Fatal("expected query to apply")
	}
	names, isSlice := got.([]any)
	if !isSlice || len(names) != 2 {
		t.Fatalf("multiple matches = %v, want 2-element slice", got)
	}
	want := map[string]bool{"Mara": true, "Iris": true}
	for _, n := range names {
		s, _ := n.(string)
		if !want[s] {
			t.Errorf("unexpected match %v", n)
		}
	}

	// No match yields nil
	got, ok = applyQuery("$.missing", data)
	if !ok || got != nil {
		t.Errorf("no match = %v (%v), want nil", got, ok)
	}
}

func TestApplyQuery_PreservesStructure(t *testing.T) {
	data := map[string]any{"user": map[string]any{"city": "São Paulo"}}

	got, ok := applyQuery("$.user", data)
	if !ok {
		t.Fatal("expected query to apply")
	}
	if !reflect.DeepEqual(got, map[string]any{"city": "São Paulo"}) {
		t.Errorf("got %v", got)
	}
}
