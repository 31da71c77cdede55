package gateway

import (
	"encoding/json"
	"errors"
	"testing"
)

// TestUserPayload_PartialMarshal verifies only populated fields reach the
// wire: a first-name-only payload serializes to exactly one key.
func TestUserPayload_PartialMarshal(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(UserPayload{FirstName: "Mara"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("payload has %d keys, want 1: %s", len(got), data)
	}
	if got["first_name"] != "Mara" {
		t.Errorf("first_name = %v", got["first_name"])
	}
}

func TestUserPayload_FullMarshal(t *testing.T) {
	t.Parallel()

	p := UserPayload{
		FirstName: "Ana",
		LastName:  "Reis",
		Birthdate: "1990-04-12",
		Birthtime: "08:30",
		City:      "Lisbon",
		Country:   "Portugal",
		Login:     "ana.reis",
		Timezone:  "Europe/Lisbon",
	}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"first_name", "last_name", "birthdate", "birthtime", "city", "country", "login", "timezone"} {
		if _, ok := got[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
}

func TestUserPayload_Validate(t *testing.T) {
	t.Parallel()

	if err := (UserPayload{FirstName: "Ana"}).Validate(); err != nil {
		t.Errorf("valid payload rejected: %v", err)
	}
	if err := (UserPayload{}).Validate(); !errors.Is(err, ErrFirstNameRequired) {
		t.Errorf("empty payload error = %v, want ErrFirstNameRequired", err)
	}
	if err := (UserPayload{FirstName: "   "}).Validate(); !errors.Is(err, ErrFirstNameRequired) {
		t.Errorf("whitespace name error = %v, want ErrFirstNameRequired", err)
	}

	// Other fields are passed through untouched even when oddly shaped.
	p := UserPayload{FirstName: "Ana", Birthdate: "not-a-date"}
	if err := p.Validate(); err != nil {
		t.Errorf("payload with odd birthdate rejected: %v", err)
	}
}
