package gateway

import (
	"errors"
	"strings"
)

// UserPayload is the outgoing body for the save-user action. Optional fields
// left empty are omitted from the JSON so a partial update never overwrites
// backend state with blanks. FirstName is always sent.
type UserPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Birthdate string `json:"birthdate,omitempty"` // YYYY-MM-DD
	Birthtime string `json:"birthtime,omitempty"` // HH:MM, 24h
	City      string `json:"city,omitempty"`
	Country   string `json:"country,omitempty"`
	Login     string `json:"login,omitempty"`
	Timezone  string `json:"timezone,omitempty"` // IANA zone name
}

// ErrFirstNameRequired is returned when a save is attempted without a first
// name. Callers check this before dispatching; the backend is never called
// with an invalid payload.
var ErrFirstNameRequired = errors.New("first name is required")

// Validate checks required-field presence. Field formats are the backend's
// concern and are passed through as entered.
func (p UserPayload) Validate() error {
	if strings.TrimSpace(p.FirstName) == "" {
		return ErrFirstNameRequired
	}
	return nil
}
