// Package cli provides the command-line interface for astroctl.
//
// The cli package implements all commands of the operator console:
//   - users list: Display all backend users
//   - users get: Show a single user by ID
//   - users save: Create or update a user profile (flags or interactive form)
//   - placements: Compute a user's astrology placements
//   - bigthree: Compute a user's Sun, Moon, and Ascendant
//   - booklet: Generate a user's booklet PDF
//   - calendar: Generate a user's calendar PDF for a year
//   - health: Check backend health
//   - serve: Run the embedded web console
//   - context: Manage named backend contexts
//   - config: Display effective configuration and value sources
//   - doctor: Diagnose configuration, connectivity, and credentials
//   - version: Show astroctl version
//
// Every action command performs exactly one HTTP call against the configured
// backend and renders the outcome: parsed JSON for successes, the backend's
// detail message for application errors, and a friendly message for transport
// failures. Connection settings resolve per invocation from flag > env >
// context > config file > default.
//
// Usage:
//
//	astroctl users list
//	astroctl users save --first-name Mara --city "São Paulo"
//	astroctl bigthree 7
//	astroctl calendar 7 --year 2026 --output calendar.pdf
//	astroctl health --base-url http://staging:8010
//	astroctl context add staging -u http://staging:8010 --use
//	astroctl serve --listen :8780
package cli
