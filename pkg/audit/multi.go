package audit

import (
	"errors"
	"strings"
)

// MultiWriter writes audit entries to multiple outputs simultaneously.
// It implements the AuditLogger interface and fans out log entries to all
// configured writers. The writer set is fixed at construction; individual
// writers handle their own locking.
type MultiWriter struct {
	writers []AuditLogger
}

// NewMultiWriter creates a new MultiWriter that writes to all provided loggers.
// Nil writers are filtered out.
func NewMultiWriter(writers ...AuditLogger) *MultiWriter {
	validWriters := make([]AuditLogger, 0, len(writers))
	for _, w := range writers {
		if w != nil {
			validWriters = append(validWriters, w)
		}
	}

	return &MultiWriter{
		writers: validWriters,
	}
}

// Log writes an audit entry to all configured writers.
// Errors are collected and returned as a combined error.
// All writers receive the entry even if some fail.
func (m *MultiWriter) Log(entry AuditEntry) error {
	var errs []error

	for _, w := range m.writers {
		if err := w.Log(entry); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return &MultiError{Errors: errs}
	}

	return nil
}

// Close closes all underlying writers.
// All writers are closed even if some fail to close.
func (m *MultiWriter) Close() error {
	var errs []error

	for _, w := range m.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return &MultiError{Errors: errs}
	}

	return nil
}

// Len returns the number of writers.
func (m *MultiWriter) Len() int {
	return len(m.writers)
}

// MultiError represents multiple errors from MultiWriter operations.
type MultiError struct {
	Errors []error
}

// Error returns a string representation of all errors.
func (e *MultiError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var b strings.Builder
	b.WriteString("multiple errors:")
	for _, err := range e.Errors {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying errors for use with errors.Is/As.
func (e *MultiError) Unwrap() []error {
	return e.Errors
}

// Is reports whether any error in the chain matches target.
func (e *MultiError) Is(target error) bool {
	for _, err := range e.Errors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Ensure MultiWriter implements AuditLogger.
var _ AuditLogger = (*MultiWriter)(nil)
