// Package audit provides an operator action trail for the astrology console.
//
// The audit package records which backend actions operators dispatched, from
// where, and how they ended, for debugging and compliance purposes.
//
// # Basic Usage
//
// To enable the trail, create an AuditConfig, build a logger, and wrap it in
// a Recorder:
//
//	config := &audit.AuditConfig{
//		Enabled:    true,
//		Level:      audit.LevelInfo,
//		OutputFile: "/var/log/astroctl-audit.log",
//	}
//
//	logger, err := audit.NewLogger(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer logger.Close()
//
//	rec := audit.NewRecorder(logger, config, audit.OriginCLI)
//	rec.ActionCompleted("users.list", traceID,
//		&audit.RequestInfo{Method: "GET", URL: "http://localhost:8010/users"},
//		&audit.ResponseInfo{StatusCode: 200},
//		nil)
//
// # Output Formats
//
// Audit entries are written as JSON lines (NDJSON format), making them easy
// to parse with tools like jq, or to ingest into log aggregation systems.
//
// # Logger Types
//
//   - FileLogger: Writes to a file, suitable for persistent logging
//   - StdoutLogger: Writes to stdout, suitable for containerized deployments
//   - MultiWriter: Fans entries out to several loggers at once
//   - NoOpLogger: Discards all entries, used when audit logging is disabled
//
// # Event Types
//
// One action produces up to three events:
//
//   - action.dispatched: The backend request went out (debug level)
//   - action.completed: The backend responded (info level)
//   - action.failed: The request never produced a response (error level)
//
// # Thread Safety
//
// All logger implementations are safe for concurrent use from multiple
// goroutines. The FileLogger uses a mutex to serialize writes.
//
// # Security
//
// Request headers are never recorded, so bearer tokens cannot leak into the
// trail. Body previews are truncated to AuditConfig.MaxBodyPreviewSize.
package audit
