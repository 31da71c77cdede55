// Package logging provides structured logging configuration for astroctl.
//
// This package wraps log/slog to provide consistent logging across the CLI
// and the web console. It supports configurable log levels, output formats,
// and an optional rotating log file.
//
// # Usage
//
// Create a logger with desired configuration:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("dispatching request", "action", "users.list")
//	logger.Error("request failed", "error", err)
//
// # Log Levels
//
// Four log levels are supported:
//   - Debug: Detailed information for debugging
//   - Info: General operational information
//   - Warn: Warning conditions that should be addressed
//   - Error: Error conditions that need attention
//
// # Output Formats
//
//   - Text: Human-readable format for interactive use
//   - JSON: Structured format for log files and aggregation
//
// When Config.File is set, log records additionally go to that file as JSON
// lines, rotated by size.
//
// # Integration
//
// Components should accept a *slog.Logger in their constructor or via an
// option. If no logger is provided, use logging.Nop() for a no-op logger.
package logging
