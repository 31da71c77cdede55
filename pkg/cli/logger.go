package cli

import (
	"log/slog"
	"os"

	"github.com/astrobooklet/astroctl/pkg/cliconfig"
	"github.com/astrobooklet/astroctl/pkg/logging"
)

// newLogger builds the process logger from flags, environment, and config
// files. The CLI stays quiet by default: warnings and errors only, with
// --verbose dropping the level to debug.
func newLogger() *slog.Logger {
	cfg, err := cliconfig.LoadAll()
	if err != nil {
		// A broken config file must not mute diagnostics; fall back to
		// defaults and keep going.
		cfg = cliconfig.NewDefault()
	}

	level := slog.LevelWarn
	if cfg.LogLevel != "" && cfg.Sources["logLevel"] != cliconfig.SourceDefault {
		level = logging.ParseLevel(cfg.LogLevel)
	}
	if verbose || cfg.Verbose {
		level = slog.LevelDebug
	}

	return logging.New(logging.Config{
		Level:  level,
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: os.Stderr,
		File:   cfg.LogFile,
	})
}
