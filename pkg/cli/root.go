package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/astrobooklet/astroctl/pkg/logging"
	"github.com/spf13/cobra"
)

var (
	// Persistent flags available to all subcommands
	flagBaseURL string
	flagToken   string
	flagContext string
	jsonOutput  bool
	queryExpr   string
	verbose     bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// log is the process-wide logger, rebuilt in PersistentPreRunE once flags
// are parsed.
var log = logging.Nop()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "astroctl",
	Short: "astroctl is the operator console for the Astrology Booklet backend",
	Long: `astroctl drives the Astrology Booklet backend from the command line: manage
users, compute placements and the big three, generate booklet and calendar
PDFs, and check backend health. Every action is exactly one HTTP call against
the configured base URL.

Configuration can be provided via flags, environment variables, contexts, or
a configuration file. By default astroctl talks to http://localhost:8010.`,
	// No Run function here means 'astroctl' with no args will print help text by default.
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := validateQuery(queryExpr); err != nil {
			return err
		}
		log = newLogger()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	// Define persistent flags that apply globally to all astroctl commands
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Backend base URL (default: http://localhost:8010)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Bearer token for authenticated actions")
	rootCmd.PersistentFlags().StringVar(&flagContext, "context", "", "Named context to resolve base URL and token from")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
	rootCmd.PersistentFlags().StringVarP(&queryExpr, "query", "q", "", "JSONPath expression applied to parsed results")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
