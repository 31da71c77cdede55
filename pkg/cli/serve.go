package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/astrobooklet/astroctl/pkg/cliconfig"
	"github.com/astrobooklet/astroctl/pkg/logging"
	"github.com/astrobooklet/astroctl/pkg/webconsole"
	"github.com/spf13/cobra"
)

var (
	serveListen   string
	serveAuditLog string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the embedded web console",
	Long: `Run the embedded web console: a browser UI plus a JSON API that dispatches
the same actions as the CLI. The console keeps running until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := webconsole.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading console config: %w", err)
		}

		// Flags override the environment; the backend connection resolves
		// through the usual chain.
		if cmd.Flags().Changed("listen") {
			cfg.Listen = serveListen
		}
		if cmd.Flags().Changed("audit-log") {
			cfg.AuditLog = serveAuditLog
		}
		client := cliconfig.ResolveClientConfig(flagBaseURL, flagToken, flagContext)
		cfg.BaseURL = client.BaseURL
		if client.Token != "" {
			cfg.Token = client.Token
		}

		// serve is a long-running process; log at info in JSON unless the
		// operator asked for more.
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		serveLog := logging.New(logging.Config{
			Level:  level,
			Format: logging.FormatJSON,
			Output: os.Stderr,
		})

		server, err := webconsole.New(cfg, webconsole.WithLogger(serveLog))
		if err != nil {
			return err
		}
		return server.Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", ":8780", "Console listen address")
	serveCmd.Flags().StringVar(&serveAuditLog, "audit-log", "", "Append an audit entry per action to this file")
	rootCmd.AddCommand(serveCmd)
}
