package cli

import (
	"fmt"

	"github.com/astrobooklet/astroctl/pkg/cli/internal/output"
	"github.com/astrobooklet/astroctl/pkg/cliconfig"
	"github.com/spf13/cobra"
)

// effectiveConfig is the resolved configuration with per-value provenance.
type effectiveConfig struct {
	BaseURL       string `json:"baseUrl"`
	BaseURLSource string `json:"baseUrlSource"`
	HasToken      bool   `json:"hasToken"`
	TokenSource   string `json:"tokenSource,omitempty"`
	Context       string `json:"context,omitempty"`
	LogLevel      string `json:"logLevel"`
	LogLevelSrc   string `json:"logLevelSource"`
	LogFormat     string `json:"logFormat"`
	LogFormatSrc  string `json:"logFormatSource"`
	LogFile       string `json:"logFile,omitempty"`
	ConfigDir     string `json:"configDir,omitempty"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration and where each value comes from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := cliconfig.ResolveClientConfig(flagBaseURL, flagToken, flagContext)

		fileCfg, err := cliconfig.LoadAll()
		if err != nil {
			output.Warn("config file ignored: %v", err)
			fileCfg = cliconfig.NewDefault()
		}

		eff := effectiveConfig{
			BaseURL:       client.BaseURL,
			BaseURLSource: client.Sources["baseUrl"],
			HasToken:      client.Token != "",
			Context:       client.Context,
			LogLevel:      fileCfg.LogLevel,
			LogLevelSrc:   fileCfg.Sources["logLevel"],
			LogFormat:     fileCfg.LogFormat,
			LogFormatSrc:  fileCfg.Sources["logFormat"],
			LogFile:       fileCfg.LogFile,
		}
		if eff.HasToken {
			eff.TokenSource = client.Sources["token"]
		}
		if dir, err := cliconfig.GetContextConfigPath(); err == nil {
			eff.ConfigDir = dir
		}

		printResult(eff, func() {
			fmt.Printf("Base URL:    %s  (%s)\n", eff.BaseURL, eff.BaseURLSource)
			if eff.HasToken {
				fmt.Printf("Token:       ********  (%s)\n", eff.TokenSource)
			} else {
				fmt.Println("Token:       (not set)")
			}
			if eff.Context != "" {
				fmt.Printf("Context:     %s\n", eff.Context)
			}
			fmt.Printf("Log level:   %s  (%s)\n", eff.LogLevel, eff.LogLevelSrc)
			fmt.Printf("Log format:  %s  (%s)\n", eff.LogFormat, eff.LogFormatSrc)
			if eff.LogFile != "" {
				fmt.Printf("Log file:    %s\n", eff.LogFile)
			}
			if eff.ConfigDir != "" {
				fmt.Printf("Contexts:    %s\n", eff.ConfigDir)
			}
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
