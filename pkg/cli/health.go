package cli

import (
	"fmt"
	"os"

	"github.com/astrobooklet/astroctl/pkg/cli/internal/output"
	"github.com/astrobooklet/astroctl/pkg/gateway"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check if the backend is healthy and reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := dispatchAction(cmd, gateway.ActionHealth, gateway.Params{})

		type healthResult struct {
			Status  string `json:"status"`
			BaseURL string `json:"baseUrl"`
			Error   string `json:"error,omitempty"`
		}

		baseURL := newGatewayClient().Config().BaseURL

		if out.Kind == gateway.OutcomeResponse && out.Status == 200 {
			result := healthResult{Status: "healthy", BaseURL: baseURL}
			if jsonOutput {
				return output.JSON(result)
			}
			fmt.Println("healthy")
			if out.Body.Kind == gateway.BodyJSON && verbose {
				fmt.Println(gateway.Pretty(out.Body.JSON))
			}
			return nil
		}

		reason := healthFailureReason(out)
		result := healthResult{Status: "unhealthy", BaseURL: baseURL, Error: reason}
		if jsonOutput {
			_ = output.JSON(result)
		} else {
			fmt.Fprintf(os.Stderr, "unhealthy: %s\n", reason)
		}
		return errReported
	},
}

func healthFailureReason(out gateway.Outcome) string {
	if out.Kind == gateway.OutcomeResponse {
		return gateway.RenderOutcome(out).Message
	}
	return out.Failure.Message
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
