package cli

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/astrobooklet/astroctl/pkg/gateway"
	"github.com/astrobooklet/astroctl/pkg/util"
	"github.com/spf13/cobra"
)

// Calendar year bounds, matching the backend's accepted range.
const (
	calendarYearMin = 2020
	calendarYearMax = 2100
)

var (
	bookletOutput  string
	calendarYear   int
	calendarOutput string
)

var bookletCmd = &cobra.Command{
	Use:   "booklet <user-id>",
	Short: "Generate a user's astrology booklet PDF",
	Long: `Generate a user's astrology booklet PDF. Generation runs on the backend and
may take a while. With --output the PDF bytes are written to the given file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUserID(args[0])
		if err != nil {
			return err
		}
		return runDocument(cmd, gateway.ActionBooklet, gateway.Params{
			Path: map[string]string{"id": id},
		}, bookletOutput, "Booklet generated successfully!")
	},
}

var calendarCmd = &cobra.Command{
	Use:   "calendar <user-id>",
	Short: "Generate a user's astrology calendar PDF for a year",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUserID(args[0])
		if err != nil {
			return err
		}
		if calendarYear < calendarYearMin || calendarYear > calendarYearMax {
			return fmt.Errorf("--year must be between %d and %d", calendarYearMin, calendarYearMax)
		}
		return runDocument(cmd, gateway.ActionCalendar, gateway.Params{
			Path:  map[string]string{"id": id},
			Query: url.Values{"year": []string{strconv.Itoa(calendarYear)}},
		}, calendarOutput, "Calendar generated successfully!")
	},
}

// documentResult is the JSON form of a completed document action.
type documentResult struct {
	Action string `json:"action"`
	Status int    `json:"status"`
	Bytes  int    `json:"bytes"`
	Output string `json:"output,omitempty"`
}

// runDocument dispatches a PDF-producing action. A 200 response is treated as
// opaque bytes: confirmed in text mode, optionally written to outputPath.
// Anything else renders like every other outcome.
func runDocument(cmd *cobra.Command, id gateway.ActionID, p gateway.Params, outputPath, confirmation string) error {
	out := dispatchAction(cmd, id, p)

	if out.Kind != gateway.OutcomeResponse || out.Status != 200 {
		return emitOutcome(id, out)
	}

	result := documentResult{
		Action: string(id),
		Status: out.Status,
		Bytes:  len(out.Body.Raw),
	}

	if outputPath != "" {
		path, ok := util.SafeFilePathAllowAbsolute(outputPath)
		if !ok {
			return fmt.Errorf("invalid --output path %q", outputPath)
		}
		if err := os.WriteFile(path, out.Body.Raw, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		result.Output = path
	}

	printResult(result, func() {
		fmt.Println(confirmation)
		if result.Output != "" {
			fmt.Printf("Saved %d bytes to %s\n", result.Bytes, result.Output)
		}
	})
	return nil
}

func init() {
	bookletCmd.Flags().StringVarP(&bookletOutput, "output", "o", "", "Write the PDF to this file")
	rootCmd.AddCommand(bookletCmd)

	calendarCmd.Flags().IntVar(&calendarYear, "year", 0, "Calendar year (required)")
	calendarCmd.Flags().StringVarP(&calendarOutput, "output", "o", "", "Write the PDF to this file")
	_ = calendarCmd.MarkFlagRequired("year")
	rootCmd.AddCommand(calendarCmd)
}
