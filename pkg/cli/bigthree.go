package cli

import (
	"fmt"
	"strings"

	"github.com/astrobooklet/astroctl/pkg/gateway"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var bigthreeCmd = &cobra.Command{
	Use:   "bigthree <user-id>",
	Short: "Compute a user's big three (Sun, Moon, Ascendant)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUserID(args[0])
		if err != nil {
			return err
		}

		out := dispatchAction(cmd, gateway.ActionBigThree, gateway.Params{
			Path: map[string]string{"id": id},
		})

		r := gateway.RenderOutcome(out)
		if !jsonOutput && r.Kind == gateway.RenderData {
			lines := bigThreeSummary(r.Data)
			if len(lines) > 0 {
				for _, line := range lines {
					fmt.Println(line)
				}
				if verbose {
					fmt.Println(gateway.Pretty(r.Data))
				}
				return nil
			}
		}
		return emitOutcome(gateway.ActionBigThree, out)
	},
}

// bigThreeBodies is the display order. Backends differ in key casing, so
// lookup is case-insensitive.
var bigThreeBodies = []string{"Sun", "Moon", "Asc"}

var titleCaser = cases.Title(language.English)

// bigThreeSummary renders one line per celestial body present in the parsed
// response. Unknown shapes produce no lines and the caller falls back to raw
// JSON.
func bigThreeSummary(data any) []string {
	m, ok := data.(map[string]any)
	if !ok {
		return nil
	}

	var lines []string
	for _, body := range bigThreeBodies {
		entry, ok := lookupFold(m, body)
		if !ok {
			continue
		}
		placement, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		sign := "N/A"
		if s, ok := placement["sign"].(string); ok && s != "" {
			sign = s
		}
		degree := ""
		if d, ok := placement["degree"]; ok && d != nil {
			degree = fmt.Sprintf("%v", d)
		}

		display := titleCaser.String(body)
		if strings.EqualFold(body, "asc") {
			display = "Ascendant"
		}
		lines = append(lines, fmt.Sprintf("%s: %s %s°", display, sign, degree))
	}
	return lines
}

// lookupFold finds a map key case-insensitively.
func lookupFold(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

func init() {
	rootCmd.AddCommand(bigthreeCmd)
}
