package cli

import (
	"fmt"
	"sort"

	"github.com/astrobooklet/astroctl/pkg/cli/internal/output"
	"github.com/astrobooklet/astroctl/pkg/gateway"
	"github.com/spf13/cobra"
)

var placementsCmd = &cobra.Command{
	Use:   "placements <user-id>",
	Short: "Compute a user's astrology placements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUserID(args[0])
		if err != nil {
			return err
		}

		out := dispatchAction(cmd, gateway.ActionPlacements, gateway.Params{
			Path: map[string]string{"id": id},
		})

		r := gateway.RenderOutcome(out)
		if !jsonOutput && r.Kind == gateway.RenderData {
			rows := placementRows(r.Data)
			if len(rows) > 0 {
				w := output.Table()
				_, _ = fmt.Fprintln(w, "BODY\tSIGN\tDEGREE")
				for _, row := range rows {
					_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", row.Body, row.Sign, row.Degree)
				}
				if err := w.Flush(); err != nil {
					return err
				}
				if verbose {
					fmt.Println(gateway.Pretty(r.Data))
				}
				return nil
			}
		}
		return emitOutcome(gateway.ActionPlacements, out)
	},
}

type placementRow struct {
	Body   string
	Sign   string
	Degree string
}

// placementRows flattens a placements response into table rows, sorted by
// body name. The response shape is backend-owned; anything that is not a
// mapping of body to {sign, degree} yields no rows.
func placementRows(data any) []placementRow {
	m, ok := data.(map[string]any)
	if !ok {
		return nil
	}

	var rows []placementRow
	for body, v := range m {
		placement, ok := v.(map[string]any)
		if !ok {
			return nil
		}

		sign := "-"
		if s, ok := placement["sign"].(string); ok && s != "" {
			sign = s
		}
		degree := "-"
		if d, ok := placement["degree"]; ok && d != nil {
			degree = fmt.Sprintf("%v", d)
		}
		rows = append(rows, placementRow{Body: body, Sign: sign, Degree: degree})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Body < rows[j].Body })
	return rows
}

func init() {
	rootCmd.AddCommand(placementsCmd)
}
