package report

import (
	"encoding/json"
	"fmt"

	"github.com/crucial707/inventory-tracker/cmd/cli/output"
	"github.com/crucial707/inventory-tracker/cmd/cli/root"
	"github.com/crucial707/inventory-tracker/internal/session"
	"github.com/spf13/cobra"
)

// InitReport registers the report command.
func InitReport(rootCmd *cobra.Command) {
	rootCmd.AddCommand(reportCmd())
}

func reportCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show how often each user picked each menu action",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := root.OpenSession()
			if err != nil {
				return err
			}
			r := sess.Report()
			w := cmd.OutOrStdout()

			if asJSON {
				b, err := json.MarshalIndent(r, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(w, string(b))
				return nil
			}

			rows := make([][]interface{}, 0, len(r.Entries))
			for _, e := range r.Entries {
				rows = append(rows, []interface{}{e.Email, e.Action, label(e.Action), e.Count})
			}
			output.RenderTable(w, []string{"Email", "Action", "Label", "Count"}, rows)

			rows = make([][]interface{}, 0, len(r.Totals))
			for _, t := range r.Totals {
				rows = append(rows, []interface{}{t.Action, label(t.Action), t.Count})
			}
			output.RenderTable(w, []string{"Action", "Label", "Total"}, rows)

			fmt.Fprintf(w, "Total Number of Users: %d\n", r.TotalUsers)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	return cmd
}

func label(action int) string {
	if c, ok := session.ParseCommand(action); ok {
		return c.String()
	}
	return "-"
}
