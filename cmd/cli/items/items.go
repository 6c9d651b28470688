package items

import (
	"fmt"

	"github.com/crucial707/inventory-tracker/cmd/cli/output"
	"github.com/crucial707/inventory-tracker/cmd/cli/root"
	"github.com/crucial707/inventory-tracker/internal/codec"
	"github.com/spf13/cobra"
)

// ==========================
// Init Items
// ==========================
func InitItems(rootCmd *cobra.Command) {

	itemsCmd := &cobra.Command{
		Use:   "items",
		Short: "Inspect inventory items",
	}

	itemsCmd.AddCommand(
		listItemsCmd(),
	)

	rootCmd.AddCommand(itemsCmd)
}

// ==========================
// LIST
// ==========================
func listItemsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List inventory items",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := root.OpenSession()
			if err != nil {
				return err
			}
			items := sess.Inventory.Items()

			if asJSON {
				return codec.WriteJSON(cmd.OutOrStdout(), items)
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Inventory is empty.")
				return nil
			}
			output.RenderItems(cmd.OutOrStdout(), items)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print items as JSON")

	return cmd
}
