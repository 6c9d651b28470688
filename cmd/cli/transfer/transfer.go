package transfer

import (
	"fmt"

	"github.com/crucial707/inventory-tracker/cmd/cli/root"
	"github.com/crucial707/inventory-tracker/internal/session"
	"github.com/spf13/cobra"
)

// InitTransfer registers the non-interactive export and import commands.
func InitTransfer(rootCmd *cobra.Command) {
	rootCmd.AddCommand(exportCmd(), importCmd())
}

// exportCmd writes the stored inventory as CSV or JSON.
func exportCmd() *cobra.Command {
	var format, file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the inventory to CSV or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := session.ParseFormat(format)
			if err != nil {
				return err
			}
			sess, err := root.OpenSession()
			if err != nil {
				return err
			}

			path := file
			if path == "" {
				path, err = sess.Export(f)
			} else {
				err = sess.ExportFile(f, path)
			}
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d items to %s\n", sess.Inventory.Len(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "csv or json")
	cmd.Flags().StringVar(&file, "file", "", "write here instead of the configured path")

	return cmd
}

// importCmd replaces the stored inventory with the contents of a CSV or JSON
// file and saves the result as the inventory document.
func importCmd() *cobra.Command {
	var format, file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import the inventory from CSV or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := session.ParseFormat(format)
			if err != nil {
				return err
			}
			// The stored inventory is replaced below; load failures are only reported.
			sess := root.Session()
			for _, err := range sess.LoadErrors {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}

			var n int
			if file == "" {
				n, err = sess.Import(f)
			} else {
				n, err = sess.ImportFile(f, file)
			}
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			for _, w := range sess.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s\n", w)
			}

			if _, err := sess.Export(session.FormatJSON); err != nil {
				return fmt.Errorf("save inventory: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "csv or json")
	cmd.Flags().StringVar(&file, "file", "", "read from here instead of the configured path")

	return cmd
}
