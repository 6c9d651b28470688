package main

import (
	"fmt"
	"os"

	"github.com/crucial707/inventory-tracker/cmd/cli/items"
	"github.com/crucial707/inventory-tracker/cmd/cli/menu"
	"github.com/crucial707/inventory-tracker/cmd/cli/report"
	"github.com/crucial707/inventory-tracker/cmd/cli/root"
	"github.com/crucial707/inventory-tracker/cmd/cli/transfer"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env in the working directory
	_ = godotenv.Load()

	rootCmd := root.GetRoot()
	menu.InitMenu(rootCmd)
	items.InitItems(rootCmd)
	transfer.InitTransfer(rootCmd)
	report.InitReport(rootCmd)

	// Execute the root Cobra command
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
