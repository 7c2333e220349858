package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "starter",
	Short: "API starter kit CLI",
	Long:  "Maintenance commands for the API starter kit: migrations, seeding, cron.",
}

// Execute applies registered extension commands and runs the CLI.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
