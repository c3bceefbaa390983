// Invadm is a terminal admin client for an inventory REST backend.
//
// It provides an interactive dashboard for browsing and editing inventory
// items, plus one-shot commands for scripting. Side features of the backend
// (pastebin, environment report, log sink, health check) are exposed both
// in the dashboard and as subcommands.
//
// Usage:
//
//	invadm [command] [flags]
//
// Running without arguments launches the interactive dashboard.
// See 'invadm --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/invadm/invadm/internal/logging"
	"github.com/invadm/invadm/internal/version"
)

func main() {
	logging.InitializeFromEnv()
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "invadm",
	Short: "Inventory Backend Admin Client",
	Long: `A terminal admin client for an inventory REST backend.

Provides an interactive dashboard for browsing and editing inventory items,
plus one-shot commands for listing, adding, updating, and deleting items,
and for the backend's pastebin, environment, log, and health endpoints.

If no command is specified, the interactive dashboard will launch automatically.`,
	Version:      version.Version,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the dashboard when no subcommand provided
		return runDashboard(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("invadm %s (commit: %s)\n", version.Version, version.Commit)
	},
}
