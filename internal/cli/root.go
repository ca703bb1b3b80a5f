// Package cli implements the facilops admin command line: availability
// checks and alias-table management against a running portal server.
package cli

import (
	"github.com/spf13/cobra"
)

var serverURL string

// NewRootCmd creates the root command for the CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facilops-cli",
		Short: "facilops-cli is a command line interface for the facilities portal",
		Long: `facilops-cli talks to a running facilities portal server.
It can check resource availability and manage the resource alias table.`,
	}
	cmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8176", "Portal server base URL")

	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newAliasCmd())
	return cmd
}
