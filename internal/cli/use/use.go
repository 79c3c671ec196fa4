// Package use holds all cli commands related to setting contextual information
// e.g., dealboard use ...
package use

import (
	"github.com/spf13/cobra"
)

// UseCmd returns the use parent command
func UseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use",
		Short: "Manage contextual settings for the current shell",
		Long: `Set and manage contextual information for the current shell session.

The 'use' command allows you to set context that applies to subsequent
commands, eliminating the need to repeatedly specify flags.

Examples:
  eval $(dealboard use pipeline partnerships)  # Use the partnerships pipeline
  eval $(dealboard use pipeline --clear)       # Clear pipeline context
  dealboard use pipeline --show                # Show current pipeline`,
	}

	cmd.AddCommand(PipelineCmd())

	return cmd
}
