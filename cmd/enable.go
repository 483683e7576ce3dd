package cmd

import (
	"github.com/spf13/cobra"

	"mcptoggle/internal/serverlist"
)

var enableDryRun bool

// enableCmd represents the enable command
var enableCmd = &cobra.Command{
	Use:   "enable [server]",
	Short: "Enables a server in the server list.",
	Long: `Enables an MCP server, matched case-insensitively by id, key, or name.
Servers carrying their own "enabled" field are switched in place; servers
parked under mcpServersDisabled are moved back into mcpServers. With no
argument an interactive selection is shown.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runToggle(args, "enable", enableDryRun, serverlist.Enable)
	},
}

func init() {
	rootCmd.AddCommand(enableCmd)
	enableCmd.Flags().BoolVar(&enableDryRun, "dry-run", false, "show the changes without saving")
}
