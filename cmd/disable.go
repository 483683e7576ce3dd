package cmd

import (
	"github.com/spf13/cobra"

	"mcptoggle/internal/serverlist"
)

var disableDryRun bool

// disableCmd represents the disable command
var disableCmd = &cobra.Command{
	Use:   "disable [server]",
	Short: "Disables a server in the server list.",
	Long: `Disables an MCP server, matched case-insensitively by id, key, or name.
Servers carrying their own "enabled" field are switched in place and stay
where they are; servers without it are moved under mcpServersDisabled.
Array-shaped server lists without per-entry "enabled" fields cannot be
disabled. With no argument an interactive selection is shown.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runToggle(args, "disable", disableDryRun, serverlist.Disable)
	},
}

func init() {
	rootCmd.AddCommand(disableCmd)
	disableCmd.Flags().BoolVar(&disableDryRun, "dry-run", false, "show the changes without saving")
}
