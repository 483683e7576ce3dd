package cmd

import (
	"github.com/spf13/cobra"

	"mcptoggle/internal/log"
	"mcptoggle/internal/serverlist"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists servers in the server list with their status.",
	Long: `Shows every server in the resolved server-list file, both active and
disabled, with its identifier, status, and command or URL.`,
	Aliases: []string{"ls"},
	Run: func(cmd *cobra.Command, args []string) {
		s := openSession()

		if len(s.items) == 0 {
			log.Warn("No servers found in %s.", s.path)
			return
		}

		strategy := "toggled via mcpServersDisabled"
		if s.shape.HasEnabledMarker {
			strategy = "toggled via per-entry \"enabled\" fields"
		}
		log.Info("Servers in %s (%s shape, %s):", s.path, s.shape.Kind, strategy)
		for _, it := range s.items {
			statusColor := log.SuccessColor
			if it.Status == serverlist.StatusDisabled {
				statusColor = log.WarnColor
			}
			log.Printf(log.DetailColor, "- %-24s ", it.Label())
			log.Printf(statusColor, "[%s]", it.Status)
			if it.Summary != "" {
				log.Printf(log.DimColor, "  %s", it.Summary)
			}
			log.Printf(log.DetailColor, "\n")
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
