package cmd

import (
	"github.com/spf13/cobra"

	"mcptoggle/internal/config"
	"mcptoggle/internal/log"
	"mcptoggle/internal/util"
)

// clientsCmd represents the clients command
var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Shows detected MCP clients and the server list that would be edited.",
	Long: `Probes the known MCP client locations on this system (Claude Desktop,
Cursor, Windsurf, VS Code) plus any clients from config.yaml, and prints
which server-list file the other commands would operate on.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatal("Error loading config.yaml: %v", err)
		}

		detected, err := util.DetectClients()
		if err != nil {
			log.Fatal("Error detecting clients: %v", err)
		}

		if len(detected) == 0 && len(cfg.Clients) == 0 {
			log.Warn("No MCP-compatible clients detected on this system.")
		} else {
			log.Info("Detected clients:")
			for _, c := range detected {
				log.Detail("  - %-16s %s", c.Name, c.ConfigPath)
			}
			for name, c := range cfg.Clients {
				log.Detail("  - %-16s %s (config.yaml)", name, c.ConfigPath)
			}
		}

		path, err := util.ResolveServerListPath(configFlag, cfg)
		if err != nil {
			log.Warn("%v", err)
			return
		}
		log.Success("Active server list: %s", path)
	},
}

func init() {
	rootCmd.AddCommand(clientsCmd)
}
