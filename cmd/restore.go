package cmd

import (
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"mcptoggle/internal/config"
	"mcptoggle/internal/log"
	"mcptoggle/internal/store"
	"mcptoggle/internal/util"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restores the server list from its most recent backup.",
	Long: `Replaces the resolved server-list file with the newest backup found in
the backup directory configured in config.yaml. A backup is written on
every enable/disable save, so this undoes the latest change. The current
document is not parsed first: restore works even on a corrupted file.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatal("Error loading config.yaml: %v", err)
		}
		path, err := util.ResolveServerListPath(configFlag, cfg)
		if err != nil {
			log.Fatal("Error locating server list: %v", err)
		}
		backupDir, err := util.ExpandPath(cfg.Backups.Path)
		if err != nil {
			log.Fatal("Error expanding backup path '%s': %v", cfg.Backups.Path, err)
		}
		opts := store.Options{BackupDir: backupDir, Retention: cfg.Backups.Retention}

		latest, err := store.LatestBackup(path, opts)
		if err != nil {
			log.Fatal("Error reading backup directory: %v", err)
		}
		if latest == "" {
			log.Warn("No backups found for %s in %s.", path, opts.BackupDir)
			return
		}

		var confirm bool
		prompt := &survey.Confirm{
			Message: "Overwrite " + path + " with " + latest + "?",
			Default: false,
		}
		if err := survey.AskOne(prompt, &confirm); err != nil {
			log.Fatal("Error during confirmation: %v", err)
		}
		if !confirm {
			log.Info("Restore cancelled.")
			return
		}

		sp := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
		sp.Suffix = " Restoring..."
		sp.Start()
		used, err := store.Restore(path, opts)
		sp.Stop()

		if err != nil {
			log.Fatal("Error restoring server list: %v", err)
		}
		log.Success("Restored %s from %s", path, used)
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
