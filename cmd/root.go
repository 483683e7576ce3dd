package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mcptoggle/internal/config"
	"mcptoggle/internal/log"
	"mcptoggle/internal/serverlist"
	"mcptoggle/internal/store"
	"mcptoggle/internal/util"
)

// Exit codes. Each failure kind gets its own code so scripts can tell "no
// such server" from "ambiguous identifier" without parsing output.
const (
	ExitFailure               = 1
	ExitNoMatch               = 2
	ExitAmbiguous             = 3
	ExitUnsupportedSchema     = 4
	ExitUnsupportedTransition = 5
)

var configFlag string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mcptoggle",
	Short: "Enable and disable MCP servers in a client's server list.",
	Long: `mcptoggle edits the mcpServers section of an MCP client's JSON
configuration (Claude Desktop, Cursor, Windsurf, VS Code) in place.
Servers are matched by id, key, or name, case-insensitively. Disabled
servers either keep an "enabled": false field or are parked under
mcpServersDisabled, whichever convention the document already uses.
The file is backed up and replaced atomically on every save.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			color.NoColor = true
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitFailure)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "path to the server-list file to edit")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// session bundles everything the subcommands need for one resolve+transition
// cycle over a freshly loaded document.
type session struct {
	cfg   *config.Config
	path  string
	doc   map[string]any
	shape serverlist.Shape
	items []serverlist.Item
}

// openSession loads the app config, resolves the server-list path, loads the
// document and enumerates its items. I/O problems are fatal; an unsupported
// schema exits with its own code before any mutation can happen.
func openSession() *session {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Error loading config.yaml: %v", err)
	}

	path, err := util.ResolveServerListPath(configFlag, cfg)
	if err != nil {
		log.Fatal("Error locating server list: %v", err)
	}

	doc, err := store.Load(path)
	if err != nil {
		log.Fatal("Error loading server list: %v", err)
	}

	shape, err := serverlist.DetectShape(doc)
	if err != nil {
		log.Error("%v", err)
		os.Exit(ExitUnsupportedSchema)
	}

	return &session{
		cfg:   cfg,
		path:  path,
		doc:   doc,
		shape: shape,
		items: serverlist.Enumerate(doc, shape),
	}
}

// storeOptions expands the configured backup directory for store calls.
func (s *session) storeOptions() store.Options {
	dir, err := util.ExpandPath(s.cfg.Backups.Path)
	if err != nil {
		log.Fatal("Error expanding backup path '%s': %v", s.cfg.Backups.Path, err)
	}
	return store.Options{BackupDir: dir, Retention: s.cfg.Backups.Retention}
}

// runToggle is the shared enable/disable flow: resolve the identifier (or ask
// interactively when none was given), apply the transition, report the
// changes, and save unless this is a dry run.
func runToggle(args []string, verb string, dryRun bool,
	apply func(map[string]any, serverlist.Item, serverlist.Shape) ([]string, error)) {

	s := openSession()

	var match serverlist.MatchResult
	if len(args) == 1 {
		match = serverlist.Resolve(s.items, args[0])
	} else {
		if len(s.items) == 0 {
			log.Warn("No servers found in %s.", s.path)
			return
		}
		idx, err := pickItem(s.items, fmt.Sprintf("Choose a server to %s:", verb))
		if err != nil {
			log.Fatal("Error during selection: %v", err)
		}
		match = serverlist.MatchResult{Item: &s.items[idx]}
	}

	switch {
	case match.Resolved():
		// fall through to the transition
	case len(match.Ambiguous) > 0:
		log.Error("%q is ambiguous between %d servers:", args[0], len(match.Ambiguous))
		for _, it := range match.Ambiguous {
			log.Detail("  - %s (%s)", it.Label(), it.Status)
		}
		os.Exit(ExitAmbiguous)
	default:
		log.Error("No server matches %q.", args[0])
		if len(match.Suggestions) > 0 {
			log.Info("Did you mean:")
			for _, it := range match.Suggestions {
				log.Detail("  - %s", it.Label())
			}
		}
		os.Exit(ExitNoMatch)
	}

	changes, err := apply(s.doc, *match.Item, s.shape)
	if err != nil {
		var transitionErr *serverlist.TransitionError
		if errors.As(err, &transitionErr) {
			log.Error("%v", err)
			os.Exit(ExitUnsupportedTransition)
		}
		log.Fatal("Error applying %s: %v", verb, err)
	}

	for _, change := range changes {
		log.Detail("  %s", change)
	}

	if dryRun {
		log.Info("Dry run: %s left unchanged.", s.path)
		return
	}

	if err := store.Save(s.path, s.doc, s.storeOptions()); err != nil {
		log.Fatal("Error saving server list: %v", err)
	}
	log.Success("%sd %q in %s", verb, match.Item.Label(), s.path)
}

// pickItem presents a survey selection over the items and returns the chosen
// index.
func pickItem(items []serverlist.Item, message string) (int, error) {
	options := make([]string, len(items))
	for i, it := range items {
		line := fmt.Sprintf("%s [%s]", it.Label(), it.Status)
		if it.Summary != "" {
			line += " " + it.Summary
		}
		options[i] = line
	}

	var picked string
	prompt := &survey.Select{
		Message:  message,
		Options:  options,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &picked); err != nil {
		return 0, err
	}
	for i, o := range options {
		if o == picked {
			return i, nil
		}
	}
	return 0, fmt.Errorf("selection %q not found", picked)
}
