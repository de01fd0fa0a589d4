package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"projtree/internal/adapters/configfile"
	"projtree/internal/adapters/index"
	"projtree/internal/config"
	"projtree/internal/logging"
	"projtree/internal/ports"
)

var (
	configPath string
	repo       ports.ConfigRepository
	searchIdx  ports.SearchIndex
)

// stderrNotifier prints engine warnings to stderr so scripted use still
// surfaces config problems.
type stderrNotifier struct{}

func (stderrNotifier) Warn(msg string)  { fmt.Fprintln(os.Stderr, "warning:", msg) }
func (stderrNotifier) Error(msg string) { fmt.Fprintln(os.Stderr, "error:", msg) }

var rootCmd = &cobra.Command{
	Use:   "projtree-cli",
	Short: "CLI for managing the project bookmark tree",
	Long: `projtree-cli manages a tree of project bookmarks stored in a JSON
config file. Projects are grouped into nested categories and carry a
label, a filesystem path (stored in portable, home-relative form), and an
optional icon.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		log := logging.NewStderr()
		idx := index.NewIndex()
		if err := idx.Open(configPath); err != nil {
			log.Warn().Err(err).Msg("search index unavailable")
		}
		searchIdx = idx
		repo = configfile.NewRepository(configPath,
			configfile.WithLogger(log),
			configfile.WithNotifier(stderrNotifier{}),
			configfile.WithIndex(idx),
		)
		return repo.Load()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.ConfigPath(), "path to the projects config file")
}

// GetRepo returns the initialized repository
func GetRepo() ports.ConfigRepository {
	return repo
}

// GetIndex returns the initialized search index
func GetIndex() ports.SearchIndex {
	return searchIdx
}
