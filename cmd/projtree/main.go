package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"projtree/internal/adapters/configfile"
	"projtree/internal/adapters/editor"
	"projtree/internal/adapters/index"
	"projtree/internal/adapters/tui"
	"projtree/internal/config"
	"projtree/internal/logging"
)

func main() {
	configPath := config.ConfigPath()
	// Log to a file beside the config; stderr is invisible behind the
	// alt screen.
	log, closeLog := logging.NewFile(filepath.Join(filepath.Dir(configPath), "projtree.log"))
	defer closeLog()

	idx := index.NewIndex()
	if err := idx.Open(configPath); err != nil {
		log.Warn().Err(err).Msg("search index unavailable")
	}

	notifier := tui.NewNotifier()
	repo := configfile.NewRepository(configPath,
		configfile.WithLogger(log),
		configfile.WithNotifier(notifier),
		configfile.WithIndex(idx),
	)
	defer repo.Close()

	if err := repo.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := repo.StartWatching(); err != nil {
		log.Warn().Err(err).Msg("config watcher unavailable")
	}

	app := tui.NewApp(repo, idx, editor.NewOpener(), notifier)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
