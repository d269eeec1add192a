package tui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kenxcomp/kenotex/internal/config"
	"github.com/kenxcomp/kenotex/internal/distribution"
	"github.com/kenxcomp/kenotex/internal/logger"
	"github.com/kenxcomp/kenotex/internal/storage"
	"github.com/kenxcomp/kenotex/internal/theme"
)

// Run wires storage, the file watcher and the dispatcher together and
// runs the program until the user quits. The watcher and ledger are
// both optional; failures there degrade the app instead of killing it.
func Run(cfg config.Config) error {
	dataDir, err := cfg.DataDir()
	if err != nil {
		return fmt.Errorf("resolve data directory: %w", err)
	}
	store, err := storage.NewStore(dataDir)
	if err != nil {
		return err
	}

	var watcher *storage.Watcher
	if cfg.General.FileWatch {
		watcher, err = storage.NewWatcher([]string{store.DraftsDir(), store.ArchivesDir()}, cfg.WatchDebounce())
		if err != nil {
			logger.Error("file watcher: %v", err)
			watcher = nil
		}
	}
	if watcher != nil {
		defer watcher.Close()
	}

	ledger, err := distribution.OpenLedger(filepath.Join(dataDir, "ledger.db"))
	if err != nil {
		logger.Error("open ledger: %v", err)
		ledger = nil
	}
	if ledger != nil {
		defer ledger.Close()
	}

	dispatcher := distribution.NewDispatcher(cfg.Destinations, distribution.NewRunner(), ledger)
	themes := theme.NewManager(cfg.General.Theme)

	m, err := NewModel(cfg, store, watcher, dispatcher, themes)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
