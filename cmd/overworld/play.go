package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-overworld/internal/config"
	"github.com/vovakirdan/tui-overworld/internal/game"
	"github.com/vovakirdan/tui-overworld/internal/platform/tui"
	"github.com/vovakirdan/tui-overworld/internal/storage"
)

var (
	flagSlot   string
	flagAssets string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a new game, or continue from a save slot. Without --slot a title
menu lists the existing saves.

Controls:
  Arrows/WASD  - Walk
  Enter/Space  - Talk, use, advance dialogue
  Esc          - Cancel
  Ctrl+S       - Save to the current slot
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Examples:
  overworld play
  overworld play --slot quick
  overworld play --assets ./my-assets`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSlot, "slot", "", "Continue from this save slot")
	playCmd.Flags().StringVar(&flagAssets, "assets", "", "Asset directory (empty = from config)")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	if flagAssets != "" {
		cfg.Game.AssetsDir = flagAssets
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// The terminal belongs to the game, so logs go to a file.
	logOut, closeLog := openLogFile(cfg.Log.File)
	defer closeLog()
	logger := log.NewWithOptions(logOut, log.Options{
		ReportTimestamp: true,
		Prefix:          "overworld",
		Level:           cfg.LogLevel(),
	})

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open journal database: %v\n", err)
		// Continue without storage - no journal or save slots
		store = nil
	}

	slot := flagSlot
	if slot == "" {
		choice, menuErr := tui.RunMenu(store, width, height)
		if menuErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not list saves: %v\n", menuErr)
		}
		if choice.Quit {
			if store != nil {
				store.Close()
			}
			return
		}
		slot = choice.Slot
	}

	session, err := game.New(game.Options{
		Config: cfg,
		Store:  store,
		Logger: logger,
		Slot:   slot,
	})
	if err != nil {
		if store != nil {
			store.Close()
		}
		fmt.Fprintf(os.Stderr, "Error starting game: %v\n", err)
		os.Exit(1)
	}

	if slot == "" {
		slot = tui.DefaultSlot
	}
	runErr := tui.Run(session, tui.ModelOptions{
		Interval: cfg.TickInterval(),
		Width:    width,
		Height:   height,
		Slot:     slot,
	})
	session.Close()

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// openLogFile opens path for appending. Logging is discarded when the file
// cannot be opened.
func openLogFile(path string) (io.Writer, func()) {
	if path == "" {
		return io.Discard, func() {}
	}
	path = config.ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return io.Discard, func() {}
	}
	return f, func() { f.Close() }
}
