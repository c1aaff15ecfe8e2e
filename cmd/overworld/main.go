// overworld is a terminal overworld game driven by cooperative scripts.
//
// Usage:
//
//	overworld play           - Play in the terminal
//	overworld serve          - Start SSH server for remote play
//	overworld rooms          - List the rooms in the asset set
//	overworld journal        - Show recent script runs and events
//
// Global flags:
//
//	--config <path>   - Config file (default: ~/.overworld/config.yaml)
//	--fps <rate>      - Override the tick rate
//	--db <path>       - Override the database path
//	--log-file <path> - Override the log file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-overworld/internal/config"
)

var (
	// Global flags
	flagConfig  string
	flagFPS     int
	flagDBPath  string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "overworld",
	Short: "Overworld - a scripted adventure in your terminal",
	Long: `Overworld is a small tile-based adventure played in the terminal.
Rooms, dialogues and story scripts are loaded from an asset set.

Available commands:
  play     - Play in the terminal
  serve    - Start SSH server for remote play
  rooms    - List rooms in the asset set
  journal  - Show recent script runs and events

Examples:
  overworld play
  overworld play --slot quick
  overworld serve --ssh :2222
  overworld journal --tui`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to journal database (empty = from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Path to log file (empty = from config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(roomsCmd)
	rootCmd.AddCommand(journalCmd)
}

// loadConfig reads the config and applies the global flag overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagFPS > 0 {
		cfg.Game.TickRate = flagFPS
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}
	return cfg
}
