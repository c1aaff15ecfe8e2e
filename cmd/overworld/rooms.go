package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-overworld/internal/assets"
	"github.com/vovakirdan/tui-overworld/internal/overworld"
	"github.com/vovakirdan/tui-overworld/internal/resources"
)

var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "List the rooms in the asset set",
	Long: `Loads the asset set and lists its rooms with their exits.

Examples:
  overworld rooms
  overworld rooms --assets ./my-assets`,
	Args: cobra.NoArgs,
	Run:  runRooms,
}

func init() {
	roomsCmd.Flags().StringVar(&flagAssets, "assets", "", "Asset directory (empty = from config)")
}

func runRooms(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	dir := cfg.Game.AssetsDir
	if flagAssets != "" {
		dir = flagAssets
	}

	fsys, err := assets.Open(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	res := resources.NewStorage()
	if err := assets.Load(res, fsys); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading assets: %v\n", err)
		os.Exit(1)
	}

	names := resources.Names[overworld.RoomTemplate](res)
	if len(names) == 0 {
		fmt.Println("No rooms available.")
		return
	}

	fmt.Println("Rooms:")
	fmt.Println()

	maxNameLen := 4 // "Name" header
	for _, n := range names {
		if len(n) > maxNameLen {
			maxNameLen = len(n)
		}
	}

	fmt.Printf("  %-*s  %-20s  %s\n", maxNameLen, "Name", "Title", "Exits")
	fmt.Printf("  %-*s  %-20s  %s\n", maxNameLen, "----", "-----", "-----")

	for _, n := range names {
		tmpl := resources.MustGet[overworld.RoomTemplate](res, n)
		exits := ""
		for i, x := range tmpl.Exits {
			if i > 0 {
				exits += ", "
			}
			exits += x.To
			if x.Locked {
				exits += " (locked)"
			}
		}
		marker := ""
		if n == cfg.Game.StartRoom {
			marker = " *"
		}
		fmt.Printf("  %-*s  %-20s  %s\n", maxNameLen, n+marker, tmpl.Title, exits)
	}

	fmt.Println()
	fmt.Println("* start room")
}
