package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-overworld/internal/platform/tui"
	"github.com/vovakirdan/tui-overworld/internal/storage"
)

var (
	flagLimit      int
	flagJournalTUI bool
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show recent script runs and events",
	Long: `Display the most recent script runs and raised events recorded by
play and serve sessions.

Examples:
  overworld journal
  overworld journal --limit 50
  overworld journal --tui`,
	Args: cobra.NoArgs,
	Run:  runJournal,
}

func init() {
	journalCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of entries to show")
	journalCmd.Flags().BoolVar(&flagJournalTUI, "tui", false, "Browse the journal interactively")
}

func runJournal(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagJournalTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunJournal(store, flagLimit, width, height); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error running journal: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runs, err := store.RecentRuns(flagLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving script runs: %v\n", err)
		os.Exit(1)
	}
	events, err := store.RecentEvents(flagLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving events: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Script runs")
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("  No scripts recorded yet.")
	} else {
		fmt.Printf("  %-16s  %-6s  %-40s  %s\n", "Started", "Handle", "Script", "Status")
		fmt.Printf("  %-16s  %-6s  %-40s  %s\n", "-------", "------", "------", "------")
		for _, r := range runs {
			status := "waiting"
			if r.Done() {
				status = "done " + r.EndedAt.Sub(r.StartedAt).Round(time.Millisecond).String()
			}
			fmt.Printf("  %-16s  %-6d  %-40s  %s\n",
				r.StartedAt.Format("2006-01-02 15:04"), r.Script, r.Name, status)
		}
	}

	fmt.Println()
	fmt.Println("Events")
	fmt.Println()
	if len(events) == 0 {
		fmt.Println("  No events recorded yet.")
		return
	}
	fmt.Printf("  %-16s  %-40s  %s\n", "Raised", "Event", "Subscribers")
	fmt.Printf("  %-16s  %-40s  %s\n", "------", "-----", "-----------")
	for _, e := range events {
		fmt.Printf("  %-16s  %-40s  %d\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Event, e.Subscribers)
	}
}
