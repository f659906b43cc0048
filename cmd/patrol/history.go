package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/guard-patrol/internal/platform/tui"
	"github.com/vovakirdan/guard-patrol/internal/storage"
)

var (
	flagHistoryTUI   bool
	flagHistoryLimit int
	flagHistoryClear bool
	flagHistoryRun   string
)

var historyCmd = &cobra.Command{
	Use:   "history [map-id]",
	Short: "Show recorded runs",
	Long: `Display recorded solve results, newest first. Without a map ID all
maps are listed together.

Examples:
  patrol history
  patrol history sample --limit 5
  patrol history --tui
  patrol history sample --clear
  patrol history --run 0192f3a4-...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse runs interactively")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum runs to print")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the recorded runs of a map")
	historyCmd.Flags().StringVar(&flagHistoryRun, "run", "", "Show a single run by ID")
}

func runHistory(_ *cobra.Command, args []string) error {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	mapID := ""
	if len(args) == 1 {
		mapID = args[0]
	}

	if flagHistoryRun != "" {
		run, err := store.RunByID(flagHistoryRun)
		if storage.IsNotFound(err) {
			return fmt.Errorf("no run with ID %q", flagHistoryRun)
		}
		if err != nil {
			return err
		}
		printRun(os.Stdout, *run)
		return nil
	}

	if flagHistoryClear {
		if mapID == "" {
			return fmt.Errorf("--clear needs a map ID")
		}
		if err := store.DeleteRuns(mapID); err != nil {
			return err
		}
		fmt.Printf("Deleted runs for %s.\n", mapID)
		return nil
	}

	if flagHistoryTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunHistory(store, mapID, width, height)
	}

	var runs []storage.RunRecord
	if mapID == "" {
		runs, err = store.AllRuns(flagHistoryLimit)
	} else {
		runs, err = store.RecentRuns(mapID, flagHistoryLimit)
	}
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'patrol solve --save <map>' to record one.")
		return nil
	}

	fmt.Printf("  %-16s  %-12s  %-7s  %-7s  %-10s  %s\n", "Date", "Map", "Visited", "Loops", "Elapsed", "ID")
	fmt.Printf("  %-16s  %-12s  %-7s  %-7s  %-10s  %s\n", "----", "---", "-------", "-----", "-------", "--")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-12s  %-7d  %-7s  %-10s  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.MapID, r.Visited, placementsLabel(r),
			r.Elapsed.Round(time.Microsecond), r.ID)
	}

	if mapID != "" {
		if count, err := store.RunCount(mapID); err == nil && count > len(runs) {
			fmt.Printf("\n%d of %d runs shown.\n", len(runs), count)
		}
		if latest, err := store.LatestRun(mapID); err == nil && latest != nil {
			fmt.Printf("\nLatest: %d visited, %s placements on %s\n",
				latest.Visited, placementsLabel(*latest), latest.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
	}
	return nil
}

// placementsLabel shows "-" for maps whose guard never leaves, where no
// placement count applies.
func placementsLabel(r storage.RunRecord) string {
	if r.Looped {
		return "-"
	}
	return fmt.Sprintf("%d", r.Placements)
}

func printRun(w io.Writer, r storage.RunRecord) {
	fmt.Fprintf(w, "Run %s\n", r.ID)
	fmt.Fprintf(w, "  map:        %s (%dx%d)\n", r.MapID, r.Height, r.Width)
	fmt.Fprintf(w, "  hash:       %s\n", r.MapHash)
	fmt.Fprintf(w, "  visited:    %d\n", r.Visited)
	fmt.Fprintf(w, "  placements: %s\n", placementsLabel(r))
	if r.Looped {
		fmt.Fprintln(w, "  note:       the guard never leaves this grid")
	}
	fmt.Fprintf(w, "  elapsed:    %s\n", r.Elapsed.Round(time.Microsecond))
	fmt.Fprintf(w, "  recorded:   %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
}
