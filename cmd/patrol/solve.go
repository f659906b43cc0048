package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/guard-patrol/internal/maps"
	"github.com/vovakirdan/guard-patrol/internal/patrol"
	"github.com/vovakirdan/guard-patrol/internal/storage"
)

var (
	flagSave    bool
	flagWorkers int
	flagCells   bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <map>...",
	Short: "Count visited cells and trapping placements",
	Long: `Analyse one or more maps. For each map, prints the number of distinct
cells the guard visits before leaving the grid and the number of single-cell
obstructions that would trap it in a loop.

A map argument is a file path or the ID of a map in the maps directory.
Several maps are solved concurrently; each analysis itself is sequential.

Examples:
  patrol solve maps/sample.txt
  patrol solve sample --cells
  patrol solve --save --workers 8 maps/*.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().BoolVar(&flagSave, "save", false, "Record results in the run history")
	solveCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Maps solved concurrently (default from config)")
	solveCmd.Flags().BoolVar(&flagCells, "cells", false, "List the trapping placement cells")
}

type solved struct {
	m   maps.Map
	res patrol.Result
}

func runSolve(cmd *cobra.Command, args []string) error {
	workers := cfg.Solve.Workers
	if flagWorkers > 0 {
		workers = flagWorkers
	}

	results := make([]solved, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(workers)

	for i, arg := range args {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := resolveMap(arg)
			if err != nil {
				return err
			}
			res := patrol.Analyze(m.ToGrid(), m.Guard())
			logger.Debug("solved", "map", m.ID, "visited", res.Visited,
				"placements", res.Placements, "elapsed", res.Elapsed)
			results[i] = solved{m: m, res: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var store *storage.Store
	if recordingEnabled(flagSave) {
		if store = openStore(); store != nil {
			defer store.Close()
		}
	}

	for _, s := range results {
		printResult(s)
		if store == nil {
			continue
		}
		rec := storage.NewRunRecord(s.m.ID, s.m.Hash(), s.m.Height, s.m.Width, s.res)
		id, err := store.SaveRun(rec)
		if err != nil {
			logger.Warn("could not record run", "map", s.m.ID, "error", err)
			continue
		}
		logger.Info("run recorded", "map", s.m.ID, "id", id)
	}
	return nil
}

// recordingEnabled reports whether a requested save should happen; a disabled
// history in config wins over --save.
func recordingEnabled(requested bool) bool {
	if !requested {
		return false
	}
	if !cfg.Storage.Enabled {
		logger.Warn("run history is disabled in config, not saving")
		return false
	}
	return true
}

func printResult(s solved) {
	name := s.m.FilePath
	if name == "" {
		name = s.m.ID
	}

	fmt.Printf("%s (%dx%d)\n", name, s.m.Height, s.m.Width)
	fmt.Printf("  visited:    %d\n", s.res.Visited)
	fmt.Printf("  placements: %d\n", s.res.Placements)
	if s.res.Looped {
		fmt.Println("  note:       the guard never leaves this grid; placements do not apply")
	}
	fmt.Printf("  elapsed:    %s\n", s.res.Elapsed.Round(time.Microsecond))

	if flagCells && len(s.res.PlacementCells) > 0 {
		cells := make([]string, len(s.res.PlacementCells))
		for i, p := range s.res.PlacementCells {
			cells[i] = p.String()
		}
		fmt.Printf("  cells:      %s\n", strings.Join(cells, " "))
	}
}
