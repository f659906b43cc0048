package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/guard-patrol/internal/platform/tui"
)

var (
	flagTickRate   int
	flagPlacements bool
)

var viewCmd = &cobra.Command{
	Use:   "view <map>",
	Short: "Watch the patrol step by step",
	Long: `Animate the guard's patrol in the terminal. The placement analysis runs
in the background and its result is shown in the status line.

Controls:
  Space      - Pause / resume
  N          - Single step
  + / -      - Faster / slower
  F          - Finish the walk
  R          - Restart
  P          - Toggle trapping placement overlay
  Q/Ctrl+C   - Quit

Examples:
  patrol view sample
  patrol view maps/big.txt --fps 120 --placements`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().IntVar(&flagTickRate, "fps", 0, "Ticks per second (default from config)")
	viewCmd.Flags().BoolVar(&flagPlacements, "placements", false, "Show placement overlay from the start")
}

func runView(_ *cobra.Command, args []string) error {
	m, err := resolveMap(args[0])
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	opts := tui.ViewerOptions{
		Width:          width,
		Height:         height,
		TickRate:       cfg.Viewer.TickRate,
		ShowPlacements: cfg.Viewer.ShowPlacements || flagPlacements,
	}
	if flagTickRate > 0 {
		opts.TickRate = flagTickRate
	}

	return tui.RunViewer(m, opts)
}
