// patrol simulates a guard walking a grid and finds the single-cell
// obstructions that would trap it in a loop.
//
// Usage:
//
//	patrol solve <map>...    - Count visited cells and trapping placements
//	patrol list [dir]        - List available maps
//	patrol view <map>        - Animate the patrol in the terminal
//	patrol history [map-id]  - Show recorded runs
//	patrol export <map>      - Print a map as YAML
//	patrol serve             - Start SSH server for remote viewing
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.patrol/config.yaml, ./configs/patrol.yaml)
//	--db <path>         - Run history database (default: ~/.patrol/runs.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/guard-patrol/internal/config"
	"github.com/vovakirdan/guard-patrol/internal/maps"
	"github.com/vovakirdan/guard-patrol/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string

	// Resolved in PersistentPreRunE
	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "patrol",
	Short: "Guard patrol simulator",
	Long: `patrol walks a guard across a grid map: it moves straight ahead and
turns right whenever the next cell is blocked, until it leaves the grid.

It reports how many distinct cells the guard covers and how many single
extra obstructions would trap it in an endless loop.

Available commands:
  solve    - Analyse one or more maps
  list     - Show maps in a directory
  view     - Watch the patrol step by step
  history  - Show recorded runs
  export   - Convert a map to YAML
  serve    - Start SSH server

Examples:
  patrol solve maps/sample.txt
  patrol solve --save --workers 8 maps/*.txt
  patrol view sample
  patrol history sample --tui`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides config)")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads config, applies flag overrides and builds the logger.
func setup(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	cfg = loaded

	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	logger, err = newLogger(cfg.Log)
	return err
}

func newLogger(lc config.LogConfig) (*log.Logger, error) {
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", lc.Level, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		Prefix:          lc.Prefix,
		ReportTimestamp: lc.Timestamps,
	}), nil
}

// openStore opens the run history database, or returns nil with a warning
// when it cannot be opened.
func openStore() *storage.Store {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open run history", "path", cfg.Storage.Path, "error", err)
		return nil
	}
	return store
}

// resolveMap loads arg as a file path, or else as a map ID under the maps directory.
func resolveMap(arg string) (maps.Map, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return maps.LoadFile(arg)
	}

	m, err := maps.NewLoader(cfg.Server.MapsDir).LoadByID(arg)
	if err != nil {
		return maps.Map{}, fmt.Errorf("no map file or ID %q (maps dir %s): %w", arg, cfg.Server.MapsDir, err)
	}
	return m, nil
}
