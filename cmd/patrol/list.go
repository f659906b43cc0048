package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/guard-patrol/internal/maps"
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List maps in a directory",
	Long: `Shows the maps found under a directory (default: the configured maps
directory). Files that fail to parse are reported after the table.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func runList(_ *cobra.Command, args []string) error {
	dir := cfg.Server.MapsDir
	if len(args) == 1 {
		dir = args[0]
	}

	loader := maps.NewLoader(dir)
	all, err := loader.LoadAll()
	if err != nil {
		return err
	}

	if len(all) == 0 {
		fmt.Printf("No maps found in %s.\n", dir)
	} else {
		fmt.Printf("Maps in %s:\n\n", dir)

		maxIDLen := 2 // "ID" header
		for _, m := range all {
			maxIDLen = max(maxIDLen, len(m.ID))
		}

		fmt.Printf("  %-*s  %-9s  %-5s  %s\n", maxIDLen, "ID", "Size", "Walls", "File")
		fmt.Printf("  %-*s  %-9s  %-5s  %s\n", maxIDLen, "--", "----", "-----", "----")
		for _, m := range all {
			size := fmt.Sprintf("%dx%d", m.Height, m.Width)
			fmt.Printf("  %-*s  %-9s  %-5d  %s\n", maxIDLen, m.ID, size, len(m.Walls), m.FilePath)
		}
	}

	if len(loader.Skipped) > 0 {
		fmt.Println()
		for _, s := range loader.Skipped {
			logger.Warn("skipped map", "path", s.Path, "error", s.Err)
		}
	}

	fmt.Println()
	fmt.Println("Run 'patrol solve <id>' to analyse a map.")
	return nil
}
