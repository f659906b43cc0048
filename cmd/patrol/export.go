package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/guard-patrol/internal/maps/formats"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export <map>",
	Short: "Print a map as YAML",
	Long: `Convert a map to the YAML map format, which carries an ID, a display
name and free-form metadata next to the layout.

Examples:
  patrol export maps/sample.txt
  patrol export sample -o maps/sample.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "", "Write to file instead of stdout")
}

func runExport(_ *cobra.Command, args []string) error {
	m, err := resolveMap(args[0])
	if err != nil {
		return err
	}

	data, err := formats.MarshalYAML(m.Map)
	if err != nil {
		return err
	}

	if flagExportOut == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(flagExportOut, data, 0o644); err != nil {
		return err
	}
	logger.Info("map exported", "map", m.ID, "path", flagExportOut)
	return nil
}
