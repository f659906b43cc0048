package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/guard-patrol/internal/platform/tui"
	"github.com/vovakirdan/guard-patrol/internal/storage"
)

var (
	flagSSHAddr string
	flagHostKey string
	flagMapsDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the patrol SSH server",
	Long: `Start an SSH server that lets users pick a map and watch its patrol.

Maps are read once from the maps directory at startup. Analyses are cached
per map layout and, when storage is enabled, recorded in the run history.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.patrol/host_key

Examples:
  patrol serve                       # Listen on :23235
  patrol serve --ssh :2222           # Listen on port 2222
  patrol serve --maps ./puzzles      # Serve another maps directory

Users can connect with:
  ssh localhost -p 23235`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagMapsDir, "maps", "", "Maps directory (default from config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	sc := cfg.Server
	if flagSSHAddr != "" {
		sc.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		sc.HostKeyPath = flagHostKey
	}
	if flagMapsDir != "" {
		sc.MapsDir = flagMapsDir
	}

	var store *storage.Store
	if cfg.Storage.Enabled {
		if store = openStore(); store != nil {
			defer store.Close()
		}
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:        sc.Address,
		HostKeyPath:    sc.HostKeyPath,
		MapsDir:        sc.MapsDir,
		IdleTimeout:    sc.IdleTimeout(),
		CacheSize:      sc.CacheSize,
		TickRate:       cfg.Viewer.TickRate,
		ShowPlacements: cfg.Viewer.ShowPlacements,
	}, store, logger.WithPrefix("ssh"))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting patrol SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
