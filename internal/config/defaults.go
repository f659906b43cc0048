package config

import (
	_ "embed"
)

//go:embed defaults/patrol.yaml
var defaultPatrolYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:      "info",
			Prefix:     "patrol",
			Timestamps: false,
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    "~/.patrol/runs.db",
		},
		Viewer: ViewerConfig{
			TickRate:       30,
			ShowPlacements: false,
		},
		Server: ServerConfig{
			Address:     ":23235",
			HostKeyPath: "",
			MapsDir:     "./maps",
			IdleMinutes: 30,
			CacheSize:   64,
		},
		Solve: SolveConfig{
			Workers: 4,
		},
	}
}
