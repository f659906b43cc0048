// Package config provides YAML-based configuration loading for the patrol
// tool: logging, storage, the viewer, the SSH server and batch solving.
package config

import "time"

// Config is the full tool configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Server  ServerConfig  `yaml:"server"`
	Solve   SolveConfig   `yaml:"solve"`
}

// LogConfig controls the charmbracelet logger.
type LogConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error
	Prefix     string `yaml:"prefix"`
	Timestamps bool   `yaml:"timestamps"`
}

// StorageConfig controls run history persistence.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ViewerConfig controls the patrol animation.
type ViewerConfig struct {
	TickRate       int  `yaml:"tick_rate"`       // steps per second
	ShowPlacements bool `yaml:"show_placements"` // overlay trapping cells at start
}

// ServerConfig controls the SSH server.
type ServerConfig struct {
	Address     string `yaml:"address"`
	HostKeyPath string `yaml:"host_key_path"`
	MapsDir     string `yaml:"maps_dir"`
	IdleMinutes int    `yaml:"idle_minutes"`
	CacheSize   int    `yaml:"cache_size"` // analyses kept in memory
}

// IdleTimeout returns the idle timeout as a duration.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleMinutes) * time.Minute
}

// SolveConfig controls batch solving.
type SolveConfig struct {
	Workers int `yaml:"workers"` // maps solved concurrently
}

// Limits applied by Validate.
const (
	MinTickRate  = 1
	MaxTickRate  = 240
	MaxWorkers   = 64
	MinCacheSize = 1
)

// Validate clamps out-of-range values to usable ones.
func (c *Config) Validate() {
	c.Viewer.TickRate = clamp(c.Viewer.TickRate, MinTickRate, MaxTickRate)
	c.Solve.Workers = clamp(c.Solve.Workers, 1, MaxWorkers)
	if c.Server.CacheSize < MinCacheSize {
		c.Server.CacheSize = MinCacheSize
	}
	if c.Server.IdleMinutes <= 0 {
		c.Server.IdleMinutes = DefaultConfig().Server.IdleMinutes
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func clamp(val, lo, hi int) int {
	return max(lo, min(hi, val))
}
