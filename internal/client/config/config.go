package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the OliveCRM CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API.
//   - StateFile: path of the local sqlite file holding remembered credentials.
//   - RequestTimeout: per-request timeout for API calls.
//   - LogLevel: zerolog level name (trace, debug, info, warn, error).
type Config struct {
	ServerBaseURL  string
	StateFile      string
	RequestTimeout time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.StateFile = defaultStateFile()
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"
}

func defaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "olivecrm.db"
	}
	return filepath.Join(dir, "olivecrm", "state.db")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
