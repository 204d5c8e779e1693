package config

import "time"

// Config holds runtime settings for the SerenitySpace CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API, including the /api/v1 prefix.
//   - RequestTimeout: per-request HTTP timeout.
//   - SweepInterval: how often locally held vault entries are checked against
//     the clock while the vault view is open.
//   - HighlightWindow: how long a just-delivered vault entry stays flagged.
//   - MetadataDBPath: path of the local sqlite file persisting the session.
type Config struct {
	APIBaseURL      string
	RequestTimeout  time.Duration
	SweepInterval   time.Duration
	HighlightWindow time.Duration
	MetadataDBPath  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080/api/v1"
	c.RequestTimeout = 15 * time.Second
	c.SweepInterval = 60 * time.Second
	c.HighlightWindow = 3 * time.Second
	c.MetadataDBPath = "serenityspace.db"
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
