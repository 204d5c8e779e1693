package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rishank14/serenityspace-cli/internal/flagx"
	"github.com/rishank14/serenityspace-cli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "60s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	APIBaseURL      string         `json:"api_base_url"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
	SweepInterval   timex.Duration `json:"sweep_interval"`
	HighlightWindow timex.Duration `json:"highlight_window"`
	MetadataDBPath  string         `json:"metadata_db_path"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies set fields into the provided Config; omitted fields keep their
//     earlier (default) values.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.SweepInterval.Duration != 0 {
		cfg.SweepInterval = time.Duration(jc.SweepInterval.Duration)
	}
	if jc.HighlightWindow.Duration != 0 {
		cfg.HighlightWindow = time.Duration(jc.HighlightWindow.Duration)
	}
	if jc.MetadataDBPath != "" {
		cfg.MetadataDBPath = jc.MetadataDBPath
	}
}
