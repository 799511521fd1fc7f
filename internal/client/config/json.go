package config

import (
	"encoding/json"
	"os"
	"time"

	"stockpilot/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The
// timeout is given in seconds; it is copied into the runtime Config as
// a time.Duration.
type JsonConfig struct {
	APIBaseURL     string `json:"api_base_url"`
	DatabaseDSN    string `json:"database_dsn"`
	GoogleClientID string `json:"google_client_id"`
	RequestTimeout int    `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Only fields present in the file override the current values. Read or
// unmarshal errors panic; the caller may recover if desired.
func parseJson(cfg *Config) {
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
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.GoogleClientID != "" {
		cfg.GoogleClientID = jc.GoogleClientID
	}
	if jc.RequestTimeout > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout) * time.Second
	}
}
