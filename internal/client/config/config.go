package config

import "time"

// DefaultAPIBaseURL is the production backend.
const DefaultAPIBaseURL = "https://stock-predictor-api.fly.dev"

// Config holds runtime settings for the stockpilot CLI.
//
// Fields:
//   - APIBaseURL: root of the backend HTTP API.
//   - DatabaseDSN: sqlite file holding the persisted session tokens.
//   - GoogleClientID: OAuth client the federated sign-in expects.
//   - RequestTimeout: per-request transport timeout.
type Config struct {
	APIBaseURL     string
	DatabaseDSN    string
	GoogleClientID string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.DatabaseDSN = "stockpilot.db"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays
// values from the environment (including a .env file if present), a
// JSON file (if one is named) and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
