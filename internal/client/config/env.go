package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment.
// A .env file in the working directory is loaded first if present;
// real environment variables win over it.
//
// Recognized variables:
//
//	STOCKPILOT_API_URL           backend base URL
//	STOCKPILOT_DB                sqlite DSN for the session store
//	STOCKPILOT_GOOGLE_CLIENT_ID  OAuth client ID for google sign-in
//	STOCKPILOT_TIMEOUT           request timeout in seconds
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("STOCKPILOT_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("STOCKPILOT_DB"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("STOCKPILOT_GOOGLE_CLIENT_ID"); v != "" {
		cfg.GoogleClientID = v
	}
	if v := os.Getenv("STOCKPILOT_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.RequestTimeout = time.Duration(secs) * time.Second
		}
	}
}
