// Package yahoo provides a client for the Yahoo Finance public search API.
package yahoo

import (
	"os"
	"time"
)

// DefaultBaseURL is the public Yahoo Finance API endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Config holds configuration for the Yahoo Finance API client.
type Config struct {
	BaseURL string        // Base URL for the API
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Yahoo Finance configuration from environment variables.
// The base URL falls back to the public endpoint when YAHOO_BASE_URL is not set.
func LoadConfig() Config {
	base := os.Getenv("YAHOO_BASE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	return Config{
		BaseURL: base,
		Timeout: 10 * time.Second,
	}
}
