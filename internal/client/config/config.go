package config

import (
	"time"

	"github.com/dmitrijs2005/devmarket/internal/common"
)

// Config holds runtime settings for the marketplace client.
//
// BaseURL and RequestTimeout are consumed once, when the transport is built;
// changing them afterwards has no effect on an existing client.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	// TokenKeys is the ordered list of store keys checked for the access token.
	TokenKeys []string
	StorePath string
	LogLevel  string
	LogFormat string

	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 8000 * time.Millisecond
	c.TokenKeys = common.DefaultTokenKeys()
	c.StorePath = "devmarket.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.S3Region = "us-east-1"
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
