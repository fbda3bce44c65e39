package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/devmarket/internal/flagx"
	"github.com/dmitrijs2005/devmarket/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// distinguish "absent" from "empty" so a partial file only overrides what it
// mentions.
type JsonConfig struct {
	BaseURL        *string         `json:"base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	TokenKeys      []string        `json:"token_keys"`
	StorePath      *string         `json:"store_path"`
	LogLevel       *string         `json:"log_level"`
	LogFormat      *string         `json:"log_format"`
	S3             *JsonS3Config   `json:"s3"`
}

type JsonS3Config struct {
	Region       string `json:"region"`
	BaseEndpoint string `json:"base_endpoint"`
	AccessKey    string `json:"access_key"`
	SecretKey    string `json:"secret_key"`
}

// parseJson overlays Config with values loaded from the JSON file given via
// -c or -config. Without either flag it does nothing. Read and unmarshal
// errors panic; defaults -> parseJson -> parseFlags is the intended order.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
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

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	if jc.BaseURL != nil {
		cfg.BaseURL = *jc.BaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if len(jc.TokenKeys) > 0 {
		cfg.TokenKeys = append([]string(nil), jc.TokenKeys...)
	}
	if jc.StorePath != nil {
		cfg.StorePath = *jc.StorePath
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
	if jc.S3 != nil {
		cfg.S3Region = jc.S3.Region
		cfg.S3BaseEndpoint = jc.S3.BaseEndpoint
		cfg.S3AccessKey = jc.S3.AccessKey
		cfg.S3SecretKey = jc.S3.SecretKey
	}
}
