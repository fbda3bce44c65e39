// Package config loads runtime configuration for the devmarket client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL, e.g. http://127.0.0.1:8000
//	-t int      request timeout in milliseconds
//	-d string   path of the local SQLite key-value store
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "8s" or integer
// nanoseconds. Fields missing from the file keep their previous value:
//
//	{
//	  "base_url": "http://127.0.0.1:8000",
//	  "request_timeout": "8s",
//	  "token_keys": ["access_token", "access", "token"],
//	  "store_path": "devmarket.db",
//	  "log_level": "debug",
//	  "log_format": "console",
//	  "s3": {"region": "auto", "base_endpoint": "http://127.0.0.1:9000",
//	         "access_key": "minio", "secret_key": "minio123"}
//	}
//
// Note: This package does not read environment variables; the backend origin
// and timeout are fixed for the lifetime of the process once loaded.
package config
