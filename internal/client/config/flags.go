package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/devmarket/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   backend base URL
//	-t int      request timeout in milliseconds
//	-d string   local store path
//	-l string   log level
//
// Only these flags are looked at (see flagx.FilterArgs); anything else on the
// command line is left for other parsers. Invalid values panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "backend base URL")
	fs.StringVar(&cfg.StorePath, "d", cfg.StorePath, "path of the local key-value store")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	timeoutMs := fs.Int("t", int(cfg.RequestTimeout.Milliseconds()), "request timeout (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeoutMs) * time.Millisecond
}
