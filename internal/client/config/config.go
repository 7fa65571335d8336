// Package config handles configuration for the CLI client.
package config

import (
	"flag"
	"os"

	"github.com/vpopov/authgate/internal/flagx"
)

// Config holds runtime settings for the authgate CLI.
type Config struct {
	ServerURL string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
}

// LoadConfig builds a Config from defaults overlaid with command-line flags.
//
// Supported flags:
//
//	-e string   server base URL (e.g., "http://localhost:8080")
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()

	args := flagx.FilterArgs(os.Args[1:], []string{"-e"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerURL, "e", cfg.ServerURL, "server base URL")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	return cfg
}
