package config

import (
	"flag"
	"os"

	"github.com/mswiatek/scholarfolio/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string   base URL of the portfolio backend
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointURL, "s", cfg.ServerEndpointURL, "base URL of the portfolio backend")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
