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
//	-a string   address and port to bind the HTTP API
//	-d string   PostgreSQL DSN
//	-k string   JWT signing secret
//	-o string   owner username
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointAddr, "a", cfg.EndpointAddr, "address and port to bind the HTTP API")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "PostgreSQL DSN")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "JWT signing secret")
	fs.StringVar(&cfg.OwnerUsername, "o", cfg.OwnerUsername, "owner username")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
