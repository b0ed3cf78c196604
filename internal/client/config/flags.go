package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/homeledger/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address of the gRPC backend
//	-p string   directory for the local database file
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the gRPC backend")
	fs.StringVar(&cfg.DataDir, "p", cfg.DataDir, "directory for the local database file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
