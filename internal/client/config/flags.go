package config

import (
	"flag"
	"os"
	"time"

	"github.com/dkurbatov/goblog/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address of the backend server (default from Config)
//	-p string   transport protocol, grpc or http (default from Config)
//	-t int      request timeout in seconds (default from Config)
//	-f string   session token file (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-p", "-t", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address of the backend server")
	fs.StringVar(&cfg.Transport, "p", cfg.Transport, "transport protocol (grpc or http)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.TokenFile, "f", cfg.TokenFile, "session token file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
