package config

import (
	"flag"
	"os"
	"time"

	"github.com/dkurbatov/goblog/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address
//	-g string   gRPC bind address
//	-d string   database DSN
//	-k string   token signing secret
//	-t int      token TTL in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-k", "-t"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointAddrHTTP, "a", cfg.EndpointAddrHTTP, "HTTP bind address")
	fs.StringVar(&cfg.EndpointAddrGRPC, "g", cfg.EndpointAddrGRPC, "gRPC bind address")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "PostgreSQL DSN")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "token signing secret")
	tokenTTL := fs.Int("t", int(cfg.TokenTTL.Seconds()), "token TTL (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.TokenTTL = time.Duration(*tokenTTL) * time.Second
}
