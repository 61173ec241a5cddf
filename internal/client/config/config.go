package config

import "time"

// Config holds runtime settings for the blog CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port (gRPC) or base URL (HTTP) of the backend.
//   - Transport: wire protocol, "grpc" or "http".
//   - RequestTimeout: per-call deadline.
//   - TokenFile: where the session token is persisted between runs.
type Config struct {
	ServerEndpointAddr string
	Transport          string
	RequestTimeout     time.Duration
	TokenFile          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.Transport = "grpc"
	c.RequestTimeout = 15 * time.Second
	c.TokenFile = "token.txt"
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
