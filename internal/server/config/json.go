package config

import (
	"encoding/json"
	"os"

	"github.com/dkurbatov/goblog/internal/flagx"
	"github.com/dkurbatov/goblog/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so durations can be written either as strings like "1h" or
// as integer nanoseconds. After parsing, values are copied into the runtime
// Config (which uses time.Duration).
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC string         `json:"endpoint_addr_grpc"`
	DatabaseDSN      string         `json:"database_dsn"`
	SecretKey        string         `json:"secret_key"`
	TokenTTL         timex.Duration `json:"token_ttl"`
	DefaultPageSize  uint32         `json:"default_page_size"`
	MaxPageSize      uint32         `json:"max_page_size"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	MaxBodyBytes     int64          `json:"max_body_bytes"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags; when absent, nothing is loaded.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
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

	if jc.EndpointAddrHTTP != "" {
		cfg.EndpointAddrHTTP = jc.EndpointAddrHTTP
	}
	if jc.EndpointAddrGRPC != "" {
		cfg.EndpointAddrGRPC = jc.EndpointAddrGRPC
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.TokenTTL.Duration != 0 {
		cfg.TokenTTL = jc.TokenTTL.Duration
	}
	if jc.DefaultPageSize != 0 {
		cfg.DefaultPageSize = jc.DefaultPageSize
	}
	if jc.MaxPageSize != 0 {
		cfg.MaxPageSize = jc.MaxPageSize
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.MaxBodyBytes != 0 {
		cfg.MaxBodyBytes = jc.MaxBodyBytes
	}
}
