package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dkurbatov/goblog/internal/flagx"
	"github.com/dkurbatov/goblog/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "15s" or as integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	Transport          string         `json:"transport"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	TokenFile          string         `json:"token_file"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags; when absent nothing is loaded.
// Only fields present in the file override the current values.
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

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.Transport != "" {
		cfg.Transport = jc.Transport
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.TokenFile != "" {
		cfg.TokenFile = jc.TokenFile
	}
}
