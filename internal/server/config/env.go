package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment.
// A .env file in the working directory is loaded first if present; real
// environment variables take precedence over it.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
