package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays Config with PROFILESYNC_* environment variables.
// Unset variables leave the current values untouched.
func parseEnv(cfg *Config) {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}
