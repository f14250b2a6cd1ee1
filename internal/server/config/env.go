package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays PROFILESYNC_* environment variables. Unset variables
// leave the current value alone.
func parseEnv(config *Config) {
	if err := cleanenv.ReadEnv(config); err != nil {
		panic(err)
	}
}
