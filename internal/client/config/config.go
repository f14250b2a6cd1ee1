package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the profilesync CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - AccessToken: bearer token sent with every call except ping.
//   - SecretKey: HMAC secret used by the token command; must match the server.
//   - TokenTTL: lifetime of tokens minted by the token command.
//   - RequestTimeout: deadline for a single command.
type Config struct {
	ServerEndpointAddr string        `env:"PROFILESYNC_GRPC_TARGET"`
	AccessToken        string        `env:"PROFILESYNC_ACCESS_TOKEN"`
	SecretKey          string        `env:"PROFILESYNC_SECRET_KEY"`
	TokenTTL           time.Duration `env:"PROFILESYNC_ACCESS_TOKEN_TTL"`
	RequestTimeout     time.Duration `env:"PROFILESYNC_REQUEST_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.AccessToken = ""
	c.SecretKey = "secretKey"
	c.TokenTTL = 60 * time.Minute
	c.RequestTimeout = 60 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}
