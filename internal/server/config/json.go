package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/profilesync/internal/flagx"
	"github.com/dmitrijs2005/profilesync/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON config file.
// Durations use timex.Duration, so both "90s" and integer nanoseconds
// are accepted. Fields left out of the file keep their previous value.
type JsonConfig struct {
	Env                         string         `json:"env"`
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	PublicBaseURL               string         `json:"public_base_url"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	AssetBackend                string         `json:"asset_backend"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
	UploadChunkSize             int            `json:"upload_chunk_size"`
	AssetKeyScheme              string         `json:"asset_key_scheme"`
	ProfilePolicy               string         `json:"profile_policy"`
	RedisAddr                   string         `json:"redis_addr"`
}

// parseJson overlays values from the file named by -c / -config.
// Without the flag nothing is loaded. An unreadable file or invalid JSON
// panics, since this only runs during startup.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.Env, c.Env)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.PublicBaseURL, c.PublicBaseURL)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	setString(&config.AssetBackend, c.AssetBackend)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	if c.UploadChunkSize != 0 {
		config.UploadChunkSize = c.UploadChunkSize
	}
	setString(&config.AssetKeyScheme, c.AssetKeyScheme)
	setString(&config.ProfilePolicy, c.ProfilePolicy)
	setString(&config.RedisAddr, c.RedisAddr)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
