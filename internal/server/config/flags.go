package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/profilesync/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-h string   HTTP asset gateway bind address
//	-l string   public base URL of image references
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-m string   asset backend: s3, minio, memory
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-z int      upload chunk size, bytes
//	-n string   asset key scheme: owner, filename
//	-o string   profile policy: append, upsert
//	-r string   redis address for the in-flight guard
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-h", "-l", "-d", "-s", "-t", "-m", "-u", "-p", "-b", "-g", "-e", "-z", "-n", "-o", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run gRPC server")
	fs.StringVar(&config.EndpointAddrHTTP, "h", config.EndpointAddrHTTP, "address and port to run asset gateway")
	fs.StringVar(&config.PublicBaseURL, "l", config.PublicBaseURL, "public base URL of image references")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.StringVar(&config.AssetBackend, "m", config.AssetBackend, "asset backend (s3, minio, memory)")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.IntVar(&config.UploadChunkSize, "z", config.UploadChunkSize, "upload chunk size (bytes)")
	fs.StringVar(&config.AssetKeyScheme, "n", config.AssetKeyScheme, "asset key scheme (owner, filename)")
	fs.StringVar(&config.ProfilePolicy, "o", config.ProfilePolicy, "profile policy (append, upsert)")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
}
