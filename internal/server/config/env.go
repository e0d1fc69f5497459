package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvGRPCAddr      = "HIREBOARD_GRPC_ADDR"
	EnvDatabaseDSN   = "HIREBOARD_DATABASE_DSN"
	EnvSecretKey     = "HIREBOARD_JWT_SECRET"
	EnvS3User        = "HIREBOARD_S3_USER"
	EnvS3Password    = "HIREBOARD_S3_PASSWORD"
	EnvS3Bucket      = "HIREBOARD_S3_BUCKET"
	EnvS3Region      = "HIREBOARD_S3_REGION"
	EnvS3Endpoint    = "HIREBOARD_S3_ENDPOINT"
	EnvPublicBaseURL = "HIREBOARD_PUBLIC_BASE_URL"
	EnvPresignExpiry = "HIREBOARD_PRESIGN_EXPIRY"
	EnvLogLevel      = "HIREBOARD_LOG_LEVEL"
	EnvSeedJob       = "HIREBOARD_SEED_JOB"
)

// dotenvFiles are loaded, if present, before the environment is read.
// Variables already set in the process environment win.
var dotenvFiles = []string{".env"}

// parseEnv overlays non-empty environment variables onto config. A malformed
// duration panics, like any other bad configuration input.
func parseEnv(config *Config) {
	for _, f := range dotenvFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				panic(err)
			}
		}
	}

	setString(&config.EndpointAddrGRPC, EnvGRPCAddr)
	setString(&config.DatabaseDSN, EnvDatabaseDSN)
	setString(&config.SecretKey, EnvSecretKey)
	setString(&config.S3RootUser, EnvS3User)
	setString(&config.S3RootPassword, EnvS3Password)
	setString(&config.S3Bucket, EnvS3Bucket)
	setString(&config.S3Region, EnvS3Region)
	setString(&config.S3BaseEndpoint, EnvS3Endpoint)
	setString(&config.PublicBaseURL, EnvPublicBaseURL)
	setString(&config.LogLevel, EnvLogLevel)
	setString(&config.SeedJobTitle, EnvSeedJob)

	if v := os.Getenv(EnvPresignExpiry); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.PresignExpiry = d
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
