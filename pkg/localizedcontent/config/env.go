package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type envConfig struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`

	DatabaseType string `env:"DATABASE_TYPE" env-default:"memory"`
	DatabaseURL  string `env:"DATABASE_URL"`

	StorageProvider string `env:"STORAGE_PROVIDER" env-default:"memory"`

	FSBaseDir   string `env:"FS_BASE_DIR" env-default:"./data/uploads"`
	FSURLPrefix string `env:"FS_URL_PREFIX" env-default:"http://localhost:8080/uploads"`

	S3Region          string `env:"AWS_S3_REGION" env-default:"us-east-1"`
	S3Bucket          string `env:"AWS_S3_BUCKET"`
	S3AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	S3Endpoint        string `env:"AWS_S3_ENDPOINT"`
	S3UsePathStyle    bool   `env:"AWS_S3_USE_PATH_STYLE" env-default:"false"`
	S3PublicBaseURL   string `env:"AWS_S3_PUBLIC_BASE_URL"`
}

// WithEnv applies environment variable overrides.
//
//	PORT, ENVIRONMENT
//	DATABASE_TYPE ("memory" or "postgres"), DATABASE_URL
//	STORAGE_PROVIDER ("memory", "fs", or "s3")
//	FS_BASE_DIR, FS_URL_PREFIX
//	AWS_S3_REGION, AWS_S3_BUCKET, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY,
//	AWS_S3_ENDPOINT, AWS_S3_USE_PATH_STYLE, AWS_S3_PUBLIC_BASE_URL
//
// DATABASE_TYPE is inferred as "postgres" when DATABASE_URL carries a
// postgres scheme, so only DATABASE_URL needs to be set in that case.
func WithEnv() Option {
	return func(c *ServerConfig) error {
		var env envConfig
		if err := cleanenv.ReadEnv(&env); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}

		c.Port = env.Port
		c.Environment = env.Environment

		c.DatabaseType = env.DatabaseType
		c.DatabaseURL = env.DatabaseURL
		if hasPostgresScheme(env.DatabaseURL) {
			c.DatabaseType = "postgres"
		}

		c.StorageProvider = env.StorageProvider
		c.FSBaseDir = env.FSBaseDir
		c.FSURLPrefix = env.FSURLPrefix
		c.S3Region = env.S3Region
		c.S3Bucket = env.S3Bucket
		c.S3AccessKeyID = env.S3AccessKeyID
		c.S3SecretAccessKey = env.S3SecretAccessKey
		c.S3Endpoint = env.S3Endpoint
		c.S3UsePathStyle = env.S3UsePathStyle
		c.S3PublicBaseURL = env.S3PublicBaseURL

		return nil
	}
}

func hasPostgresScheme(url string) bool {
	const pg, pgql = "postgres://", "postgresql://"
	return len(url) >= len(pg) && url[:len(pg)] == pg ||
		len(url) >= len(pgql) && url[:len(pgql)] == pgql
}
