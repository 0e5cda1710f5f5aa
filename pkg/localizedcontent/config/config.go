package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/localized-content/pkg/localizedcontent"
	fsstorage "github.com/tendant/localized-content/pkg/localizedcontent/storage/fs"
	memorystorage "github.com/tendant/localized-content/pkg/localizedcontent/storage/memory"
	s3storage "github.com/tendant/localized-content/pkg/localizedcontent/storage/s3"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of
// library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:            "8080",
		Environment:     "development",
		DatabaseType:    "memory",
		StorageProvider: "memory",
		FSBaseDir:       "./data/uploads",
		FSURLPrefix:     "http://localhost:8080/uploads",
	}
}

// ServerConfig represents server configuration for the localized-content
// service. The storage provider and database are selected once here, at
// startup, never per call.
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Database configuration
	DatabaseURL  string
	DatabaseType string // "memory", "postgres"

	// Storage provider selection
	StorageProvider string // "memory", "fs", "s3"

	// Filesystem provider
	FSBaseDir   string
	FSURLPrefix string

	// S3 provider
	S3Region          string
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Endpoint        string
	S3UsePathStyle    bool
	S3PublicBaseURL   string
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}
	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	switch c.StorageProvider {
	case "memory":
	case "fs":
		if c.FSBaseDir == "" {
			return errors.New("fs_base_dir is required when using fs storage")
		}
	case "s3":
		if c.S3Bucket == "" {
			return errors.New("s3_bucket is required when using s3 storage")
		}
	default:
		return fmt.Errorf("unsupported storage provider: %s", c.StorageProvider)
	}

	return nil
}

// BuildBlobStore creates the configured storage provider. All providers are
// interchangeable behind localizedcontent.BlobStore.
func (c *ServerConfig) BuildBlobStore() (localizedcontent.BlobStore, error) {
	switch c.StorageProvider {
	case "memory":
		return memorystorage.New(), nil
	case "fs":
		return fsstorage.New(fsstorage.Config{
			BaseDir:   c.FSBaseDir,
			URLPrefix: c.FSURLPrefix,
		})
	case "s3":
		return s3storage.New(s3storage.Config{
			Region:          c.S3Region,
			Bucket:          c.S3Bucket,
			AccessKeyID:     c.S3AccessKeyID,
			SecretAccessKey: c.S3SecretAccessKey,
			Endpoint:        c.S3Endpoint,
			UsePathStyle:    c.S3UsePathStyle,
			PublicBaseURL:   c.S3PublicBaseURL,
		})
	default:
		return nil, fmt.Errorf("%w: %s", localizedcontent.ErrStorageBackendNotFound, c.StorageProvider)
	}
}

// ConnectPool opens the pgx pool when the postgres database type is
// configured. It returns nil for the memory database.
func (c *ServerConfig) ConnectPool(ctx context.Context) (*pgxpool.Pool, error) {
	if c.DatabaseType != "postgres" {
		return nil, nil
	}

	cfg, err := pgxpool.ParseConfig(c.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	return pool, nil
}
