package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fsstorage "github.com/tendant/localized-content/pkg/localizedcontent/storage/fs"
	memorystorage "github.com/tendant/localized-content/pkg/localizedcontent/storage/memory"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "memory", cfg.DatabaseType)
	assert.Equal(t, "memory", cfg.StorageProvider)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(*ServerConfig) {},
		},
		{
			name:    "missing port",
			mutate:  func(c *ServerConfig) { c.Port = "" },
			wantErr: true,
		},
		{
			name:    "unknown database type",
			mutate:  func(c *ServerConfig) { c.DatabaseType = "mysql" },
			wantErr: true,
		},
		{
			name:    "postgres without url",
			mutate:  func(c *ServerConfig) { c.DatabaseType = "postgres" },
			wantErr: true,
		},
		{
			name: "postgres with url",
			mutate: func(c *ServerConfig) {
				c.DatabaseType = "postgres"
				c.DatabaseURL = "postgres://localhost/db"
			},
		},
		{
			name:    "unknown storage provider",
			mutate:  func(c *ServerConfig) { c.StorageProvider = "gcs" },
			wantErr: true,
		},
		{
			name: "s3 without bucket",
			mutate: func(c *ServerConfig) {
				c.StorageProvider = "s3"
			},
			wantErr: true,
		},
		{
			name: "fs without base dir",
			mutate: func(c *ServerConfig) {
				c.StorageProvider = "fs"
				c.FSBaseDir = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildBlobStore(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		cfg := defaults()
		store, err := cfg.BuildBlobStore()
		require.NoError(t, err)
		assert.IsType(t, &memorystorage.Backend{}, store)
	})

	t.Run("fs", func(t *testing.T) {
		cfg := defaults()
		cfg.StorageProvider = "fs"
		cfg.FSBaseDir = t.TempDir()
		store, err := cfg.BuildBlobStore()
		require.NoError(t, err)
		assert.IsType(t, &fsstorage.Backend{}, store)
	})
}

func TestWithEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DATABASE_URL", "postgresql://localhost/content")
	t.Setenv("STORAGE_PROVIDER", "fs")
	t.Setenv("FS_BASE_DIR", t.TempDir())

	cfg, err := Load(WithEnv())
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "postgres", cfg.DatabaseType, "database type inferred from URL scheme")
	assert.Equal(t, "fs", cfg.StorageProvider)
}
