package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tendant/localized-content/pkg/localizedcontent"
	"github.com/tendant/localized-content/pkg/localizedcontent/objectkey"
)

// Backend is a filesystem implementation of the localizedcontent.BlobStore
// interface. Blobs are written under a base directory and served through a
// static URL prefix.
type Backend struct {
	baseDir   string
	urlPrefix string
}

// Config options for the filesystem backend.
type Config struct {
	BaseDir   string // Base directory for storing files
	URLPrefix string // URL prefix the files are served under
}

// New creates a new filesystem storage backend.
func New(config Config) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Backend{
		baseDir:   config.BaseDir,
		urlPrefix: strings.TrimSuffix(config.URLPrefix, "/"),
	}, nil
}

// Upload writes the buffer to disk under a generated key.
func (b *Backend) Upload(ctx context.Context, params localizedcontent.UploadParams) (localizedcontent.AssetRef, error) {
	key := objectkey.New(params.Folder, params.FileName)
	filePath := filepath.Join(b.baseDir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return localizedcontent.AssetRef{}, &localizedcontent.StorageError{
			Backend: "fs", Key: key, Op: "upload",
			Err: fmt.Errorf("failed to create directory: %w", err),
		}
	}

	if err := os.WriteFile(filePath, params.Data, 0644); err != nil {
		return localizedcontent.AssetRef{}, &localizedcontent.StorageError{
			Backend: "fs", Key: key, Op: "upload",
			Err: fmt.Errorf("failed to write file: %w", err),
		}
	}

	return localizedcontent.AssetRef{
		PublicID:     key,
		URL:          fmt.Sprintf("%s/%s", b.urlPrefix, key),
		Size:         int64(len(params.Data)),
		Format:       strings.TrimPrefix(filepath.Ext(params.FileName), "."),
		ResourceType: params.ResourceType,
	}, nil
}

// Delete removes a file. A missing file is not an error.
func (b *Backend) Delete(ctx context.Context, publicID string) error {
	filePath := filepath.Join(b.baseDir, filepath.FromSlash(publicID))

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &localizedcontent.StorageError{
			Backend: "fs", Key: publicID, Op: "delete",
			Err: fmt.Errorf("failed to delete file: %w", err),
		}
	}

	b.cleanupEmptyDirectories(filepath.Dir(filePath))
	return nil
}

// cleanupEmptyDirectories walks parent directories up to the base dir,
// removing any left empty by a delete.
func (b *Backend) cleanupEmptyDirectories(dir string) {
	base := filepath.Clean(b.baseDir)
	for {
		dir = filepath.Clean(dir)
		if dir == base || !strings.HasPrefix(dir, base) {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}
