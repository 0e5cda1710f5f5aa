package memory

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tendant/localized-content/pkg/localizedcontent"
	"github.com/tendant/localized-content/pkg/localizedcontent/objectkey"
)

// Backend is an in-memory implementation of the localizedcontent.BlobStore
// interface, used by tests and local development.
type Backend struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// New creates a new in-memory storage backend.
func New() *Backend {
	return &Backend{
		blobs: make(map[string][]byte),
	}
}

// Upload stores the buffer under a generated key.
func (b *Backend) Upload(ctx context.Context, params localizedcontent.UploadParams) (localizedcontent.AssetRef, error) {
	key := objectkey.New(params.Folder, params.FileName)

	b.mu.Lock()
	defer b.mu.Unlock()

	data := make([]byte, len(params.Data))
	copy(data, params.Data)
	b.blobs[key] = data

	return localizedcontent.AssetRef{
		PublicID:     key,
		URL:          fmt.Sprintf("memory://%s", key),
		Size:         int64(len(data)),
		Format:       formatFor(params.FileName, params.MimeType),
		ResourceType: params.ResourceType,
	}, nil
}

// Delete removes a blob. Deleting a missing key is a no-op.
func (b *Backend) Delete(ctx context.Context, publicID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.blobs, publicID)
	return nil
}

// Exists reports whether a blob is present. Test helper.
func (b *Backend) Exists(publicID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.blobs[publicID]
	return ok
}

// Len returns the number of stored blobs. Test helper.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.blobs)
}

func formatFor(fileName, mimeType string) string {
	if ext := strings.TrimPrefix(filepath.Ext(fileName), "."); ext != "" {
		return strings.ToLower(ext)
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return strings.TrimPrefix(exts[0], ".")
	}
	return ""
}
