package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/localized-content/pkg/localizedcontent"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()

	backend, err := New(Config{
		BaseDir:   t.TempDir(),
		URLPrefix: "http://localhost:8080/uploads/",
	})
	require.NoError(t, err)
	return backend
}

func TestNewRequiresBaseDir(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestUploadAndDelete(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)

	ref, err := backend.Upload(ctx, localizedcontent.UploadParams{
		Data:         []byte("hello"),
		FileName:     "greeting.txt",
		MimeType:     "text/plain",
		Folder:       "docs/misc",
		ResourceType: localizedcontent.ResourceTypeRaw,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), ref.Size)
	assert.Equal(t, "txt", ref.Format)
	assert.Contains(t, ref.URL, "http://localhost:8080/uploads/docs/misc/")

	path := filepath.Join(backend.baseDir, filepath.FromSlash(ref.PublicID))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	require.NoError(t, backend.Delete(ctx, ref.PublicID))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	t.Run("empty folders are removed", func(t *testing.T) {
		_, err := os.Stat(filepath.Join(backend.baseDir, "docs"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("deleting a missing key is not an error", func(t *testing.T) {
		assert.NoError(t, backend.Delete(ctx, ref.PublicID))
	})
}

func TestUploadSameNameDoesNotCollide(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)

	first, err := backend.Upload(ctx, localizedcontent.UploadParams{
		Data: []byte("one"), FileName: "same.bin", Folder: "f",
	})
	require.NoError(t, err)
	second, err := backend.Upload(ctx, localizedcontent.UploadParams{
		Data: []byte("two"), FileName: "same.bin", Folder: "f",
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.PublicID, second.PublicID)
}
