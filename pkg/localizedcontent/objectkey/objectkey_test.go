package objectkey

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	key := New("portfolio/projects", "My File.PNG")
	assert.True(t, strings.HasPrefix(key, "portfolio/projects/"))
	assert.True(t, strings.HasSuffix(key, "_My-File.PNG"))

	other := New("portfolio/projects", "My File.PNG")
	assert.NotEqual(t, key, other, "same filename must not collide")

	t.Run("empty folder", func(t *testing.T) {
		key := New("", "a.txt")
		assert.NotContains(t, key, "/")
	})

	t.Run("empty filename still yields a key", func(t *testing.T) {
		key := New("folder", "")
		assert.True(t, strings.HasPrefix(key, "folder/"))
		assert.NotEqual(t, "folder/", key)
	})
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "report.pdf", "report.pdf"},
		{"spaces become dashes", "My File.PNG", "My-File.PNG"},
		{"path components are stripped", "../../etc/passwd", "passwd"},
		{"windows separators", `dir\evil.exe`, "evil.exe"},
		{"leading dots are trimmed", "..name.txt", "name.txt"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}
