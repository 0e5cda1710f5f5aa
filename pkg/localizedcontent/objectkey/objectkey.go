// Package objectkey generates storage keys for uploaded blobs. Keys carry a
// random unique prefix so concurrent uploads of the same filename never
// collide.
package objectkey

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// New returns a storage key for a file uploaded under a folder:
// {folder}/{random}_{sanitized-filename}. The folder may be empty.
func New(folder, fileName string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")

	name := Sanitize(fileName)
	key := id
	if name != "" {
		key = fmt.Sprintf("%s_%s", id, name)
	}

	if folder == "" {
		return key
	}
	return fmt.Sprintf("%s/%s", strings.Trim(folder, "/"), key)
}

// Sanitize makes a filename safe for use as a key component.
func Sanitize(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-.")
}
