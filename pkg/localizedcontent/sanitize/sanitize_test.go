package sanitize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tendant/localized-content/pkg/localizedcontent/sanitize"
)

func TestSVG(t *testing.T) {
	t.Run("scripts are removed", func(t *testing.T) {
		dirty := []byte(`<svg viewBox="0 0 10 10"><script>alert(1)</script><path d="M0 0h10"/></svg>`)
		clean := string(sanitize.SVG(dirty))
		assert.NotContains(t, clean, "<script")
		assert.NotContains(t, clean, "alert(1)")
		assert.Contains(t, clean, `<path d="M0 0h10"`)
	})

	t.Run("event handlers are removed", func(t *testing.T) {
		dirty := []byte(`<svg onload="alert(1)"><circle cx="5" cy="5" r="4" onclick="evil()"/></svg>`)
		clean := string(sanitize.SVG(dirty))
		assert.NotContains(t, clean, "onload")
		assert.NotContains(t, clean, "onclick")
		assert.Contains(t, clean, `cx="5"`)
	})

	t.Run("presentation markup survives", func(t *testing.T) {
		src := []byte(`<svg viewBox="0 0 24 24"><g fill="none" stroke="#000" stroke-width="2"><rect x="1" y="1" width="22" height="22" rx="4"/></g></svg>`)
		clean := string(sanitize.SVG(src))
		assert.Contains(t, clean, `stroke-width="2"`)
		assert.Contains(t, clean, `rx="4"`)
	})

	t.Run("foreignObject is dropped", func(t *testing.T) {
		dirty := []byte(`<svg><foreignObject><iframe src="https://evil.test"/></foreignObject></svg>`)
		clean := string(sanitize.SVG(dirty))
		assert.NotContains(t, clean, "foreignObject")
		assert.NotContains(t, clean, "iframe")
	})
}

func TestUpload(t *testing.T) {
	t.Run("svg payloads are sanitized", func(t *testing.T) {
		out := sanitize.Upload([]byte(`<svg onload="x()"/>`), sanitize.SVGMimeType)
		assert.NotContains(t, string(out), "onload")
	})

	t.Run("other formats pass through", func(t *testing.T) {
		raw := []byte{0x89, 'P', 'N', 'G', '<', 's', 'c', 'r', 'i', 'p', 't', '>'}
		assert.Equal(t, raw, sanitize.Upload(raw, "image/png"))
	})
}
