package localizedcontent

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Locale identifies a human language variant from a small closed set.
type Locale string

// Supported locales.
const (
	LocaleEN Locale = "en"
	LocaleES Locale = "es"
)

// SupportedLocales lists every locale the engine accepts.
var SupportedLocales = []Locale{LocaleEN, LocaleES}

// Valid reports whether l belongs to the supported set.
func (l Locale) Valid() bool {
	for _, s := range SupportedLocales {
		if l == s {
			return true
		}
	}
	return false
}

// CascadePolicy decides what happens to a General once its last Translation
// is removed.
type CascadePolicy string

const (
	// CascadeDelete removes the General and its assets once it has zero
	// translations. This is the default.
	CascadeDelete CascadePolicy = "cascade"

	// CascadeBlock refuses to remove the last translation while dependent
	// records still reference the General.
	CascadeBlock CascadePolicy = "block"
)

// AssetRef identifies one blob stored in an external blob store. It is
// exclusively owned by exactly one record field and never shared between two
// live records.
type AssetRef struct {
	PublicID     string `json:"public_id"`
	URL          string `json:"url"`
	Size         int64  `json:"size,omitempty"`
	Format       string `json:"format,omitempty"`
	ResourceType string `json:"resource_type,omitempty"`
}

// Asset resource type constants.
const (
	ResourceTypeImage = "image"
	ResourceTypeVideo = "video"
	ResourceTypeRaw   = "raw"
)

// ResourceTypeForMime maps a MIME type onto a storage resource type.
func ResourceTypeForMime(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return ResourceTypeImage
	case strings.HasPrefix(mimeType, "video/"):
		return ResourceTypeVideo
	default:
		return ResourceTypeRaw
	}
}

// General is the locale-independent half of an aggregate. Key holds the
// domain uniqueness key derived from the attributes (empty when the family
// has none); repositories enforce its uniqueness within a family.
type General[G any] struct {
	ID         uuid.UUID  `json:"id"`
	Key        string     `json:"key,omitempty"`
	Attributes G          `json:"attributes"`
	Assets     []AssetRef `json:"assets,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Translation is the locale-scoped half of an aggregate. At most one
// Translation exists per (GeneralID, Locale) pair. Document is an optional
// asset owned by the translation itself, distinct from the General's assets.
type Translation[T any] struct {
	ID         uuid.UUID `json:"id"`
	GeneralID  uuid.UUID `json:"general_id"`
	Locale     Locale    `json:"locale"`
	Attributes T         `json:"attributes"`
	Document   *AssetRef `json:"document,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LocalizedView merges one Translation with its owning General, the shape
// callers read.
type LocalizedView[G, T any] struct {
	TranslationID uuid.UUID  `json:"translation_id"`
	Locale        Locale     `json:"locale"`
	Attributes    T          `json:"attributes"`
	Document      *AssetRef  `json:"document,omitempty"`
	General       General[G] `json:"general"`
}

// AssetFile is a raw file buffer handed to the engine by the transport
// layer.
type AssetFile struct {
	Data     []byte
	FileName string
	MimeType string
}
