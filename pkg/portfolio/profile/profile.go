// Package profile defines the singleton "about me" aggregate family. There
// is exactly one profile General per deployment; callers address it without
// an id and it springs into existence with the first translation. The
// portrait image lives in the General's asset list and each translation may
// carry its own CV document.
package profile

import (
	"github.com/tendant/localized-content/pkg/localizedcontent"
)

// Family is the aggregate family name for the profile.
const Family = "profile"

// Attributes is the locale-independent half of the profile.
type Attributes struct {
	FullName        string   `json:"full_name"`
	BirthYear       *int     `json:"birth_year,omitempty"`
	Location        string   `json:"location,omitempty"`
	PositioningTags []string `json:"positioning_tags,omitempty"`
}

// TranslationAttributes is the locale-scoped half of the profile. The CV for
// a locale travels as the translation's document asset, not here.
type TranslationAttributes struct {
	Title   string `json:"title"`
	Bio     string `json:"bio"`
	Tagline string `json:"tagline,omitempty"`
}

// Validate checks the profile attributes.
func Validate(a Attributes) error {
	if a.FullName == "" {
		return localizedcontent.NewValidationError("full name is required")
	}
	return nil
}

// Definition wires the profile family into the aggregate engine. The family
// is a singleton with no domain uniqueness key.
func Definition() localizedcontent.Definition[Attributes, TranslationAttributes] {
	return localizedcontent.Definition[Attributes, TranslationAttributes]{
		Family:      Family,
		AssetFolder: "portfolio/profile",
		Singleton:   true,
		Validate:    Validate,
	}
}

// NewService creates the profile aggregate service.
func NewService(options ...localizedcontent.Option[Attributes, TranslationAttributes]) (Service, error) {
	return localizedcontent.New(Definition(), options...)
}

type (
	Service       = localizedcontent.Service[Attributes, TranslationAttributes]
	General       = localizedcontent.General[Attributes]
	Translation   = localizedcontent.Translation[TranslationAttributes]
	LocalizedView = localizedcontent.LocalizedView[Attributes, TranslationAttributes]
)
