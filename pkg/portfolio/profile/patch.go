package profile

import (
	"bytes"
	"encoding/json"

	"github.com/tendant/localized-content/pkg/localizedcontent"
)

// Patch is a partial update of the locale-independent attributes.
type Patch struct {
	FullName        *string   `json:"full_name,omitempty"`
	BirthYear       **int     `json:"birth_year,omitempty"`
	Location        *string   `json:"location,omitempty"`
	PositioningTags *[]string `json:"positioning_tags,omitempty"`
}

// UnmarshalJSON maps an explicit "birth_year": null to an allocated outer
// pointer so clearing the birth year survives JSON decoding. Without this,
// encoding/json nils the outer pointer and the clear is indistinguishable
// from the field being absent.
func (p *Patch) UnmarshalJSON(data []byte) error {
	type alias Patch
	if err := json.Unmarshal(data, (*alias)(p)); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["birth_year"]; ok && bytes.Equal(v, []byte("null")) {
		p.BirthYear = new(*int)
	}
	return nil
}

// Apply implements localizedcontent.Patch.
func (p Patch) Apply(a Attributes) Attributes {
	localizedcontent.Set(&a.FullName, p.FullName)
	localizedcontent.Set(&a.BirthYear, p.BirthYear)
	localizedcontent.Set(&a.Location, p.Location)
	localizedcontent.Set(&a.PositioningTags, p.PositioningTags)
	return a
}

// TranslationPatch is a partial update of one locale's attributes.
type TranslationPatch struct {
	Title   *string `json:"title,omitempty"`
	Bio     *string `json:"bio,omitempty"`
	Tagline *string `json:"tagline,omitempty"`
}

// Apply implements localizedcontent.Patch.
func (p TranslationPatch) Apply(a TranslationAttributes) TranslationAttributes {
	localizedcontent.Set(&a.Title, p.Title)
	localizedcontent.Set(&a.Bio, p.Bio)
	localizedcontent.Set(&a.Tagline, p.Tagline)
	return a
}

var (
	_ localizedcontent.Patch[Attributes]            = Patch{}
	_ localizedcontent.Patch[TranslationAttributes] = TranslationPatch{}
)
