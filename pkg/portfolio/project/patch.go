package project

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/tendant/localized-content/pkg/localizedcontent"
)

// Patch is a partial update of the locale-independent attributes. Nil fields
// are left untouched; EndDate uses a double pointer so "clear the end date"
// and "leave it alone" stay distinct.
type Patch struct {
	Title        *string     `json:"title,omitempty"`
	Type         *Type       `json:"type,omitempty"`
	StartDate    *time.Time  `json:"start_date,omitempty"`
	EndDate      **time.Time `json:"end_date,omitempty"`
	Status       *Status     `json:"status,omitempty"`
	Technologies *[]string   `json:"technologies,omitempty"`
	Links        *Links      `json:"links,omitempty"`
}

// UnmarshalJSON maps an explicit "end_date": null to an allocated outer
// pointer so clearing the end date survives JSON decoding. Without this,
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
	if v, ok := raw["end_date"]; ok && bytes.Equal(v, []byte("null")) {
		p.EndDate = new(*time.Time)
	}
	return nil
}

// Apply implements localizedcontent.Patch.
func (p Patch) Apply(a Attributes) Attributes {
	localizedcontent.Set(&a.Title, p.Title)
	localizedcontent.Set(&a.Type, p.Type)
	localizedcontent.Set(&a.StartDate, p.StartDate)
	localizedcontent.Set(&a.EndDate, p.EndDate)
	localizedcontent.Set(&a.Status, p.Status)
	localizedcontent.Set(&a.Technologies, p.Technologies)
	localizedcontent.Set(&a.Links, p.Links)
	return a
}

// TranslationPatch is a partial update of one locale's attributes.
type TranslationPatch struct {
	Summary     *string `json:"summary,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Apply implements localizedcontent.Patch.
func (p TranslationPatch) Apply(a TranslationAttributes) TranslationAttributes {
	localizedcontent.Set(&a.Summary, p.Summary)
	localizedcontent.Set(&a.Description, p.Description)
	return a
}

var (
	_ localizedcontent.Patch[Attributes]            = Patch{}
	_ localizedcontent.Patch[TranslationAttributes] = TranslationPatch{}
)
