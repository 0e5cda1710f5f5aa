package experience

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/tendant/localized-content/pkg/localizedcontent"
)

// Patch is a partial update of the locale-independent attributes. EndDate
// uses a double pointer so clearing the date (going back to ongoing) stays
// distinct from leaving it untouched.
type Patch struct {
	CompanyName  *string     `json:"company_name,omitempty"`
	Type         *Type       `json:"type,omitempty"`
	Location     *string     `json:"location,omitempty"`
	Technologies *[]string   `json:"technologies,omitempty"`
	StartDate    *time.Time  `json:"start_date,omitempty"`
	EndDate      **time.Time `json:"end_date,omitempty"`
	Ongoing      *bool       `json:"ongoing,omitempty"`
}

// UnmarshalJSON keeps an explicit JSON null distinguishable from an absent
// field: encoding/json decodes null into a double pointer by nilling the
// outer pointer, which would silently drop the clear. An explicit
// "end_date": null allocates the outer pointer with a nil inner one.
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
	localizedcontent.Set(&a.CompanyName, p.CompanyName)
	localizedcontent.Set(&a.Type, p.Type)
	localizedcontent.Set(&a.Location, p.Location)
	localizedcontent.Set(&a.Technologies, p.Technologies)
	localizedcontent.Set(&a.StartDate, p.StartDate)
	localizedcontent.Set(&a.EndDate, p.EndDate)
	localizedcontent.Set(&a.Ongoing, p.Ongoing)
	return a
}

// TranslationPatch is a partial update of one locale's attributes.
type TranslationPatch struct {
	Position    *string `json:"position,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Apply implements localizedcontent.Patch.
func (p TranslationPatch) Apply(a TranslationAttributes) TranslationAttributes {
	localizedcontent.Set(&a.Position, p.Position)
	localizedcontent.Set(&a.Description, p.Description)
	return a
}

var (
	_ localizedcontent.Patch[Attributes]            = Patch{}
	_ localizedcontent.Patch[TranslationAttributes] = TranslationPatch{}
)
