package contact

import (
	"bytes"
	"encoding/json"

	"github.com/tendant/localized-content/pkg/localizedcontent"
)

// Patch is a partial update of the contact record. Phone uses a double
// pointer so clearing the number stays distinct from leaving it untouched.
type Patch struct {
	Email       *string      `json:"email,omitempty"`
	Phone       **string     `json:"phone,omitempty"`
	SocialLinks *SocialLinks `json:"social_links,omitempty"`
}

// UnmarshalJSON maps an explicit "phone": null to an allocated outer pointer
// so clearing the number survives JSON decoding. Without this,
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
	if v, ok := raw["phone"]; ok && bytes.Equal(v, []byte("null")) {
		p.Phone = new(*string)
	}
	return nil
}

// Apply copies the supplied fields onto a record.
func (p Patch) Apply(c Contact) Contact {
	localizedcontent.Set(&c.Email, p.Email)
	localizedcontent.Set(&c.Phone, p.Phone)
	localizedcontent.Set(&c.SocialLinks, p.SocialLinks)
	return c
}
