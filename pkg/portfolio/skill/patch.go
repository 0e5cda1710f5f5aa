package skill

import (
	"github.com/tendant/localized-content/pkg/localizedcontent"
)

// Patch is a partial update of the category attributes.
type Patch struct {
	Key   *string `json:"key,omitempty"`
	Order *int    `json:"order,omitempty"`
}

// Apply implements localizedcontent.Patch.
func (p Patch) Apply(a Attributes) Attributes {
	localizedcontent.Set(&a.Key, p.Key)
	localizedcontent.Set(&a.Order, p.Order)
	return a
}

// TranslationPatch is a partial update of one locale's category name.
type TranslationPatch struct {
	Name *string `json:"name,omitempty"`
}

// Apply implements localizedcontent.Patch.
func (p TranslationPatch) Apply(a TranslationAttributes) TranslationAttributes {
	localizedcontent.Set(&a.Name, p.Name)
	return a
}

var (
	_ localizedcontent.Patch[Attributes]            = Patch{}
	_ localizedcontent.Patch[TranslationAttributes] = TranslationPatch{}
)
