// Package skill defines the skill category aggregate family and the skill
// items hanging off each category. Categories are localized aggregates;
// items are flat records with an optional icon asset. A category with items
// refuses to lose its last translation, which keeps items from pointing at a
// vanished category.
package skill

import (
	"context"

	"github.com/google/uuid"

	"github.com/tendant/localized-content/pkg/localizedcontent"
)

// Family is the aggregate family name for skill categories.
const Family = "skill_categories"

// Attributes is the locale-independent half of a skill category. Key is a
// stable machine identifier (e.g. "backend") and doubles as the domain
// uniqueness key. Order drives display ordering.
type Attributes struct {
	Key   string `json:"key"`
	Order int    `json:"order"`
}

// TranslationAttributes is the locale-scoped half of a skill category.
type TranslationAttributes struct {
	Name string `json:"name"`
}

// Validate checks the category attributes.
func Validate(a Attributes) error {
	if a.Key == "" {
		return localizedcontent.NewValidationError("category key is required")
	}
	return nil
}

// Definition wires the category family into the aggregate engine. Deleting
// the last translation is blocked while items still reference the category.
func Definition(items ItemStore) localizedcontent.Definition[Attributes, TranslationAttributes] {
	return localizedcontent.Definition[Attributes, TranslationAttributes]{
		Family:      Family,
		AssetFolder: "portfolio/skills",
		UniqueKey:   func(a Attributes) string { return a.Key },
		Validate:    Validate,
		Cascade:     localizedcontent.CascadeBlock,
		HasDependents: func(ctx context.Context, generalID uuid.UUID) (bool, error) {
			return items.ExistsByCategory(ctx, generalID)
		},
	}
}

// NewCategoryService creates the category aggregate service.
func NewCategoryService(items ItemStore, options ...localizedcontent.Option[Attributes, TranslationAttributes]) (CategoryService, error) {
	return localizedcontent.New(Definition(items), options...)
}

type (
	CategoryService = localizedcontent.Service[Attributes, TranslationAttributes]
	General         = localizedcontent.General[Attributes]
	Translation     = localizedcontent.Translation[TranslationAttributes]
	LocalizedView   = localizedcontent.LocalizedView[Attributes, TranslationAttributes]
)
