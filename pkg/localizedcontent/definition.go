package localizedcontent

import (
	"context"

	"github.com/google/uuid"
)

// Definition carries the domain-specific pieces of one aggregate family.
// The engine itself is family-agnostic; everything that varies per family is
// configuration.
type Definition[G, T any] struct {
	// Family names the domain family (e.g. "projects"). Required.
	Family string

	// AssetFolder is the blob store folder for this family's assets.
	AssetFolder string

	// Singleton marks families with a single General of one kind (e.g. a
	// profile). The General is looked up as "the one General" rather than by
	// id, and is created implicitly on the first AddTranslation.
	Singleton bool

	// UniqueKey derives the globally unique domain key from the attributes.
	// Return "" to disable the uniqueness constraint.
	UniqueKey func(G) string

	// Validate checks cross-field invariants on the resolved attribute set
	// before any persist or upload happens.
	Validate func(G) error

	// Cascade decides whether removing the last translation deletes the
	// General or may be blocked by dependents. Zero value means cascade.
	Cascade CascadePolicy

	// HasDependents reports whether dependent records still reference the
	// General. Only consulted when Cascade is CascadeBlock.
	HasDependents func(ctx context.Context, generalID uuid.UUID) (bool, error)
}

// ResolvePolicy decides the effective cascade outcome for one General.
// Block only holds while dependents actually exist; a blocking family with
// no dependents cascades like any other.
func (d *Definition[G, T]) ResolvePolicy(ctx context.Context, generalID uuid.UUID) (CascadePolicy, error) {
	if d.Cascade != CascadeBlock || d.HasDependents == nil {
		return CascadeDelete, nil
	}
	has, err := d.HasDependents(ctx, generalID)
	if err != nil {
		return "", err
	}
	if has {
		return CascadeBlock, nil
	}
	return CascadeDelete, nil
}

func (d *Definition[G, T]) uniqueKey(attrs G) string {
	if d.UniqueKey == nil {
		return ""
	}
	return d.UniqueKey(attrs)
}

func (d *Definition[G, T]) validate(attrs G) error {
	if d.Validate == nil {
		return nil
	}
	return d.Validate(attrs)
}
