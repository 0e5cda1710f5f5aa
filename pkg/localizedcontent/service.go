package localizedcontent

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the caller-facing operations over one aggregate family.
type Service[G, T any] interface {
	// General operations
	CreateGeneral(ctx context.Context, req CreateGeneralRequest[G]) (*General[G], error)
	GetGeneral(ctx context.Context, id uuid.UUID) (*General[G], error)
	UpdateGeneral(ctx context.Context, req UpdateGeneralRequest[G]) (*General[G], error)
	// DeleteGeneral removes the General, all of its translations and every
	// asset either half owns. It is idempotent: deleting an absent General
	// is a no-op.
	DeleteGeneral(ctx context.Context, id uuid.UUID) error

	// Translation operations
	AddTranslation(ctx context.Context, req AddTranslationRequest[G, T]) (*LocalizedView[G, T], error)
	UpdateTranslation(ctx context.Context, req UpdateTranslationRequest[T]) (*LocalizedView[G, T], error)
	// DeleteTranslation removes one translation and reports whether the
	// owning General was cascade-deleted with it.
	DeleteTranslation(ctx context.Context, generalID uuid.UUID, locale Locale) (generalDeleted bool, err error)

	// Lookups
	GetByLocale(ctx context.Context, generalID uuid.UUID, locale Locale) (*LocalizedView[G, T], error)
	ListByLocale(ctx context.Context, locale Locale) ([]*LocalizedView[G, T], error)
	ListGrouped(ctx context.Context) (map[uuid.UUID][]*LocalizedView[G, T], error)
}
