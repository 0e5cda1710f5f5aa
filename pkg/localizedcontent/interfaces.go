package localizedcontent

import (
	"context"

	"github.com/google/uuid"
)

// UploadParams contains parameters for uploading a blob.
type UploadParams struct {
	Data         []byte
	FileName     string
	MimeType     string
	Folder       string
	ResourceType string
}

// BlobStore defines the contract implemented by interchangeable storage
// providers. Exactly one provider is active, selected by configuration at
// startup.
type BlobStore interface {
	// Upload stores a byte buffer under a folder and returns the reference
	// for the stored blob. The generated storage key must not collide with
	// concurrent uploads of the same filename.
	Upload(ctx context.Context, params UploadParams) (AssetRef, error)

	// Delete removes a blob by its public ID. Deleting a non-existent key is
	// not an error. Callers treat failures as non-fatal cleanup misses.
	Delete(ctx context.Context, publicID string) error
}

// Repository defines persistence for the General/Translation pair of one
// domain family.
type Repository[G, T any] interface {
	// General operations
	CreateGeneral(ctx context.Context, general *General[G]) error
	GetGeneral(ctx context.Context, id uuid.UUID) (*General[G], error)
	// GetSingletonGeneral returns the one General of a singleton family,
	// or ErrGeneralNotFound when none exists yet.
	GetSingletonGeneral(ctx context.Context) (*General[G], error)
	FindGeneralByKey(ctx context.Context, key string) (*General[G], error)
	ListGenerals(ctx context.Context) ([]*General[G], error)
	UpdateGeneral(ctx context.Context, general *General[G]) error
	DeleteGeneral(ctx context.Context, id uuid.UUID) error

	// Translation operations
	CreateTranslation(ctx context.Context, translation *Translation[T]) error
	GetTranslation(ctx context.Context, generalID uuid.UUID, locale Locale) (*Translation[T], error)
	UpdateTranslation(ctx context.Context, translation *Translation[T]) error
	DeleteTranslation(ctx context.Context, id uuid.UUID) error
	ListTranslations(ctx context.Context) ([]*Translation[T], error)
	ListTranslationsByGeneral(ctx context.Context, generalID uuid.UUID) ([]*Translation[T], error)
	ListTranslationsByLocale(ctx context.Context, locale Locale) ([]*Translation[T], error)
	CountTranslations(ctx context.Context, generalID uuid.UUID) (int, error)
}

// EventSink defines the interface for lifecycle event handling. Sink errors
// are ignored by the engine; events are fire-and-forget.
type EventSink interface {
	GeneralCreated(ctx context.Context, family string, generalID uuid.UUID) error
	GeneralUpdated(ctx context.Context, family string, generalID uuid.UUID) error
	GeneralDeleted(ctx context.Context, family string, generalID uuid.UUID) error
	TranslationCreated(ctx context.Context, family string, generalID uuid.UUID, locale Locale) error
	TranslationUpdated(ctx context.Context, family string, generalID uuid.UUID, locale Locale) error
	TranslationDeleted(ctx context.Context, family string, generalID uuid.UUID, locale Locale) error
}
