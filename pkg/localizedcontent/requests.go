package localizedcontent

import "github.com/google/uuid"

// CreateGeneralRequest contains parameters for creating a General record
// explicitly, optionally with asset files uploaded before the record is
// persisted.
type CreateGeneralRequest[G any] struct {
	Attributes G
	Assets     []AssetFile
}

// AddTranslationRequest contains parameters for attaching a Translation to a
// General. For singleton families GeneralID is left as uuid.Nil and the
// General is created implicitly on first use, from GeneralAttributes and
// GeneralAssets.
type AddTranslationRequest[G, T any] struct {
	GeneralID  uuid.UUID
	Locale     Locale
	Attributes T
	Document   *AssetFile

	// Implicit General creation (singleton families only).
	GeneralAttributes *G
	GeneralAssets     []AssetFile
}

// UpdateGeneralRequest contains parameters for a partial General update.
// Only fields carried by Patch are written. When Assets is non-empty the new
// files replace every asset the General currently owns; the old blobs are
// deleted only after the database write referencing the new ones succeeds.
type UpdateGeneralRequest[G any] struct {
	GeneralID uuid.UUID // uuid.Nil for singleton families
	Patch     Patch[G]
	Assets    []AssetFile
}

// UpdateTranslationRequest contains parameters for a partial Translation
// update, addressed by (general, locale). Document, when set, replaces the
// translation-owned asset with the same upload-before-delete ordering.
type UpdateTranslationRequest[T any] struct {
	GeneralID uuid.UUID // uuid.Nil for singleton families
	Locale    Locale
	Patch     Patch[T]
	Document  *AssetFile
}
