package localizedcontent

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrGeneralNotFound indicates the referenced General record is absent.
	ErrGeneralNotFound = errors.New("general record not found")

	// ErrTranslationNotFound indicates the referenced Translation is absent.
	ErrTranslationNotFound = errors.New("translation not found")

	// ErrGeneralExists indicates a uniqueness violation on the domain key.
	ErrGeneralExists = errors.New("general record already exists")

	// ErrTranslationExists indicates a (general, locale) pair already exists.
	ErrTranslationExists = errors.New("translation already exists for locale")

	// ErrUnsupportedLocale indicates a locale outside the supported set.
	ErrUnsupportedLocale = errors.New("unsupported locale")

	// ErrValidation indicates a cross-field invariant on General attributes
	// failed.
	ErrValidation = errors.New("validation failed")

	// ErrCascadeBlocked indicates the last translation cannot be removed
	// while dependent records exist.
	ErrCascadeBlocked = errors.New("cannot remove last translation while dependents exist")

	// ErrUploadFailed indicates the blob store rejected an upload.
	ErrUploadFailed = errors.New("asset upload failed")

	// ErrStorageBackendNotFound indicates no blob store is configured for an
	// operation that needs one.
	ErrStorageBackendNotFound = errors.New("storage backend not found")
)

// NewValidationError wraps ErrValidation with a message identifying the rule
// that failed.
func NewValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// AggregateError represents an error from an aggregate operation.
type AggregateError struct {
	Family    string
	GeneralID uuid.UUID
	Op        string
	Err       error
}

func (e *AggregateError) Error() string {
	return fmt.Sprintf("aggregate operation %s failed for %s general %s: %v", e.Op, e.Family, e.GeneralID, e.Err)
}

func (e *AggregateError) Unwrap() error {
	return e.Err
}

// StorageError represents an error from a blob store operation.
type StorageError struct {
	Backend string
	Key     string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s on backend %s: %v", e.Op, e.Key, e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err maps to the NotFound error kind.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrGeneralNotFound) || errors.Is(err, ErrTranslationNotFound)
}

// IsConflict reports whether err maps to the Conflict error kind.
func IsConflict(err error) bool {
	return errors.Is(err, ErrGeneralExists) || errors.Is(err, ErrTranslationExists)
}

// IsBadRequest reports whether err maps to the BadRequest error kind.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrCascadeBlocked) || errors.Is(err, ErrUnsupportedLocale)
}
