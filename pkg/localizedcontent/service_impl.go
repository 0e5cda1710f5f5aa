package localizedcontent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tendant/localized-content/pkg/localizedcontent/sanitize"
)

// service implements the Service interface for one aggregate family.
type service[G, T any] struct {
	def    Definition[G, T]
	repo   Repository[G, T]
	store  BlobStore
	events EventSink
	logger *slog.Logger
}

// Option represents a functional option for configuring the service.
type Option[G, T any] func(*service[G, T])

// WithRepository sets the repository for the service.
func WithRepository[G, T any](repo Repository[G, T]) Option[G, T] {
	return func(s *service[G, T]) {
		s.repo = repo
	}
}

// WithBlobStore sets the active blob storage provider.
func WithBlobStore[G, T any](store BlobStore) Option[G, T] {
	return func(s *service[G, T]) {
		s.store = store
	}
}

// WithEventSink sets the event sink for the service.
func WithEventSink[G, T any](sink EventSink) Option[G, T] {
	return func(s *service[G, T]) {
		s.events = sink
	}
}

// WithLogger sets the logger used for swallowed cleanup failures.
func WithLogger[G, T any](logger *slog.Logger) Option[G, T] {
	return func(s *service[G, T]) {
		s.logger = logger
	}
}

// New creates a service for one aggregate family with the given options.
func New[G, T any](def Definition[G, T], options ...Option[G, T]) (Service[G, T], error) {
	s := &service[G, T]{def: def}

	for _, option := range options {
		option(s)
	}

	if s.def.Family == "" {
		return nil, fmt.Errorf("family name is required")
	}
	if s.repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.events == nil {
		s.events = NewNoopEventSink()
	}

	return s, nil
}

// General operations

func (s *service[G, T]) CreateGeneral(ctx context.Context, req CreateGeneralRequest[G]) (*General[G], error) {
	// Validate before uploading anything so a rejected record never orphans
	// a blob.
	if err := s.def.validate(req.Attributes); err != nil {
		return nil, err
	}

	key := s.def.uniqueKey(req.Attributes)
	if key != "" {
		if err := s.checkKeyAvailable(ctx, key, uuid.Nil); err != nil {
			return nil, err
		}
	}

	assets, err := s.uploadAll(ctx, req.Assets)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	general := &General[G]{
		ID:         uuid.New(),
		Key:        key,
		Attributes: req.Attributes,
		Assets:     assets,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.CreateGeneral(ctx, general); err != nil {
		s.cleanupAssets(ctx, assets)
		return nil, &AggregateError{Family: s.def.Family, GeneralID: general.ID, Op: "create", Err: err}
	}

	s.fire(func() error { return s.events.GeneralCreated(ctx, s.def.Family, general.ID) })

	return general, nil
}

func (s *service[G, T]) GetGeneral(ctx context.Context, id uuid.UUID) (*General[G], error) {
	return s.resolveGeneral(ctx, id)
}

func (s *service[G, T]) UpdateGeneral(ctx context.Context, req UpdateGeneralRequest[G]) (*General[G], error) {
	general, err := s.resolveGeneral(ctx, req.GeneralID)
	if err != nil {
		return nil, err
	}

	attrs := general.Attributes
	if req.Patch != nil {
		attrs = req.Patch.Apply(attrs)
	}

	if err := s.def.validate(attrs); err != nil {
		return nil, err
	}

	key := s.def.uniqueKey(attrs)
	if key != "" && key != general.Key {
		if err := s.checkKeyAvailable(ctx, key, general.ID); err != nil {
			return nil, err
		}
	}

	// Upload replacements first; if the upload fails the update is aborted
	// and the old asset references stay valid.
	var newAssets []AssetRef
	if len(req.Assets) > 0 {
		newAssets, err = s.uploadAll(ctx, req.Assets)
		if err != nil {
			return nil, err
		}
	}

	oldAssets := general.Assets
	general.Attributes = attrs
	general.Key = key
	if newAssets != nil {
		general.Assets = newAssets
	}
	general.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateGeneral(ctx, general); err != nil {
		s.cleanupAssets(ctx, newAssets)
		return nil, &AggregateError{Family: s.def.Family, GeneralID: general.ID, Op: "update", Err: err}
	}

	// The database now references the new blobs; the replaced ones are
	// cleanup-only.
	if newAssets != nil {
		s.cleanupAssets(ctx, oldAssets)
	}

	s.fire(func() error { return s.events.GeneralUpdated(ctx, s.def.Family, general.ID) })

	return general, nil
}

func (s *service[G, T]) DeleteGeneral(ctx context.Context, id uuid.UUID) error {
	general, err := s.resolveGeneral(ctx, id)
	if errors.Is(err, ErrGeneralNotFound) {
		// Already gone; deleting twice is a no-op.
		return nil
	}
	if err != nil {
		return err
	}

	translations, err := s.repo.ListTranslationsByGeneral(ctx, general.ID)
	if err != nil {
		return err
	}
	for _, tr := range translations {
		if err := s.repo.DeleteTranslation(ctx, tr.ID); err != nil && !errors.Is(err, ErrTranslationNotFound) {
			return &AggregateError{Family: s.def.Family, GeneralID: general.ID, Op: "delete", Err: err}
		}
		s.cleanupDocument(ctx, tr.Document)
	}

	s.cleanupAssets(ctx, general.Assets)

	if err := s.repo.DeleteGeneral(ctx, general.ID); err != nil && !errors.Is(err, ErrGeneralNotFound) {
		return &AggregateError{Family: s.def.Family, GeneralID: general.ID, Op: "delete", Err: err}
	}

	s.fire(func() error { return s.events.GeneralDeleted(ctx, s.def.Family, general.ID) })

	return nil
}

// Translation operations

func (s *service[G, T]) AddTranslation(ctx context.Context, req AddTranslationRequest[G, T]) (*LocalizedView[G, T], error) {
	if !req.Locale.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, req.Locale)
	}

	general, err := s.resolveGeneral(ctx, req.GeneralID)
	if errors.Is(err, ErrGeneralNotFound) && s.def.Singleton {
		general, err = s.createImplicitGeneral(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetTranslation(ctx, general.ID, req.Locale); err == nil {
		return nil, fmt.Errorf("%w: %q", ErrTranslationExists, req.Locale)
	} else if !errors.Is(err, ErrTranslationNotFound) {
		return nil, err
	}

	var document *AssetRef
	if req.Document != nil {
		ref, err := s.uploadOne(ctx, *req.Document)
		if err != nil {
			return nil, err
		}
		document = &ref
	}

	now := time.Now().UTC()
	translation := &Translation[T]{
		ID:         uuid.New(),
		GeneralID:  general.ID,
		Locale:     req.Locale,
		Attributes: req.Attributes,
		Document:   document,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.CreateTranslation(ctx, translation); err != nil {
		s.cleanupDocument(ctx, document)
		if errors.Is(err, ErrTranslationExists) {
			return nil, err
		}
		return nil, &AggregateError{Family: s.def.Family, GeneralID: general.ID, Op: "add_translation", Err: err}
	}

	s.fire(func() error {
		return s.events.TranslationCreated(ctx, s.def.Family, general.ID, translation.Locale)
	})

	return s.view(translation, general), nil
}

func (s *service[G, T]) UpdateTranslation(ctx context.Context, req UpdateTranslationRequest[T]) (*LocalizedView[G, T], error) {
	if !req.Locale.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, req.Locale)
	}

	general, err := s.resolveGeneral(ctx, req.GeneralID)
	if err != nil {
		return nil, err
	}

	translation, err := s.repo.GetTranslation(ctx, general.ID, req.Locale)
	if err != nil {
		return nil, err
	}

	if req.Patch != nil {
		translation.Attributes = req.Patch.Apply(translation.Attributes)
	}

	// Replacement document goes up before the old one comes down.
	var oldDocument *AssetRef
	if req.Document != nil {
		ref, err := s.uploadOne(ctx, *req.Document)
		if err != nil {
			return nil, err
		}
		oldDocument = translation.Document
		translation.Document = &ref
	}
	translation.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateTranslation(ctx, translation); err != nil {
		if req.Document != nil {
			s.cleanupDocument(ctx, translation.Document)
		}
		return nil, &AggregateError{Family: s.def.Family, GeneralID: general.ID, Op: "update_translation", Err: err}
	}

	s.cleanupDocument(ctx, oldDocument)

	s.fire(func() error {
		return s.events.TranslationUpdated(ctx, s.def.Family, general.ID, translation.Locale)
	})

	return s.view(translation, general), nil
}

func (s *service[G, T]) DeleteTranslation(ctx context.Context, generalID uuid.UUID, locale Locale) (bool, error) {
	if !locale.Valid() {
		return false, fmt.Errorf("%w: %q", ErrUnsupportedLocale, locale)
	}

	general, err := s.resolveGeneral(ctx, generalID)
	if err != nil {
		if errors.Is(err, ErrGeneralNotFound) {
			return false, ErrTranslationNotFound
		}
		return false, err
	}

	translation, err := s.repo.GetTranslation(ctx, general.ID, locale)
	if err != nil {
		return false, err
	}

	if err := s.repo.DeleteTranslation(ctx, translation.ID); err != nil {
		return false, &AggregateError{Family: s.def.Family, GeneralID: general.ID, Op: "delete_translation", Err: err}
	}
	s.cleanupDocument(ctx, translation.Document)

	s.fire(func() error {
		return s.events.TranslationDeleted(ctx, s.def.Family, general.ID, locale)
	})

	remaining, err := s.repo.CountTranslations(ctx, general.ID)
	if err != nil {
		return false, err
	}
	if remaining > 0 {
		return false, nil
	}

	policy, err := s.def.ResolvePolicy(ctx, general.ID)
	if err != nil {
		return false, err
	}
	if policy == CascadeBlock {
		// The General stays behind with zero translations, pending manual
		// resolution once the dependents are removed.
		return false, ErrCascadeBlocked
	}

	s.cleanupAssets(ctx, general.Assets)

	// A concurrent cascade may have beaten us to it; a missing General is
	// already the outcome we want.
	if err := s.repo.DeleteGeneral(ctx, general.ID); err != nil && !errors.Is(err, ErrGeneralNotFound) {
		return false, &AggregateError{Family: s.def.Family, GeneralID: general.ID, Op: "cascade_delete", Err: err}
	}

	s.fire(func() error { return s.events.GeneralDeleted(ctx, s.def.Family, general.ID) })

	return true, nil
}

// Lookups

func (s *service[G, T]) GetByLocale(ctx context.Context, generalID uuid.UUID, locale Locale) (*LocalizedView[G, T], error) {
	if !locale.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, locale)
	}

	general, err := s.resolveGeneral(ctx, generalID)
	if err != nil {
		return nil, err
	}

	translation, err := s.repo.GetTranslation(ctx, general.ID, locale)
	if err != nil {
		return nil, err
	}

	return s.view(translation, general), nil
}

func (s *service[G, T]) ListByLocale(ctx context.Context, locale Locale) ([]*LocalizedView[G, T], error) {
	if !locale.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, locale)
	}

	translations, err := s.repo.ListTranslationsByLocale(ctx, locale)
	if err != nil {
		return nil, err
	}

	views := make([]*LocalizedView[G, T], 0, len(translations))
	for _, tr := range translations {
		general, err := s.repo.GetGeneral(ctx, tr.GeneralID)
		if errors.Is(err, ErrGeneralNotFound) {
			// Translation left behind by a half-finished cascade; skip it.
			continue
		}
		if err != nil {
			return nil, err
		}
		views = append(views, s.view(tr, general))
	}

	return views, nil
}

func (s *service[G, T]) ListGrouped(ctx context.Context) (map[uuid.UUID][]*LocalizedView[G, T], error) {
	translations, err := s.repo.ListTranslations(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[uuid.UUID][]*LocalizedView[G, T])
	for _, tr := range translations {
		general, err := s.repo.GetGeneral(ctx, tr.GeneralID)
		if errors.Is(err, ErrGeneralNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		grouped[tr.GeneralID] = append(grouped[tr.GeneralID], s.view(tr, general))
	}

	return grouped, nil
}

// Internal helpers

func (s *service[G, T]) resolveGeneral(ctx context.Context, id uuid.UUID) (*General[G], error) {
	if s.def.Singleton && id == uuid.Nil {
		return s.repo.GetSingletonGeneral(ctx)
	}
	if id == uuid.Nil {
		return nil, ErrGeneralNotFound
	}
	return s.repo.GetGeneral(ctx, id)
}

func (s *service[G, T]) createImplicitGeneral(ctx context.Context, req AddTranslationRequest[G, T]) (*General[G], error) {
	var attrs G
	if req.GeneralAttributes != nil {
		attrs = *req.GeneralAttributes
	}

	if err := s.def.validate(attrs); err != nil {
		return nil, err
	}

	assets, err := s.uploadAll(ctx, req.GeneralAssets)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	general := &General[G]{
		ID:         uuid.New(),
		Key:        s.def.uniqueKey(attrs),
		Attributes: attrs,
		Assets:     assets,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.CreateGeneral(ctx, general); err != nil {
		s.cleanupAssets(ctx, assets)
		return nil, &AggregateError{Family: s.def.Family, GeneralID: general.ID, Op: "create_implicit", Err: err}
	}

	s.fire(func() error { return s.events.GeneralCreated(ctx, s.def.Family, general.ID) })

	return general, nil
}

func (s *service[G, T]) checkKeyAvailable(ctx context.Context, key string, selfID uuid.UUID) error {
	existing, err := s.repo.FindGeneralByKey(ctx, key)
	if errors.Is(err, ErrGeneralNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID == selfID {
		return nil
	}
	return fmt.Errorf("%w: key %q", ErrGeneralExists, key)
}

func (s *service[G, T]) uploadOne(ctx context.Context, file AssetFile) (AssetRef, error) {
	if s.store == nil {
		return AssetRef{}, ErrStorageBackendNotFound
	}
	ref, err := s.store.Upload(ctx, UploadParams{
		// SVG uploads are sanitized; active content never reaches storage.
		Data:         sanitize.Upload(file.Data, file.MimeType),
		FileName:     file.FileName,
		MimeType:     file.MimeType,
		Folder:       s.def.AssetFolder,
		ResourceType: ResourceTypeForMime(file.MimeType),
	})
	if err != nil {
		return AssetRef{}, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	return ref, nil
}

func (s *service[G, T]) uploadAll(ctx context.Context, files []AssetFile) ([]AssetRef, error) {
	if len(files) == 0 {
		return nil, nil
	}
	refs := make([]AssetRef, 0, len(files))
	for _, file := range files {
		ref, err := s.uploadOne(ctx, file)
		if err != nil {
			// Roll back the blobs already uploaded for this request.
			s.cleanupAssets(ctx, refs)
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// cleanupAssets deletes blobs whose records are already logically gone.
// Failures are logged and swallowed: the primary-store mutation has
// succeeded and a transient orphaned blob beats a rolled-back write.
func (s *service[G, T]) cleanupAssets(ctx context.Context, assets []AssetRef) {
	if s.store == nil {
		return
	}
	for _, asset := range assets {
		if asset.PublicID == "" {
			continue
		}
		if err := s.store.Delete(ctx, asset.PublicID); err != nil {
			s.logger.Warn("failed to delete blob",
				"family", s.def.Family,
				"public_id", asset.PublicID,
				"error", err)
		}
	}
}

func (s *service[G, T]) cleanupDocument(ctx context.Context, document *AssetRef) {
	if document == nil {
		return
	}
	s.cleanupAssets(ctx, []AssetRef{*document})
}

func (s *service[G, T]) view(translation *Translation[T], general *General[G]) *LocalizedView[G, T] {
	return &LocalizedView[G, T]{
		TranslationID: translation.ID,
		Locale:        translation.Locale,
		Attributes:    translation.Attributes,
		Document:      translation.Document,
		General:       *general,
	}
}

func (s *service[G, T]) fire(emit func() error) {
	// Event sink failures never fail the operation.
	if err := emit(); err != nil {
		s.logger.Debug("event sink error", "family", s.def.Family, "error", err)
	}
}
