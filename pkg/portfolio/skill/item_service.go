package skill

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tendant/localized-content/pkg/localizedcontent"
	"github.com/tendant/localized-content/pkg/localizedcontent/sanitize"
)

// CreateItemRequest creates one item inside an existing category.
type CreateItemRequest struct {
	CategoryID uuid.UUID
	Name       string
	Icon       *localizedcontent.AssetFile
}

// UpdateItemRequest partially updates one item. A nil Name leaves the name
// untouched; a non-nil Icon replaces the stored icon.
type UpdateItemRequest struct {
	ItemID uuid.UUID
	Name   *string
	Icon   *localizedcontent.AssetFile
}

// ItemOption configures the item service.
type ItemOption func(*ItemService)

// WithItemBlobStore sets the blob store used for item icons.
func WithItemBlobStore(store localizedcontent.BlobStore) ItemOption {
	return func(s *ItemService) { s.blobs = store }
}

// WithItemLogger sets the logger used for swallowed cleanup failures.
func WithItemLogger(logger *slog.Logger) ItemOption {
	return func(s *ItemService) { s.logger = logger }
}

// ItemService manages skill items. Icon replacement uploads the new blob
// before the old one is removed, so a failed upload leaves the stored
// reference valid.
type ItemService struct {
	categories CategoryService
	store      ItemStore
	blobs      localizedcontent.BlobStore
	logger     *slog.Logger
}

// NewItemService creates the item service on top of the category service and
// an item store.
func NewItemService(categories CategoryService, store ItemStore, options ...ItemOption) *ItemService {
	s := &ItemService{categories: categories, store: store}
	for _, option := range options {
		option(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// CreateItem adds an item to a category. The category must already exist.
func (s *ItemService) CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error) {
	if req.Name == "" {
		return nil, localizedcontent.NewValidationError("item name is required")
	}
	if _, err := s.categories.GetGeneral(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	icon, err := s.uploadIcon(ctx, req.Icon)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &Item{
		ID:         uuid.New(),
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Icon:       icon,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		s.cleanupIcon(ctx, icon)
		return nil, err
	}

	return item, nil
}

// GetItem returns one item by id.
func (s *ItemService) GetItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	return s.store.GetItem(ctx, id)
}

// UpdateItem applies a partial update. When a new icon is supplied it is
// uploaded first; the previous icon is removed only after the record is
// persisted.
func (s *ItemService) UpdateItem(ctx context.Context, req UpdateItemRequest) (*Item, error) {
	item, err := s.store.GetItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, localizedcontent.NewValidationError("item name cannot be empty")
		}
		item.Name = *req.Name
	}

	oldIcon := item.Icon
	if req.Icon != nil {
		icon, err := s.uploadIcon(ctx, req.Icon)
		if err != nil {
			return nil, err
		}
		item.Icon = icon
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateItem(ctx, item); err != nil {
		if req.Icon != nil {
			s.cleanupIcon(ctx, item.Icon)
		}
		return nil, err
	}
	if req.Icon != nil {
		s.cleanupIcon(ctx, oldIcon)
	}

	return item, nil
}

// ListItemsByCategory lists a category's items, optionally filtered by name.
func (s *ItemService) ListItemsByCategory(ctx context.Context, categoryID uuid.UUID, filter ItemFilter) ([]*Item, error) {
	if _, err := s.categories.GetGeneral(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.store.ListItemsByCategory(ctx, categoryID, filter)
}

// DeleteItem removes an item and, best effort, its icon.
func (s *ItemService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.cleanupIcon(ctx, item.Icon)

	return nil
}

func (s *ItemService) uploadIcon(ctx context.Context, file *localizedcontent.AssetFile) (*localizedcontent.AssetRef, error) {
	if file == nil {
		return nil, nil
	}
	if s.blobs == nil {
		return nil, localizedcontent.ErrStorageBackendNotFound
	}
	ref, err := s.blobs.Upload(ctx, localizedcontent.UploadParams{
		Data:         sanitize.Upload(file.Data, file.MimeType),
		FileName:     file.FileName,
		MimeType:     file.MimeType,
		Folder:       "portfolio/skills",
		ResourceType: localizedcontent.ResourceTypeForMime(file.MimeType),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", localizedcontent.ErrUploadFailed, err)
	}
	return &ref, nil
}

func (s *ItemService) cleanupIcon(ctx context.Context, icon *localizedcontent.AssetRef) {
	if icon == nil || s.blobs == nil {
		return
	}
	if err := s.blobs.Delete(ctx, icon.PublicID); err != nil {
		s.logger.Warn("failed to delete item icon", "public_id", icon.PublicID, "error", err)
	}
}
