package skill

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tendant/localized-content/pkg/localizedcontent"
)

// Item errors.
var (
	ErrItemNotFound = errors.New("skill item not found")
	ErrItemExists   = errors.New("skill item already exists in category")
)

// Item is one skill inside a category. The name is not localized. Items are
// flat records, not aggregates; they reference their category by id and the
// category refuses to disappear while items remain.
type Item struct {
	ID         uuid.UUID                  `json:"id"`
	CategoryID uuid.UUID                  `json:"category_id"`
	Name       string                     `json:"name"`
	Icon       *localizedcontent.AssetRef `json:"icon,omitempty"`
	CreatedAt  time.Time                  `json:"created_at"`
	UpdatedAt  time.Time                  `json:"updated_at"`
}

// ItemFilter narrows item listings. Name matches as a case-insensitive
// substring.
type ItemFilter struct {
	Name string
}

// ItemStore persists skill items. Implementations enforce (CategoryID, Name)
// uniqueness and return ErrItemExists on violation.
type ItemStore interface {
	CreateItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListItemsByCategory(ctx context.Context, categoryID uuid.UUID, filter ItemFilter) ([]*Item, error)
	ExistsByCategory(ctx context.Context, categoryID uuid.UUID) (bool, error)
}
