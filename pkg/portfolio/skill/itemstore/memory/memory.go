// Package memory provides an in-memory skill item store.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/tendant/localized-content/pkg/portfolio/skill"
)

// Store implements skill.ItemStore using an in-memory map.
type Store struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*skill.Item
}

// New creates a new in-memory item store.
func New() *Store {
	return &Store{items: make(map[uuid.UUID]*skill.Item)}
}

func (s *Store) CreateItem(ctx context.Context, item *skill.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.CategoryID == item.CategoryID && existing.Name == item.Name {
			return skill.ErrItemExists
		}
	}

	itemCopy := *item
	s.items[item.ID] = &itemCopy

	return nil
}

func (s *Store) GetItem(ctx context.Context, id uuid.UUID) (*skill.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.items[id]
	if !exists {
		return nil, skill.ErrItemNotFound
	}

	itemCopy := *item
	return &itemCopy, nil
}

func (s *Store) UpdateItem(ctx context.Context, item *skill.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[item.ID]; !exists {
		return skill.ErrItemNotFound
	}
	for id, existing := range s.items {
		if id != item.ID && existing.CategoryID == item.CategoryID && existing.Name == item.Name {
			return skill.ErrItemExists
		}
	}

	itemCopy := *item
	s.items[item.ID] = &itemCopy

	return nil
}

func (s *Store) DeleteItem(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return skill.ErrItemNotFound
	}
	delete(s.items, id)

	return nil
}

func (s *Store) ListItemsByCategory(ctx context.Context, categoryID uuid.UUID, filter skill.ItemFilter) ([]*skill.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(filter.Name)
	var result []*skill.Item
	for _, item := range s.items {
		if item.CategoryID != categoryID {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(item.Name), needle) {
			continue
		}
		itemCopy := *item
		result = append(result, &itemCopy)
	}
	slices.SortFunc(result, func(a, b *skill.Item) int {
		return strings.Compare(a.Name, b.Name)
	})

	return result, nil
}

func (s *Store) ExistsByCategory(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.CategoryID == categoryID {
			return true, nil
		}
	}

	return false, nil
}
