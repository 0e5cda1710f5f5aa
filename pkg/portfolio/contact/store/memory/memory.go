// Package memory provides an in-memory contact store.
package memory

import (
	"context"
	"sync"

	"golang.org/x/exp/maps"

	"github.com/tendant/localized-content/pkg/portfolio/contact"
)

// Store implements contact.Store in memory. It holds at most one record and
// hands out copies so callers never mutate stored state.
type Store struct {
	mu      sync.RWMutex
	contact *contact.Contact
}

// New creates a new in-memory contact store.
func New() *Store {
	return &Store{}
}

func (s *Store) GetContact(ctx context.Context) (*contact.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.contact == nil {
		return nil, contact.ErrContactNotFound
	}
	return clone(s.contact), nil
}

func (s *Store) CreateContact(ctx context.Context, c *contact.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.contact != nil {
		return contact.ErrContactExists
	}
	s.contact = clone(c)

	return nil
}

func (s *Store) UpdateContact(ctx context.Context, c *contact.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.contact == nil {
		return contact.ErrContactNotFound
	}
	s.contact = clone(c)

	return nil
}

func (s *Store) DeleteContact(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contact = nil

	return nil
}

func clone(c *contact.Contact) *contact.Contact {
	out := *c
	if c.Phone != nil {
		phone := *c.Phone
		out.Phone = &phone
	}
	if c.SocialLinks != nil {
		out.SocialLinks = maps.Clone(c.SocialLinks)
	}
	return &out
}
