// Package contact manages the site-wide contact record: how to reach the
// portfolio's owner. The record is a singleton with no localized half and no
// binary assets; it lives outside the General/Translation engine and is
// addressed without an id.
package contact

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tendant/localized-content/pkg/localizedcontent"
)

var (
	// ErrContactNotFound is returned when no contact record exists yet.
	ErrContactNotFound = errors.New("contact information not found")

	// ErrContactExists is returned when creating a second contact record.
	ErrContactExists = errors.New("contact information already exists")
)

// SocialLinks maps a platform name (github, linkedin, ...) to a profile URL.
type SocialLinks map[string]string

// Contact is the one reachability record of the site.
type Contact struct {
	ID          uuid.UUID   `json:"id"`
	Email       string      `json:"email"`
	Phone       *string     `json:"phone,omitempty"`
	SocialLinks SocialLinks `json:"social_links,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Store persists the singleton contact record.
type Store interface {
	// GetContact returns the record, or ErrContactNotFound when none exists.
	GetContact(ctx context.Context) (*Contact, error)
	CreateContact(ctx context.Context, contact *Contact) error
	UpdateContact(ctx context.Context, contact *Contact) error
	// DeleteContact removes the record. Deleting an absent record is a no-op.
	DeleteContact(ctx context.Context) error
}

// CreateRequest contains the initial contact record fields.
type CreateRequest struct {
	Email       string      `json:"email"`
	Phone       *string     `json:"phone,omitempty"`
	SocialLinks SocialLinks `json:"social_links,omitempty"`
}

// Option configures the contact service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// Service manages the contact record. At most one record exists; Create
// conflicts once it does.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService creates the contact service on top of a store.
func NewService(store Store, options ...Option) *Service {
	s := &Service{store: store}
	for _, option := range options {
		option(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Get returns the contact record.
func (s *Service) Get(ctx context.Context) (*Contact, error) {
	return s.store.GetContact(ctx)
}

// Create creates the contact record. A record that already exists is a
// conflict, not an update.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Contact, error) {
	if req.Email == "" {
		return nil, localizedcontent.NewValidationError("email is required")
	}

	if _, err := s.store.GetContact(ctx); err == nil {
		return nil, ErrContactExists
	} else if !errors.Is(err, ErrContactNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	contact := &Contact{
		ID:          uuid.New(),
		Email:       req.Email,
		Phone:       req.Phone,
		SocialLinks: req.SocialLinks,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateContact(ctx, contact); err != nil {
		return nil, err
	}

	return contact, nil
}

// Update applies a partial update to the existing record.
func (s *Service) Update(ctx context.Context, patch Patch) (*Contact, error) {
	contact, err := s.store.GetContact(ctx)
	if err != nil {
		return nil, err
	}

	updated := patch.Apply(*contact)
	if updated.Email == "" {
		return nil, localizedcontent.NewValidationError("email cannot be empty")
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateContact(ctx, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes the contact record. Deleting twice is a no-op.
func (s *Service) Delete(ctx context.Context) error {
	return s.store.DeleteContact(ctx)
}
