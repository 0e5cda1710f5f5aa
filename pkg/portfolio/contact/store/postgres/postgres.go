// Package postgres provides a PostgreSQL-backed contact store.
// See migrations/003_create_contacts.sql for the schema.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/localized-content/pkg/portfolio/contact"
)

// DBTX is an interface that allows us to use either a database connection or a transaction.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Store implements contact.Store using PostgreSQL.
type Store struct {
	db DBTX
}

// New creates a new PostgreSQL contact store.
func New(db DBTX) *Store {
	return &Store{db: db}
}

// NewWithPool creates a new PostgreSQL contact store with a connection pool.
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{db: pool}
}

func handlePostgresError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return contact.ErrContactExists
		case "42P01": // undefined_table
			return fmt.Errorf("contacts table does not exist, run migrations: %w", err)
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return contact.ErrContactNotFound
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func (s *Store) GetContact(ctx context.Context) (*contact.Contact, error) {
	// Oldest row wins if a race ever produces more than one.
	query := `
		SELECT id, email, phone, social_links, created_at, updated_at
		FROM contacts
		ORDER BY created_at
		LIMIT 1`

	var c contact.Contact
	var links []byte
	if err := s.db.QueryRow(ctx, query).Scan(
		&c.ID, &c.Email, &c.Phone, &links, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, handlePostgresError("get contact", err)
	}

	if links != nil {
		if err := json.Unmarshal(links, &c.SocialLinks); err != nil {
			return nil, fmt.Errorf("failed to unmarshal social links: %w", err)
		}
	}

	return &c, nil
}

func (s *Store) CreateContact(ctx context.Context, c *contact.Contact) error {
	links, err := marshalLinks(c.SocialLinks)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO contacts (id, email, phone, social_links, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := s.db.Exec(ctx, query,
		c.ID, c.Email, c.Phone, links, c.CreatedAt, c.UpdatedAt); err != nil {
		return handlePostgresError("create contact", err)
	}

	return nil
}

func (s *Store) UpdateContact(ctx context.Context, c *contact.Contact) error {
	links, err := marshalLinks(c.SocialLinks)
	if err != nil {
		return err
	}

	query := `
		UPDATE contacts
		SET email = $2, phone = $3, social_links = $4, updated_at = $5
		WHERE id = $1`
	tag, err := s.db.Exec(ctx, query, c.ID, c.Email, c.Phone, links, c.UpdatedAt)
	if err != nil {
		return handlePostgresError("update contact", err)
	}
	if tag.RowsAffected() == 0 {
		return contact.ErrContactNotFound
	}

	return nil
}

func (s *Store) DeleteContact(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM contacts`); err != nil {
		return handlePostgresError("delete contact", err)
	}

	return nil
}

func marshalLinks(links contact.SocialLinks) ([]byte, error) {
	if links == nil {
		return nil, nil
	}
	data, err := json.Marshal(links)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal social links: %w", err)
	}
	return data, nil
}
