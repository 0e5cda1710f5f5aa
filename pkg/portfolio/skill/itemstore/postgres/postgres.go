// Package postgres provides a PostgreSQL-backed skill item store.
// See migrations/002_create_skill_items.sql for the schema.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/localized-content/pkg/localizedcontent"
	"github.com/tendant/localized-content/pkg/portfolio/skill"
)

// DBTX is an interface that allows us to use either a database connection or a transaction.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Store implements skill.ItemStore using PostgreSQL.
type Store struct {
	db DBTX
}

// New creates a new PostgreSQL item store.
func New(db DBTX) *Store {
	return &Store{db: db}
}

// NewWithPool creates a new PostgreSQL item store with a connection pool.
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{db: pool}
}

func handlePostgresError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return skill.ErrItemExists
		case "42P01": // undefined_table
			return fmt.Errorf("skill_items table does not exist, run migrations: %w", err)
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return skill.ErrItemNotFound
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func (s *Store) CreateItem(ctx context.Context, item *skill.Item) error {
	icon, err := marshalIcon(item.Icon)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO skill_items (id, category_id, name, icon, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := s.db.Exec(ctx, query,
		item.ID, item.CategoryID, item.Name, icon, item.CreatedAt, item.UpdatedAt); err != nil {
		return handlePostgresError("create item", err)
	}

	return nil
}

func (s *Store) GetItem(ctx context.Context, id uuid.UUID) (*skill.Item, error) {
	query := `
		SELECT id, category_id, name, icon, created_at, updated_at
		FROM skill_items
		WHERE id = $1`
	return scanItem(s.db.QueryRow(ctx, query, id))
}

func (s *Store) UpdateItem(ctx context.Context, item *skill.Item) error {
	icon, err := marshalIcon(item.Icon)
	if err != nil {
		return err
	}

	query := `
		UPDATE skill_items
		SET name = $2, icon = $3, updated_at = $4
		WHERE id = $1`
	tag, err := s.db.Exec(ctx, query, item.ID, item.Name, icon, item.UpdatedAt)
	if err != nil {
		return handlePostgresError("update item", err)
	}
	if tag.RowsAffected() == 0 {
		return skill.ErrItemNotFound
	}

	return nil
}

func (s *Store) DeleteItem(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM skill_items WHERE id = $1`, id)
	if err != nil {
		return handlePostgresError("delete item", err)
	}
	if tag.RowsAffected() == 0 {
		return skill.ErrItemNotFound
	}

	return nil
}

func (s *Store) ListItemsByCategory(ctx context.Context, categoryID uuid.UUID, filter skill.ItemFilter) ([]*skill.Item, error) {
	query := `
		SELECT id, category_id, name, icon, created_at, updated_at
		FROM skill_items
		WHERE category_id = $1`
	args := []interface{}{categoryID}
	if filter.Name != "" {
		query += ` AND name ILIKE '%' || $2 || '%'`
		args = append(args, filter.Name)
	}
	query += ` ORDER BY name`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, handlePostgresError("list items", err)
	}
	defer rows.Close()

	var result []*skill.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	return result, rows.Err()
}

func (s *Store) ExistsByCategory(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM skill_items WHERE category_id = $1)`
	if err := s.db.QueryRow(ctx, query, categoryID).Scan(&exists); err != nil {
		return false, handlePostgresError("check items", err)
	}

	return exists, nil
}

func marshalIcon(icon *localizedcontent.AssetRef) ([]byte, error) {
	if icon == nil {
		return nil, nil
	}
	data, err := json.Marshal(icon)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal icon: %w", err)
	}
	return data, nil
}

func scanItem(row pgx.Row) (*skill.Item, error) {
	var item skill.Item
	var icon []byte

	if err := row.Scan(&item.ID, &item.CategoryID, &item.Name, &icon,
		&item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, handlePostgresError("scan item", err)
	}

	if icon != nil {
		var ref localizedcontent.AssetRef
		if err := json.Unmarshal(icon, &ref); err != nil {
			return nil, fmt.Errorf("failed to unmarshal icon: %w", err)
		}
		item.Icon = &ref
	}

	return &item, nil
}
