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
)

// DBTX is an interface that allows us to use either a database connection or a transaction.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements localizedcontent.Repository using PostgreSQL.
// General and Translation attributes are stored as JSONB so one pair of
// tables serves every domain family, partitioned by the family column.
// See migrations/001_create_tables.sql for the schema.
type Repository[G, T any] struct {
	db     DBTX
	family string
}

// New creates a new PostgreSQL repository for one family.
func New[G, T any](db DBTX, family string) *Repository[G, T] {
	return &Repository[G, T]{db: db, family: family}
}

// NewWithPool creates a new PostgreSQL repository with a connection pool.
func NewWithPool[G, T any](pool *pgxpool.Pool, family string) *Repository[G, T] {
	return &Repository[G, T]{db: pool, family: family}
}

func (r *Repository[G, T]) handlePostgresError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if pgErr.ConstraintName == "translations_general_locale_key" {
				return localizedcontent.ErrTranslationExists
			}
			return localizedcontent.ErrGeneralExists
		case "23503": // foreign_key_violation
			return localizedcontent.ErrGeneralNotFound
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		}
	}
	return fmt.Errorf("database error in %s: %w", op, err)
}

// General operations

func (r *Repository[G, T]) CreateGeneral(ctx context.Context, general *localizedcontent.General[G]) error {
	attrs, err := json.Marshal(general.Attributes)
	if err != nil {
		return fmt.Errorf("failed to marshal attributes: %w", err)
	}
	assets, err := json.Marshal(general.Assets)
	if err != nil {
		return fmt.Errorf("failed to marshal assets: %w", err)
	}

	query := `
		INSERT INTO generals (id, family, unique_key, attributes, assets, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.Exec(ctx, query,
		general.ID, r.family, general.Key, attrs, assets,
		general.CreatedAt, general.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create general", err)
	}

	return nil
}

func (r *Repository[G, T]) GetGeneral(ctx context.Context, id uuid.UUID) (*localizedcontent.General[G], error) {
	query := `
		SELECT id, unique_key, attributes, assets, created_at, updated_at
		FROM generals
		WHERE id = $1 AND family = $2`

	return r.scanGeneral(r.db.QueryRow(ctx, query, id, r.family))
}

func (r *Repository[G, T]) GetSingletonGeneral(ctx context.Context) (*localizedcontent.General[G], error) {
	query := `
		SELECT id, unique_key, attributes, assets, created_at, updated_at
		FROM generals
		WHERE family = $1
		ORDER BY created_at
		LIMIT 1`

	return r.scanGeneral(r.db.QueryRow(ctx, query, r.family))
}

func (r *Repository[G, T]) FindGeneralByKey(ctx context.Context, key string) (*localizedcontent.General[G], error) {
	if key == "" {
		return nil, localizedcontent.ErrGeneralNotFound
	}

	query := `
		SELECT id, unique_key, attributes, assets, created_at, updated_at
		FROM generals
		WHERE family = $1 AND unique_key = $2`

	return r.scanGeneral(r.db.QueryRow(ctx, query, r.family, key))
}

func (r *Repository[G, T]) ListGenerals(ctx context.Context) ([]*localizedcontent.General[G], error) {
	query := `
		SELECT id, unique_key, attributes, assets, created_at, updated_at
		FROM generals
		WHERE family = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, r.family)
	if err != nil {
		return nil, r.handlePostgresError("list generals", err)
	}
	defer rows.Close()

	var result []*localizedcontent.General[G]
	for rows.Next() {
		general, err := r.scanGeneral(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, general)
	}

	return result, rows.Err()
}

func (r *Repository[G, T]) UpdateGeneral(ctx context.Context, general *localizedcontent.General[G]) error {
	attrs, err := json.Marshal(general.Attributes)
	if err != nil {
		return fmt.Errorf("failed to marshal attributes: %w", err)
	}
	assets, err := json.Marshal(general.Assets)
	if err != nil {
		return fmt.Errorf("failed to marshal assets: %w", err)
	}

	query := `
		UPDATE generals
		SET unique_key = $3, attributes = $4, assets = $5, updated_at = $6
		WHERE id = $1 AND family = $2`

	tag, err := r.db.Exec(ctx, query,
		general.ID, r.family, general.Key, attrs, assets, general.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update general", err)
	}
	if tag.RowsAffected() == 0 {
		return localizedcontent.ErrGeneralNotFound
	}

	return nil
}

func (r *Repository[G, T]) DeleteGeneral(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM generals WHERE id = $1 AND family = $2`, id, r.family)
	if err != nil {
		return r.handlePostgresError("delete general", err)
	}
	if tag.RowsAffected() == 0 {
		return localizedcontent.ErrGeneralNotFound
	}

	return nil
}

// Translation operations

func (r *Repository[G, T]) CreateTranslation(ctx context.Context, translation *localizedcontent.Translation[T]) error {
	attrs, err := json.Marshal(translation.Attributes)
	if err != nil {
		return fmt.Errorf("failed to marshal attributes: %w", err)
	}
	document, err := marshalDocument(translation.Document)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO translations (id, family, general_id, locale, attributes, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.Exec(ctx, query,
		translation.ID, r.family, translation.GeneralID, string(translation.Locale),
		attrs, document, translation.CreatedAt, translation.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create translation", err)
	}

	return nil
}

func (r *Repository[G, T]) GetTranslation(ctx context.Context, generalID uuid.UUID, locale localizedcontent.Locale) (*localizedcontent.Translation[T], error) {
	query := `
		SELECT id, general_id, locale, attributes, document, created_at, updated_at
		FROM translations
		WHERE family = $1 AND general_id = $2 AND locale = $3`

	return r.scanTranslation(r.db.QueryRow(ctx, query, r.family, generalID, string(locale)))
}

func (r *Repository[G, T]) UpdateTranslation(ctx context.Context, translation *localizedcontent.Translation[T]) error {
	attrs, err := json.Marshal(translation.Attributes)
	if err != nil {
		return fmt.Errorf("failed to marshal attributes: %w", err)
	}
	document, err := marshalDocument(translation.Document)
	if err != nil {
		return err
	}

	query := `
		UPDATE translations
		SET attributes = $3, document = $4, updated_at = $5
		WHERE id = $1 AND family = $2`

	tag, err := r.db.Exec(ctx, query,
		translation.ID, r.family, attrs, document, translation.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update translation", err)
	}
	if tag.RowsAffected() == 0 {
		return localizedcontent.ErrTranslationNotFound
	}

	return nil
}

func (r *Repository[G, T]) DeleteTranslation(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM translations WHERE id = $1 AND family = $2`, id, r.family)
	if err != nil {
		return r.handlePostgresError("delete translation", err)
	}
	if tag.RowsAffected() == 0 {
		return localizedcontent.ErrTranslationNotFound
	}

	return nil
}

func (r *Repository[G, T]) ListTranslations(ctx context.Context) ([]*localizedcontent.Translation[T], error) {
	query := `
		SELECT id, general_id, locale, attributes, document, created_at, updated_at
		FROM translations
		WHERE family = $1
		ORDER BY created_at`

	return r.queryTranslations(ctx, query, r.family)
}

func (r *Repository[G, T]) ListTranslationsByGeneral(ctx context.Context, generalID uuid.UUID) ([]*localizedcontent.Translation[T], error) {
	query := `
		SELECT id, general_id, locale, attributes, document, created_at, updated_at
		FROM translations
		WHERE family = $1 AND general_id = $2
		ORDER BY created_at`

	return r.queryTranslations(ctx, query, r.family, generalID)
}

func (r *Repository[G, T]) ListTranslationsByLocale(ctx context.Context, locale localizedcontent.Locale) ([]*localizedcontent.Translation[T], error) {
	query := `
		SELECT id, general_id, locale, attributes, document, created_at, updated_at
		FROM translations
		WHERE family = $1 AND locale = $2
		ORDER BY created_at`

	return r.queryTranslations(ctx, query, r.family, string(locale))
}

func (r *Repository[G, T]) CountTranslations(ctx context.Context, generalID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM translations WHERE family = $1 AND general_id = $2`,
		r.family, generalID).Scan(&count)
	if err != nil {
		return 0, r.handlePostgresError("count translations", err)
	}

	return count, nil
}

// Scan helpers

func (r *Repository[G, T]) scanGeneral(row pgx.Row) (*localizedcontent.General[G], error) {
	var general localizedcontent.General[G]
	var attrs, assets []byte

	err := row.Scan(&general.ID, &general.Key, &attrs, &assets, &general.CreatedAt, &general.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, localizedcontent.ErrGeneralNotFound
	}
	if err != nil {
		return nil, r.handlePostgresError("scan general", err)
	}

	if err := json.Unmarshal(attrs, &general.Attributes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attributes: %w", err)
	}
	if err := json.Unmarshal(assets, &general.Assets); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assets: %w", err)
	}

	return &general, nil
}

func (r *Repository[G, T]) scanTranslation(row pgx.Row) (*localizedcontent.Translation[T], error) {
	var translation localizedcontent.Translation[T]
	var locale string
	var attrs, document []byte

	err := row.Scan(&translation.ID, &translation.GeneralID, &locale, &attrs, &document,
		&translation.CreatedAt, &translation.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, localizedcontent.ErrTranslationNotFound
	}
	if err != nil {
		return nil, r.handlePostgresError("scan translation", err)
	}

	translation.Locale = localizedcontent.Locale(locale)
	if err := json.Unmarshal(attrs, &translation.Attributes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attributes: %w", err)
	}
	if document != nil {
		var ref localizedcontent.AssetRef
		if err := json.Unmarshal(document, &ref); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}
		translation.Document = &ref
	}

	return &translation, nil
}

func (r *Repository[G, T]) queryTranslations(ctx context.Context, query string, args ...interface{}) ([]*localizedcontent.Translation[T], error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.handlePostgresError("list translations", err)
	}
	defer rows.Close()

	var result []*localizedcontent.Translation[T]
	for rows.Next() {
		translation, err := r.scanTranslation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, translation)
	}

	return result, rows.Err()
}

func marshalDocument(document *localizedcontent.AssetRef) ([]byte, error) {
	if document == nil {
		return nil, nil
	}
	data, err := json.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return data, nil
}
