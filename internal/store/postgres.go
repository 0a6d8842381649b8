package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pfdash/finance-dashboard/internal/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS profile (
		id       UUID PRIMARY KEY,
		document JSONB NOT NULL,
		created  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// PostgresStore keeps each profile as one JSONB document
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgresStore over an existing pool
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Connect opens a pool, checks connectivity and creates the table if missing.
func Connect(ctx context.Context, pgURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, pgURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return pool, nil
}

// Load retrieves a profile by id
func (s *PostgresStore) Load(ctx context.Context, id string) (*domain.Profile, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	query := `SELECT document FROM profile WHERE id = $1`
	var doc []byte
	err = s.pool.QueryRow(ctx, query, uid).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return decodeDocument(doc)
}

// Save inserts or replaces a profile document
func (s *PostgresStore) Save(ctx context.Context, p *domain.Profile) error {
	prepareNew(p)
	uid, err := parseID(p.ID)
	if err != nil {
		return err
	}
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	query := `
		INSERT INTO profile (id, document, created, updated)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated = NOW()
	`
	if _, err := s.pool.Exec(ctx, query, uid, doc, p.CreatedAt); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// Update applies a partial update inside a transaction so concurrent updates serialize on the row
func (s *PostgresStore) Update(ctx context.Context, id string, u domain.ProfileUpdate, check CheckFunc) (*domain.Profile, error) {
	if u.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var doc []byte
	err = tx.QueryRow(ctx, `SELECT document FROM profile WHERE id = $1 FOR UPDATE`, uid).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	current, err := decodeDocument(doc)
	if err != nil {
		return nil, err
	}

	updated, err := applyUpdate(*current, u, check)
	if err != nil {
		return nil, err
	}
	next, err := json.Marshal(updated)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE profile SET document = $1, updated = NOW() WHERE id = $2`, next, uid); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return &updated, nil
}

// Delete deletes a profile
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	result, err := s.pool.Exec(ctx, `DELETE FROM profile WHERE id = $1`, uid)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func decodeDocument(doc []byte) (*domain.Profile, error) {
	var p domain.Profile
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &p, nil
}
