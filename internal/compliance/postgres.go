package compliance

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbr/brcalc/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the review table. seq keeps insertion order for reviews
// that share a timestamp.
const Schema = `
CREATE TABLE IF NOT EXISTS compliance_matrix_reviews (
	id            TEXT PRIMARY KEY,
	seq           BIGSERIAL NOT NULL,
	row_id        TEXT NOT NULL,
	reviewer_id   TEXT NOT NULL,
	reviewer_name TEXT NOT NULL,
	note          TEXT,
	reviewed_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS compliance_matrix_reviews_row_idx
	ON compliance_matrix_reviews (row_id, reviewed_at DESC);
`

// ErrPoolNotInitialized is returned when the repository has no pool.
var ErrPoolNotInitialized = errors.New("compliance: database pool not initialized")

// OpenPool parses databaseURL and opens a pgx connection pool.
func OpenPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database url is empty")
	}
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to open database pool: %w", err)
	}
	return pool, nil
}

// PostgresRepository stores reviews in compliance_matrix_reviews.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository wraps an open pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the review table when it does not exist.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if r.pool == nil {
		return ErrPoolNotInitialized
	}
	if _, err := r.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create review table: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Insert(ctx context.Context, review domain.ComplianceReview) error {
	if r.pool == nil {
		return ErrPoolNotInitialized
	}

	query := `
		INSERT INTO compliance_matrix_reviews (id, row_id, reviewer_id, reviewer_name, note, reviewed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		review.ID, review.EntryID, review.ReviewerID, review.ReviewerName, review.Note, review.ReviewedAt)
	if err != nil {
		return fmt.Errorf("failed to insert review %s: %w", review.ID, err)
	}
	return nil
}

func (r *PostgresRepository) ListByEntry(ctx context.Context, entryID string) ([]domain.ComplianceReview, error) {
	if r.pool == nil {
		return nil, ErrPoolNotInitialized
	}

	query := `
		SELECT id, row_id, reviewer_id, reviewer_name, note, reviewed_at
		FROM compliance_matrix_reviews
		WHERE row_id = $1
		ORDER BY seq ASC
	`
	rows, err := r.pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for %s: %w", entryID, err)
	}

	reviews, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ComplianceReview, error) {
		var rv domain.ComplianceReview
		err := row.Scan(&rv.ID, &rv.EntryID, &rv.ReviewerID, &rv.ReviewerName, &rv.Note, &rv.ReviewedAt)
		rv.ReviewedAt = rv.ReviewedAt.UTC()
		return rv, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan reviews for %s: %w", entryID, err)
	}
	return reviews, nil
}
