package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// FindMatch picks the longest pattern contained in rawDescription, newest first on ties.
func (s *Store) FindMatch(ctx context.Context, userID uuid.UUID, rawDescription string) (string, error) {
	query := `
		SELECT preferred_name
		FROM name_mappings
		WHERE user_id = $1 AND $2 ILIKE '%' || raw_pattern || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var preferred string

	err := s.db.QueryRowContext(ctx, query, userID, rawDescription).Scan(&preferred)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("finding match: %w", err)
	}

	return preferred, nil
}

func (s *Store) CreateMapping(ctx context.Context, userID uuid.UUID, rawPattern, preferredName string) error {
	query := `
		INSERT INTO name_mappings (user_id, raw_pattern, preferred_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, raw_pattern) DO UPDATE
		SET preferred_name = EXCLUDED.preferred_name, created_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, userID, rawPattern, preferredName); err != nil {
		return fmt.Errorf("creating mapping: %w", err)
	}

	return nil
}
