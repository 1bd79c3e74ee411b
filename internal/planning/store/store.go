package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billy/internal/planning"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlanning(s scanner) (*planning.Planning, error) {
	var (
		p    planning.Planning
		desc sql.NullString
	)

	if err := s.Scan(
		&p.ID, &p.UserID, &p.Name, &desc, &p.GoalValue, &p.SavedValue,
		&p.TargetDate, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	); err != nil {
		return nil, err
	}

	p.Description = desc.String

	return &p, nil
}

const selectPlanningColumns = `
	id, user_id, name, description, goal_value, saved_value,
	target_date, created_at, updated_at, deleted_at
`

func (s *Store) CreatePlanning(ctx context.Context, p *planning.Planning) error {
	query := `
		INSERT INTO plannings (user_id, name, description, goal_value, saved_value, target_date)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.UserID,
		p.Name,
		p.Description,
		p.GoalValue,
		p.SavedValue,
		p.TargetDate,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating planning: %w", err)
	}

	return nil
}

func (s *Store) GetPlanning(ctx context.Context, id uuid.UUID) (*planning.Planning, error) {
	query := `SELECT ` + selectPlanningColumns + `
		FROM plannings
		WHERE id = $1 AND deleted_at IS NULL`

	p, err := scanPlanning(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, planning.ErrNotFound
		}

		return nil, fmt.Errorf("getting planning: %w", err)
	}

	return p, nil
}

func (s *Store) ListPlannings(ctx context.Context, userID uuid.UUID) ([]*planning.Planning, error) {
	query := `SELECT ` + selectPlanningColumns + `
		FROM plannings
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY target_date ASC, created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing plannings: %w", err)
	}
	defer rows.Close()

	plannings := []*planning.Planning{}

	for rows.Next() {
		p, err := scanPlanning(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning planning: %w", err)
		}

		plannings = append(plannings, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating planning rows: %w", err)
	}

	return plannings, nil
}

func (s *Store) UpdatePlanning(ctx context.Context, p *planning.Planning) error {
	query := `
		UPDATE plannings
		SET name = $1, description = NULLIF($2, ''), goal_value = $3, saved_value = $4,
		    target_date = $5, updated_at = NOW()
		WHERE id = $6 AND deleted_at IS NULL
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.Name,
		p.Description,
		p.GoalValue,
		p.SavedValue,
		p.TargetDate,
		p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return planning.ErrNotFound
		}

		return fmt.Errorf("updating planning: %w", err)
	}

	return nil
}

func (s *Store) DeletePlanning(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE plannings SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("deleting planning: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return planning.ErrNotFound
	}

	return nil
}
