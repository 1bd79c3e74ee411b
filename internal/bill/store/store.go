package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billy/internal/bill"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, user_id, name, value, description, installments, created_at, updated_at, deleted_at
func scanBill(s scanner) (*bill.Bill, error) {
	var b bill.Bill

	var desc sql.NullString

	if err := s.Scan(
		&b.ID, &b.UserID, &b.Name, &b.Value, &desc, &b.Installments,
		&b.CreatedAt, &b.UpdatedAt, &b.DeletedAt,
	); err != nil {
		return nil, err
	}

	b.Description = desc.String

	return &b, nil
}

const selectBillColumns = `
	b.id, b.user_id, b.name, b.value, b.description, b.installments,
	b.created_at, b.updated_at, b.deleted_at
`

const insertBill = `
	INSERT INTO bills (user_id, name, value, description, installments, created_at)
	VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
	RETURNING id
`

func (s *Store) CreateBill(ctx context.Context, b *bill.Bill) error {
	err := s.db.QueryRowContext(ctx, insertBill,
		b.UserID,
		b.Name,
		b.Value,
		b.Description,
		b.Installments,
		b.CreatedAt,
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("creating bill: %w", err)
	}

	return nil
}

func (s *Store) GetBill(ctx context.Context, id uuid.UUID) (*bill.Bill, error) {
	query := `SELECT ` + selectBillColumns + `
		FROM bills b
		WHERE b.id = $1 AND b.deleted_at IS NULL`

	b, err := scanBill(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bill.ErrNotFound
		}

		return nil, fmt.Errorf("getting bill: %w", err)
	}

	return b, nil
}

// ListBills returns an empty slice, never ErrNotFound, when nothing matches.
func (s *Store) ListBills(ctx context.Context, filter bill.ListFilter) ([]*bill.Bill, error) {
	query := `SELECT ` + selectBillColumns + `
		FROM bills b
		WHERE b.deleted_at IS NULL AND b.user_id = $1`

	args := []any{filter.UserID}
	argIdx := 2

	if filter.Kind != nil {
		switch *filter.Kind {
		case bill.KindFixed:
			query += " AND b.installments IS NULL"
		case bill.KindMonthlyMisc:
			query += " AND b.installments = 1"
		case bill.KindInstallment:
			query += " AND b.installments >= 2"
		default:
			return nil, fmt.Errorf("unknown bill kind %q", *filter.Kind)
		}
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND b.created_at >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND b.created_at <= $%d", argIdx)

		args = append(args, *filter.EndDate)
	}

	// seq preserves insertion order, which the summary name lists rely on.
	query += " ORDER BY b.seq ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}
	defer rows.Close()

	bills := []*bill.Bill{}

	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bill: %w", err)
		}

		bills = append(bills, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bill rows: %w", err)
	}

	return bills, nil
}

func (s *Store) UpdateBill(ctx context.Context, b *bill.Bill) error {
	query := `
		UPDATE bills
		SET name = $1, value = $2, description = NULLIF($3, ''), installments = $4, updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		b.Name,
		b.Value,
		b.Description,
		b.Installments,
		b.ID,
	).Scan(&b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return bill.ErrNotFound
		}

		return fmt.Errorf("updating bill: %w", err)
	}

	return nil
}

func (s *Store) DeleteBill(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE bills
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting bill: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return bill.ErrNotFound
	}

	return nil
}

func importLockKey(userID uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write([]byte("bills-import"))
	h.Write([]byte{0})
	h.Write(userID[:])

	return int64(h.Sum64())
}

type importTx struct {
	tx     *sql.Tx
	userID uuid.UUID
}

// BeginImport opens a transaction holding a per-user advisory lock so two
// concurrent imports for the same user cannot both pass duplicate detection.
func (s *Store) BeginImport(ctx context.Context, userID uuid.UUID) (bill.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey(userID)); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx, userID: userID}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindDuplicates(ctx context.Context, params []bill.CreateParams) ([]*bill.Bill, error) {
	if len(params) == 0 {
		return nil, nil
	}

	type lookupKey struct {
		Date  string
		Value string
		Name  string
	}

	minDate := params[0].CreatedAt
	maxDate := params[0].CreatedAt
	keySet := make(map[lookupKey]struct{}, len(params))

	for _, p := range params {
		if p.CreatedAt.Before(minDate) {
			minDate = p.CreatedAt
		}

		if p.CreatedAt.After(maxDate) {
			maxDate = p.CreatedAt
		}

		keySet[lookupKey{
			Date:  p.CreatedAt.Format(time.DateOnly),
			Value: p.Value.StringFixed(2),
			Name:  p.Name,
		}] = struct{}{}
	}

	query := `SELECT ` + selectBillColumns + `
		FROM bills b
		WHERE b.deleted_at IS NULL AND b.user_id = $1
		  AND b.created_at >= $2 AND b.created_at < $3
		ORDER BY b.seq ASC`

	start := time.Date(minDate.Year(), minDate.Month(), minDate.Day(), 0, 0, 0, 0, minDate.Location())
	end := time.Date(maxDate.Year(), maxDate.Month(), maxDate.Day()+1, 0, 0, 0, 0, maxDate.Location())

	rows, err := itx.tx.QueryContext(ctx, query, itx.userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}
	defer rows.Close()

	var duplicates []*bill.Bill

	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bill: %w", err)
		}

		k := lookupKey{
			Date:  b.CreatedAt.Format(time.DateOnly),
			Value: b.Value.StringFixed(2),
			Name:  b.Name,
		}

		if _, found := keySet[k]; !found {
			continue
		}

		duplicates = append(duplicates, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duplicate rows: %w", err)
	}

	return duplicates, nil
}

func (itx *importTx) CreateBills(ctx context.Context, bills []*bill.Bill) error {
	for _, b := range bills {
		err := itx.tx.QueryRowContext(ctx, insertBill,
			b.UserID,
			b.Name,
			b.Value,
			b.Description,
			b.Installments,
			b.CreatedAt,
		).Scan(&b.ID)
		if err != nil {
			return fmt.Errorf("creating bill: %w", err)
		}
	}

	return nil
}
