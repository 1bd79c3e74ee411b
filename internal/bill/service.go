package bill

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=bill
type Repository interface {
	CreateBill(ctx context.Context, b *Bill) error
	GetBill(ctx context.Context, id uuid.UUID) (*Bill, error)
	UpdateBill(ctx context.Context, b *Bill) error
	ListBills(ctx context.Context, filter ListFilter) ([]*Bill, error)
	DeleteBill(ctx context.Context, id uuid.UUID) error

	BeginImport(ctx context.Context, userID uuid.UUID) (ImportTx, error)
}

type ImportTx interface {
	FindDuplicates(ctx context.Context, params []CreateParams) ([]*Bill, error)
	CreateBills(ctx context.Context, bills []*Bill) error
	Commit() error
	Rollback() error
}

// ValidationError reports create/update parameters rejected before reaching storage.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return "invalid bill: " + e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

var validate = validator.New()

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID       uuid.UUID       `validate:"required"`
	Name         string          `validate:"required,max=200"`
	Value        decimal.Decimal `validate:"-"`
	Description  string          `validate:"max=500"`
	Installments *int            `validate:"omitempty,min=1"`
	CreatedAt    time.Time
}

// Kind is the kind the bill will have once created.
func (p CreateParams) Kind() Kind {
	return (&Bill{Installments: p.Installments}).Kind()
}

func (p CreateParams) validate() error {
	if err := validate.Struct(p); err != nil {
		return &ValidationError{Err: err}
	}

	if p.Value.IsNegative() {
		return &ValidationError{Err: errors.New("value must not be negative")}
	}

	return nil
}

type ListFilter struct {
	UserID    uuid.UUID
	Kind      *Kind
	StartDate *time.Time
	EndDate   *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Bill, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	b := paramsToBill(params)
	if err := s.repo.CreateBill(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// Get returns the bill only when it belongs to userID.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Bill, error) {
	b, err := s.repo.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.UserID != userID {
		return nil, ErrNotFound
	}

	return b, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Bill, error) {
	return s.repo.ListBills(ctx, filter)
}

func (s *Service) Update(ctx context.Context, b *Bill) error {
	params := CreateParams{
		UserID:       b.UserID,
		Name:         b.Name,
		Value:        b.Value,
		Description:  b.Description,
		Installments: b.Installments,
	}
	if err := params.validate(); err != nil {
		return err
	}

	return s.repo.UpdateBill(ctx, b)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}

	return s.repo.DeleteBill(ctx, id)
}

type ImportResult struct {
	Imported  []*Bill
	New       []CreateParams
	Conflicts []Conflict
}

type Conflict struct {
	Incoming CreateParams
	Existing *Bill
}

type dupKey struct {
	Date  string
	Value string
	Name  string
}

func keyOf(date time.Time, value decimal.Decimal, name string) dupKey {
	return dupKey{
		Date:  date.Format(time.DateOnly),
		Value: value.StringFixed(2),
		Name:  name,
	}
}

// ImportBatch inserts imported bills for one user. When any candidate matches an
// existing bill nothing is written and the split between new and conflicting
// candidates is returned for confirmation.
func (s *Service) ImportBatch(ctx context.Context, userID uuid.UUID, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	for _, p := range params {
		if err := p.validate(); err != nil {
			return nil, err
		}
	}

	itx, err := s.repo.BeginImport(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	lookup := make(map[dupKey]*Bill, len(duplicates))
	for _, d := range duplicates {
		lookup[keyOf(d.CreatedAt, d.Value, d.Name)] = d
	}

	var (
		newParams []CreateParams
		conflicts []Conflict
	)

	for _, p := range params {
		existing, found := lookup[keyOf(p.CreatedAt, p.Value, p.Name)]
		if found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	bills := paramsToBills(newParams)
	if err := itx.CreateBills(ctx, bills); err != nil {
		return nil, fmt.Errorf("create bills: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: bills}, nil
}

// CreateBatch inserts already confirmed candidates without duplicate checks.
func (s *Service) CreateBatch(ctx context.Context, userID uuid.UUID, params []CreateParams) ([]*Bill, error) {
	if len(params) == 0 {
		return nil, nil
	}

	for _, p := range params {
		if err := p.validate(); err != nil {
			return nil, err
		}
	}

	itx, err := s.repo.BeginImport(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	bills := paramsToBills(params)
	if err := itx.CreateBills(ctx, bills); err != nil {
		return nil, fmt.Errorf("create bills: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return bills, nil
}

func paramsToBill(p CreateParams) *Bill {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	return &Bill{
		UserID:       p.UserID,
		Name:         p.Name,
		Value:        p.Value,
		Description:  p.Description,
		Installments: p.Installments,
		CreatedAt:    p.CreatedAt,
	}
}

func paramsToBills(params []CreateParams) []*Bill {
	bills := make([]*Bill, len(params))
	for i, p := range params {
		bills[i] = paramsToBill(p)
	}

	return bills
}
