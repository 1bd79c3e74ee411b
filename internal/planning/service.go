package planning

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=planning
type Repository interface {
	CreatePlanning(ctx context.Context, p *Planning) error
	GetPlanning(ctx context.Context, id uuid.UUID) (*Planning, error)
	UpdatePlanning(ctx context.Context, p *Planning) error
	ListPlannings(ctx context.Context, userID uuid.UUID) ([]*Planning, error)
	DeletePlanning(ctx context.Context, id uuid.UUID) error
}

type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return "invalid planning: " + e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

var validate = validator.New()

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID      uuid.UUID       `validate:"required"`
	Name        string          `validate:"required,max=200"`
	Description string          `validate:"max=500"`
	GoalValue   decimal.Decimal `validate:"-"`
	SavedValue  decimal.Decimal `validate:"-"`
	TargetDate  time.Time       `validate:"required"`
}

func (p CreateParams) validate() error {
	if err := validate.Struct(p); err != nil {
		return &ValidationError{Err: err}
	}

	if !p.GoalValue.IsPositive() {
		return &ValidationError{Err: errors.New("goal value must be positive")}
	}

	if p.SavedValue.IsNegative() {
		return &ValidationError{Err: errors.New("saved value must not be negative")}
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Planning, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	p := &Planning{
		UserID:      params.UserID,
		Name:        params.Name,
		Description: params.Description,
		GoalValue:   params.GoalValue,
		SavedValue:  params.SavedValue,
		TargetDate:  params.TargetDate,
	}

	if err := s.repo.CreatePlanning(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Get returns the planning only when it belongs to userID.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Planning, error) {
	p, err := s.repo.GetPlanning(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.UserID != userID {
		return nil, ErrNotFound
	}

	return p, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Planning, error) {
	return s.repo.ListPlannings(ctx, userID)
}

func (s *Service) Update(ctx context.Context, p *Planning) error {
	params := CreateParams{
		UserID:      p.UserID,
		Name:        p.Name,
		Description: p.Description,
		GoalValue:   p.GoalValue,
		SavedValue:  p.SavedValue,
		TargetDate:  p.TargetDate,
	}
	if err := params.validate(); err != nil {
		return err
	}

	return s.repo.UpdatePlanning(ctx, p)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}

	return s.repo.DeletePlanning(ctx, id)
}
