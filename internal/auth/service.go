package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/billy/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=auth
type Repository interface {
	CreateUser(ctx context.Context, u *user.User) error
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return "invalid registration: " + e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

var validate = validator.New()

type RegisterParams struct {
	Email       string `validate:"required,email"`
	DisplayName string `validate:"max=100"`
	Password    string `validate:"-"`
}

// Session is an authenticated user and the token that proves it.
type Session struct {
	User  *user.User
	Token string
}

type Service struct {
	users  Repository
	tokens *JWTManager
}

func NewService(users Repository, tokens *JWTManager) *Service {
	return &Service{users: users, tokens: tokens}
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (*Session, error) {
	if err := validate.Struct(params); err != nil {
		return nil, &ValidationError{Err: err}
	}

	if len(params.Password) < 8 {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &user.User{
		Email:        params.Email,
		DisplayName:  params.DisplayName,
		PasswordHash: string(hash),
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return s.session(u)
}

// Login never reveals whether the email or the password was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, user.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}

	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.session(u)
}

func (s *Service) Me(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// Lookup resolves a user by email without a password, for local tools.
func (s *Service) Lookup(ctx context.Context, email string) (*user.User, error) {
	return s.users.GetUserByEmail(ctx, email)
}

func (s *Service) session(u *user.User) (*Session, error) {
	token, err := s.tokens.Generate(u)
	if err != nil {
		return nil, err
	}

	return &Session{User: u, Token: token}, nil
}
