// Package matching learns which bill name a user prefers for a raw bank
// description.
package matching

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrEmptyMapping = errors.New("raw pattern and preferred name are required")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	FindMatch(ctx context.Context, userID uuid.UUID, rawDescription string) (string, error)
	CreateMapping(ctx context.Context, userID uuid.UUID, rawPattern, preferredName string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the preferred name for rawDescription, or "" when the user
// has taught nothing that matches.
func (s *Service) Suggest(ctx context.Context, userID uuid.UUID, rawDescription string) (string, error) {
	raw := strings.TrimSpace(rawDescription)
	if raw == "" {
		return "", nil
	}

	return s.repo.FindMatch(ctx, userID, raw)
}

func (s *Service) Learn(ctx context.Context, userID uuid.UUID, rawPattern, preferredName string) error {
	rawPattern = strings.TrimSpace(rawPattern)
	preferredName = strings.TrimSpace(preferredName)

	if rawPattern == "" || preferredName == "" {
		return ErrEmptyMapping
	}

	return s.repo.CreateMapping(ctx, userID, rawPattern, preferredName)
}
