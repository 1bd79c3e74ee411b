// Package plan produces AI-written monthly plans from a user's bills summary
// and savings goals.
package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billy/internal/metrics"
	"github.com/MrJamesThe3rd/billy/internal/planning"
	"github.com/MrJamesThe3rd/billy/internal/summary"
)

var ErrNoRecipient = errors.New("no email address to send the plan to")

type SummaryComputer interface {
	Compute(ctx context.Context, ownerID uuid.UUID) (*summary.Summary, error)
}

type PlanningLister interface {
	List(ctx context.Context, userID uuid.UUID) ([]*planning.Planning, error)
}

type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type Options struct {
	SendEmail bool
	Email     string
}

type Result struct {
	Plan    string
	Summary *summary.Summary
	Emailed bool
}

type Service struct {
	summaries SummaryComputer
	plannings PlanningLister
	ai        Completer
	mailer    Mailer
	clock     summary.Clock
}

func NewService(summaries SummaryComputer, plannings PlanningLister, ai Completer, mailer Mailer, clock summary.Clock) *Service {
	if clock == nil {
		clock = summary.SystemClock{}
	}

	return &Service{
		summaries: summaries,
		plannings: plannings,
		ai:        ai,
		mailer:    mailer,
		clock:     clock,
	}
}

func (s *Service) Generate(ctx context.Context, userID uuid.UUID, opts Options) (*Result, error) {
	res, err := s.generate(ctx, userID, opts)
	if err != nil {
		metrics.PlansGenerated.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}

	metrics.PlansGenerated.WithLabelValues(metrics.ResultOK).Inc()

	return res, nil
}

func (s *Service) generate(ctx context.Context, userID uuid.UUID, opts Options) (*Result, error) {
	if opts.SendEmail && opts.Email == "" {
		return nil, ErrNoRecipient
	}

	sum, err := s.summaries.Compute(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("computing summary: %w", err)
	}

	goals, err := s.plannings.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing plannings: %w", err)
	}

	prompt, err := BuildPrompt(sum, goals, s.clock.Now())
	if err != nil {
		return nil, err
	}

	text, err := s.ai.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generating plan: %w", err)
	}

	res := &Result{Plan: text, Summary: sum}

	if opts.SendEmail {
		if err := s.mailer.Send(ctx, opts.Email, "Your monthly financial plan", text); err != nil {
			// The plan is still returned; only delivery failed.
			slog.ErrorContext(ctx, "failed to email plan", "user_id", userID, "error", err)
			return res, nil
		}

		res.Emailed = true
	}

	return res, nil
}
