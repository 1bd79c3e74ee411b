package summary

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billy/internal/bill"
	"github.com/MrJamesThe3rd/billy/internal/metrics"
)

//go:generate mockgen -source=service.go -destination=lister_mock.go -package=summary
type Lister interface {
	List(ctx context.Context, filter bill.ListFilter) ([]*bill.Bill, error)
}

type Service struct {
	bills Lister
	clock Clock
}

func NewService(bills Lister, clock Clock) *Service {
	if clock == nil {
		clock = SystemClock{}
	}

	return &Service{bills: bills, clock: clock}
}

// Compute fetches the owner's bills once and summarizes them as of the
// service clock. An owner without bills gets the zero summary; any other
// retrieval error is returned as is.
func (s *Service) Compute(ctx context.Context, ownerID uuid.UUID) (*Summary, error) {
	bills, err := s.bills.List(ctx, bill.ListFilter{UserID: ownerID})

	switch {
	case errors.Is(err, bill.ErrNotFound):
		bills = nil
	case err != nil:
		metrics.SummariesComputed.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}

	sum := Compute(bills, s.clock.Now())
	metrics.SummariesComputed.WithLabelValues(metrics.ResultOK).Inc()

	return &sum, nil
}
