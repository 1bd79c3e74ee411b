package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billy/internal/bill"
	"github.com/MrJamesThe3rd/billy/internal/importer/cgd"
	"github.com/MrJamesThe3rd/billy/internal/metrics"
)

var ErrUnknownBank = errors.New("unknown bank")

//go:generate mockgen -source=service.go -destination=deps_mock.go -package=importer
type BillImporter interface {
	ImportBatch(ctx context.Context, userID uuid.UUID, params []bill.CreateParams) (*bill.ImportResult, error)
	CreateBatch(ctx context.Context, userID uuid.UUID, params []bill.CreateParams) ([]*bill.Bill, error)
}

type NameSuggester interface {
	Suggest(ctx context.Context, userID uuid.UUID, rawDescription string) (string, error)
}

type Service struct {
	bills   BillImporter
	names   NameSuggester
	parsers map[Bank]Parser
}

func NewService(bills BillImporter, names NameSuggester) *Service {
	return &Service{
		bills: bills,
		names: names,
		parsers: map[Bank]Parser{
			BankCGD: cgd.NewParser(),
		},
	}
}

// Candidates parses an export and maps every debit to a monthly misc bill.
// Credits are not bills and are dropped.
func (s *Service) Candidates(ctx context.Context, userID uuid.UUID, bank Bank, r io.Reader) ([]bill.CreateParams, error) {
	parser, ok := s.parsers[bank]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBank, bank)
	}

	utf8r, err := ToUTF8(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	movements, err := parser.Parse(utf8r)
	if err != nil {
		return nil, err
	}

	var params []bill.CreateParams

	for _, m := range movements {
		if !m.Debit {
			continue
		}

		params = append(params, s.candidate(ctx, userID, m))
	}

	return params, nil
}

func (s *Service) candidate(ctx context.Context, userID uuid.UUID, m cgd.Movement) bill.CreateParams {
	one := 1
	p := bill.CreateParams{
		UserID:       userID,
		Name:         m.Description,
		Value:        m.Amount,
		Installments: &one,
		CreatedAt:    m.Date,
	}

	name, err := s.names.Suggest(ctx, userID, m.Description)
	if err != nil {
		slog.WarnContext(ctx, "name suggestion failed", "description", m.Description, "error", err)
		return p
	}

	if name != "" && name != m.Description {
		p.Name = name
		p.Description = m.Description
	}

	return p
}

// Import stores the candidates of an export, or returns the conflicts with
// already stored bills without writing anything.
func (s *Service) Import(ctx context.Context, userID uuid.UUID, bank Bank, r io.Reader) (*bill.ImportResult, error) {
	params, err := s.Candidates(ctx, userID, bank, r)
	if err != nil {
		return nil, err
	}

	return s.ImportCandidates(ctx, userID, params)
}

// ImportCandidates is Import for candidates the caller already reviewed, for
// example after turning some into installment plans.
func (s *Service) ImportCandidates(ctx context.Context, userID uuid.UUID, params []bill.CreateParams) (*bill.ImportResult, error) {
	for i := range params {
		params[i].UserID = userID
	}

	res, err := s.bills.ImportBatch(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	metrics.BillsImported.Add(float64(len(res.Imported)))

	return res, nil
}

// Confirm stores candidates the user accepted after a conflict.
func (s *Service) Confirm(ctx context.Context, userID uuid.UUID, params []bill.CreateParams) ([]*bill.Bill, error) {
	for i := range params {
		params[i].UserID = userID
	}

	bills, err := s.bills.CreateBatch(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	metrics.BillsImported.Add(float64(len(bills)))

	return bills, nil
}
