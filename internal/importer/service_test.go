package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/billy/internal/bill"
	"github.com/MrJamesThe3rd/billy/internal/importer"
)

const contaCSV = `Data mov.;Data-valor;Descrição;Montante
30-01-2026;30-01-2026;COMPRA CONTINENTE PORTO;-42,10
29-01-2026;29-01-2026;SALARIO;1.500,00
28-01-2026;28-01-2026;UBER TRIP;-7,90
`

func TestService_Candidates(t *testing.T) {
	userID := uuid.New()

	ctrl := gomock.NewController(t)
	bills := importer.NewMockBillImporter(ctrl)
	names := importer.NewMockNameSuggester(ctrl)

	names.EXPECT().Suggest(gomock.Any(), userID, "COMPRA CONTINENTE PORTO").Return("Groceries", nil)
	names.EXPECT().Suggest(gomock.Any(), userID, "UBER TRIP").Return("", nil)

	svc := importer.NewService(bills, names)

	got, err := svc.Candidates(context.Background(), userID, importer.BankCGD, strings.NewReader(contaCSV))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Groceries", got[0].Name)
	assert.Equal(t, "COMPRA CONTINENTE PORTO", got[0].Description)
	assert.True(t, decimal.RequireFromString("42.10").Equal(got[0].Value))
	assert.Equal(t, time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC), got[0].CreatedAt)
	require.NotNil(t, got[0].Installments)
	assert.Equal(t, 1, *got[0].Installments)
	assert.Equal(t, userID, got[0].UserID)

	assert.Equal(t, "UBER TRIP", got[1].Name)
	assert.Empty(t, got[1].Description)
}

func TestService_CandidatesLatin1(t *testing.T) {
	latin1, err := charmap.Windows1252.NewEncoder().Bytes([]byte("Data mov.;Descrição;Montante\n30-01-2026;CAFÉ CENTRAL;-10,00\n"))
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	names := importer.NewMockNameSuggester(ctrl)
	names.EXPECT().Suggest(gomock.Any(), gomock.Any(), "CAFÉ CENTRAL").Return("", nil)

	got, err := importer.NewService(importer.NewMockBillImporter(ctrl), names).
		Candidates(context.Background(), uuid.New(), importer.BankCGD, strings.NewReader(string(latin1)))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "CAFÉ CENTRAL", got[0].Name)
}

func TestService_CandidatesSuggestionErrorKeepsRawName(t *testing.T) {
	ctrl := gomock.NewController(t)
	names := importer.NewMockNameSuggester(ctrl)
	names.EXPECT().Suggest(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("db down")).Times(2)

	got, err := importer.NewService(importer.NewMockBillImporter(ctrl), names).
		Candidates(context.Background(), uuid.New(), importer.BankCGD, strings.NewReader(contaCSV))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "COMPRA CONTINENTE PORTO", got[0].Name)
}

func TestService_CandidatesUnknownBank(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := importer.NewService(importer.NewMockBillImporter(ctrl), importer.NewMockNameSuggester(ctrl))

	_, err := svc.Candidates(context.Background(), uuid.New(), importer.Bank("bpi"), strings.NewReader(contaCSV))
	assert.ErrorContains(t, err, "unknown bank")
}

func TestService_Import(t *testing.T) {
	userID := uuid.New()

	ctrl := gomock.NewController(t)
	bills := importer.NewMockBillImporter(ctrl)
	names := importer.NewMockNameSuggester(ctrl)
	names.EXPECT().Suggest(gomock.Any(), gomock.Any(), gomock.Any()).Return("", nil).AnyTimes()

	imported := []*bill.Bill{{ID: uuid.New()}, {ID: uuid.New()}}

	bills.EXPECT().
		ImportBatch(gomock.Any(), userID, gomock.Len(2)).
		Return(&bill.ImportResult{Imported: imported}, nil)

	res, err := importer.NewService(bills, names).Import(context.Background(), userID, importer.BankCGD, strings.NewReader(contaCSV))
	require.NoError(t, err)
	assert.Len(t, res.Imported, 2)
}

func TestService_ImportCandidatesKeepsReviewedInstallments(t *testing.T) {
	userID := uuid.New()

	ctrl := gomock.NewController(t)
	bills := importer.NewMockBillImporter(ctrl)

	params := []bill.CreateParams{{Name: "TV", Value: decimal.NewFromInt(300), Installments: new(3)}}

	bills.EXPECT().
		ImportBatch(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, got []bill.CreateParams) (*bill.ImportResult, error) {
			require.Len(t, got, 1)
			assert.Equal(t, userID, got[0].UserID)
			require.NotNil(t, got[0].Installments)
			assert.Equal(t, 3, *got[0].Installments)

			return &bill.ImportResult{Imported: []*bill.Bill{{ID: uuid.New(), Installments: got[0].Installments}}}, nil
		})

	res, err := importer.NewService(bills, importer.NewMockNameSuggester(ctrl)).
		ImportCandidates(context.Background(), userID, params)
	require.NoError(t, err)
	require.Len(t, res.Imported, 1)
	assert.Equal(t, bill.KindInstallment, res.Imported[0].Kind())
}

func TestService_Confirm(t *testing.T) {
	userID := uuid.New()

	ctrl := gomock.NewController(t)
	bills := importer.NewMockBillImporter(ctrl)

	params := []bill.CreateParams{{Name: "Coffee", Value: decimal.NewFromInt(2)}}

	bills.EXPECT().
		CreateBatch(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, got []bill.CreateParams) ([]*bill.Bill, error) {
			assert.Equal(t, userID, got[0].UserID)
			return []*bill.Bill{{ID: uuid.New(), Name: got[0].Name}}, nil
		})

	created, err := importer.NewService(bills, importer.NewMockNameSuggester(ctrl)).Confirm(context.Background(), userID, params)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "Coffee", created[0].Name)
}
