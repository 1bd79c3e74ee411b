package view

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/billy/internal/bill"
)

var importNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func debit(name, value string, createdAt time.Time) candidate {
	return candidate{params: bill.CreateParams{
		Name:         name,
		Value:        decimal.RequireFromString(value),
		Installments: new(1),
		CreatedAt:    createdAt,
	}}
}

func TestCandidateRow(t *testing.T) {
	c := debit("Groceries", "42.1", time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	c.params.Description = "COMPRA CONTINENTE PORTO"

	assert.Equal(t, []string{
		"[x]", "2024-06-03", "current", "misc", "42.10", "1", "42.10", "Groceries (COMPRA CONTINENTE PORTO)",
	}, []string(candidateRow(c, importNow)))

	old := debit("Uber", "7.9", time.Date(2024, 5, 28, 0, 0, 0, 0, time.UTC))
	old.skip = true

	row := candidateRow(old, importNow)
	assert.Equal(t, "[ ]", row[0])
	assert.Equal(t, "May 2024", row[2])
	assert.Equal(t, "0.00", row[6], "last month's one-off does not count now")
}

func TestCandidateRow_ConvertedToPlan(t *testing.T) {
	c := debit("TV", "300", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	c, err := applyEdit(c, editInstallments, "3")
	require.NoError(t, err)

	row := candidateRow(c, importNow)
	assert.Equal(t, "installment", row[3])
	assert.Equal(t, "3", row[5])
	assert.Equal(t, "100.00", row[6])
}

func TestStepInstallments(t *testing.T) {
	assert.Equal(t, 1, *stepInstallments(nil, 1))
	assert.Equal(t, 2, *stepInstallments(new(1), 1))
	assert.Equal(t, 1, *stepInstallments(new(1), -1))
	assert.Equal(t, 5, *stepInstallments(new(6), -1))

	assert.Nil(t, toggleFixed(new(4)))
	assert.Equal(t, 1, *toggleFixed(nil))
}

func TestApplyEdit(t *testing.T) {
	c := debit("UBER TRIP", "7.90", importNow)

	renamed, err := applyEdit(c, editName, "  Uber ")
	require.NoError(t, err)
	assert.Equal(t, "Uber", renamed.params.Name)

	_, err = applyEdit(c, editName, " ")
	assert.Error(t, err)

	fixed, err := applyEdit(c, editInstallments, "")
	require.NoError(t, err)
	assert.Equal(t, bill.KindFixed, fixed.params.Kind())

	_, err = applyEdit(c, editInstallments, "zero")
	assert.Error(t, err)
	assert.Equal(t, bill.KindMonthlyMisc, c.params.Kind())
}

func TestReviewTotals(t *testing.T) {
	tv := debit("TV", "300", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	tv.params.Installments = new(3)

	coffee := debit("Coffee", "2.50", importNow)
	skipped := debit("Rent", "800", importNow)
	skipped.skip = true

	cs := []candidate{tv, coffee, skipped}

	s := reviewTotals(cs, importNow)
	assert.True(t, decimal.RequireFromString("102.50").Equal(s.TotalValue), s.TotalValue.String())
	assert.Equal(t, "TV", s.InstallmentBillsNames)

	assert.Len(t, includedParams(cs), 2)
	assert.Equal(t, "1 misc, 1 installment, 0 fixed", kindBreakdown(cs))
}

func TestConflictRow(t *testing.T) {
	row := conflictRow(bill.Conflict{
		Incoming: bill.CreateParams{
			Name:         "Groceries",
			Description:  "COMPRA CONTINENTE",
			Value:        decimal.RequireFromString("42.10"),
			Installments: new(1),
			CreatedAt:    importNow,
		},
		Existing: &bill.Bill{ID: uuid.New(), Name: "Groceries", Installments: new(1)},
	}, true)

	assert.Equal(t, []string{
		"[x]", "2024-06-15", "misc", "42.10", "Groceries (learned)", "Groceries [misc]",
	}, []string(row))
}

func TestImportedStatus(t *testing.T) {
	bills := []*bill.Bill{
		{Name: "TV", Value: decimal.NewFromInt(300), Installments: new(3), CreatedAt: importNow},
		{Name: "Coffee", Value: decimal.RequireFromString("2.5"), Installments: new(1), CreatedAt: importNow},
	}

	assert.Equal(t, "Imported 2 bills (1 installment plans). This month +102.50.", importedStatus(bills, importNow))
}

func TestMonthTag_ReadsInNowLocation(t *testing.T) {
	lisbon := time.FixedZone("WEST", 60*60)
	now := time.Date(2024, 6, 1, 0, 30, 0, 0, lisbon)

	// 31 May 23:45 UTC is already 1 June in now's zone.
	assert.Equal(t, "current", monthTag(time.Date(2024, 5, 31, 23, 45, 0, 0, time.UTC), now))
}
