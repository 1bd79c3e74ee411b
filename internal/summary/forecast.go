package summary

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/billy/internal/bill"
)

// ShareScale is the number of decimal places a monthly installment share is
// rounded to (half away from zero), so 100 over 3 installments is 33.33.
const ShareScale = 2

// Totals holds the numeric side of a summary.
type Totals struct {
	ActiveBillsCount int

	// ActiveInstallments are the installment bills with months remaining, in
	// classification order. Assemble names exactly these.
	ActiveInstallments []*bill.Bill

	// Raw category sums. Installment is the full value of active plans.
	Fixed       decimal.Decimal
	MonthlyMisc decimal.Decimal
	Installment decimal.Decimal

	// AmortizedInstallment is one monthly share per active plan.
	AmortizedInstallment decimal.Decimal
	Monthly              decimal.Decimal

	// Forward buckets all start from the fixed total.
	NextMonth        decimal.Decimal
	TwoMonthsLater   decimal.Decimal
	ThreeMonthsLater decimal.Decimal

	// Amount is Monthly plus the three buckets. Active installment shares are
	// counted once per qualifying bucket on top of the monthly total.
	Amount decimal.Decimal
}

// ProgressOf computes the installment progress of each installment bill.
func ProgressOf(installments []*bill.Bill, now time.Time) map[*bill.Bill]Progress {
	progress := make(map[*bill.Bill]Progress, len(installments))
	for _, b := range installments {
		progress[b] = NewProgress(installmentCount(b), b.CreatedAt, now)
	}

	return progress
}

// Aggregate computes category totals and the forward-month projections.
func Aggregate(c Classification, progress map[*bill.Bill]Progress, now time.Time) Totals {
	t := Totals{
		Fixed:                decimal.Zero,
		MonthlyMisc:          decimal.Zero,
		Installment:          decimal.Zero,
		AmortizedInstallment: decimal.Zero,
	}

	for _, b := range c.Fixed {
		t.Fixed = t.Fixed.Add(b.Value)
		t.ActiveBillsCount++
	}

	for _, b := range c.MonthlyMisc {
		if !sameMonth(b.CreatedAt, now) {
			continue
		}

		t.MonthlyMisc = t.MonthlyMisc.Add(b.Value)
		t.ActiveBillsCount++
	}

	t.NextMonth = t.Fixed
	t.TwoMonthsLater = t.Fixed
	t.ThreeMonthsLater = t.Fixed

	for _, b := range c.Installment {
		p, ok := progress[b]
		if !ok {
			p = NewProgress(installmentCount(b), b.CreatedAt, now)
		}

		if p.Settled() {
			continue
		}

		share := b.Value.DivRound(decimal.NewFromInt(int64(p.Total)), ShareScale)

		t.ActiveBillsCount++
		t.ActiveInstallments = append(t.ActiveInstallments, b)
		t.Installment = t.Installment.Add(b.Value)
		t.AmortizedInstallment = t.AmortizedInstallment.Add(share)

		if p.Remaining >= 2 {
			t.NextMonth = t.NextMonth.Add(share)
		}

		if p.Remaining >= 3 {
			t.TwoMonthsLater = t.TwoMonthsLater.Add(share)
		}

		if p.Remaining >= 4 {
			t.ThreeMonthsLater = t.ThreeMonthsLater.Add(share)
		}
	}

	t.Monthly = t.Fixed.Add(t.MonthlyMisc).Add(t.AmortizedInstallment)
	t.Amount = t.Monthly.Add(t.NextMonth).Add(t.TwoMonthsLater).Add(t.ThreeMonthsLater)

	return t
}

func installmentCount(b *bill.Bill) int {
	if b.Installments == nil {
		return 0
	}

	return *b.Installments
}
