// Package summary classifies a user's bills and projects the cash-flow
// obligations of active installment plans over the coming months.
//
// Everything here is a pure function of a bill snapshot and an instant;
// Service adds the single retrieval call and the clock.
package summary

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/billy/internal/bill"
)

// Summary is the bills overview for one user at one instant.
type Summary struct {
	ActiveBillsCount int
	TotalBillAmount  decimal.Decimal
	TotalValue       decimal.Decimal

	TotalFixedBillsValue       decimal.Decimal
	TotalMonthlyMiscBillsValue decimal.Decimal
	TotalInstallmentValue      decimal.Decimal

	PartialValueNextMonth    decimal.Decimal
	PartialValue2MonthsLater decimal.Decimal
	PartialValue3MonthsLater decimal.Decimal

	FixedBillsNames       string
	MonthlyMiscBillsNames string
	InstallmentBillsNames string
}

// Empty returns the all-zero summary.
func Empty() Summary {
	return Assemble(Classification{}, Aggregate(Classification{}, nil, time.Time{}))
}

// Assemble builds name lists and packs the totals. Misc names include bills
// from every month while the misc totals only count the current one.
// Installment names come from t.ActiveInstallments, so a plan is named only
// when Aggregate counted it.
func Assemble(c Classification, t Totals) Summary {
	return Summary{
		ActiveBillsCount: t.ActiveBillsCount,
		TotalBillAmount:  t.Amount,
		TotalValue:       t.Monthly,

		TotalFixedBillsValue:       t.Fixed,
		TotalMonthlyMiscBillsValue: t.MonthlyMisc,
		TotalInstallmentValue:      t.Installment,

		PartialValueNextMonth:    t.NextMonth,
		PartialValue2MonthsLater: t.TwoMonthsLater,
		PartialValue3MonthsLater: t.ThreeMonthsLater,

		FixedBillsNames:       joinLabels(c.Fixed),
		MonthlyMiscBillsNames: joinLabels(c.MonthlyMisc),
		InstallmentBillsNames: joinLabels(t.ActiveInstallments),
	}
}

// Compute runs the whole pipeline over a snapshot. Soft-deleted bills are
// dropped before classification.
func Compute(bills []*bill.Bill, now time.Time) Summary {
	c := Classify(live(bills))
	progress := ProgressOf(c.Installment, now)

	return Assemble(c, Aggregate(c, progress, now))
}

func joinLabels(bills []*bill.Bill) string {
	labels := make([]string, len(bills))
	for i, b := range bills {
		labels[i] = b.Label()
	}

	return strings.Join(labels, ", ")
}
