package summary

import "time"

// Progress tracks how far an installment plan has advanced at a given instant.
type Progress struct {
	Total     int
	Paid      int
	Remaining int
}

// Settled reports whether every installment has elapsed.
func (p Progress) Settled() bool {
	return p.Remaining == 0
}

// MonthsBetween counts calendar month boundaries crossed from -> to. The day
// of month is ignored, so the last day of March and the first of April are
// one month apart. from is read in to's location.
func MonthsBetween(from, to time.Time) int {
	from = from.In(to.Location())

	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// PaidInstallments is the number of elapsed months since createdAt, clamped
// to [0, total]. Future-dated plans have paid nothing.
func PaidInstallments(total int, createdAt, now time.Time) int {
	if total <= 0 {
		return 0
	}

	return min(max(MonthsBetween(createdAt, now), 0), total)
}

func NewProgress(total int, createdAt, now time.Time) Progress {
	paid := PaidInstallments(total, createdAt, now)

	return Progress{
		Total:     max(total, 0),
		Paid:      paid,
		Remaining: max(total, 0) - paid,
	}
}

// sameMonth reports whether t falls in now's calendar month, read in now's location.
func sameMonth(t, now time.Time) bool {
	t = t.In(now.Location())

	return t.Year() == now.Year() && t.Month() == now.Month()
}
