package summary

import "github.com/MrJamesThe3rd/billy/internal/bill"

// Classification partitions live bills by kind. Each group keeps the order of
// the input snapshot.
type Classification struct {
	Fixed       []*bill.Bill
	MonthlyMisc []*bill.Bill
	Installment []*bill.Bill
}

// Classify sorts bills into fixed (no installment count), monthly misc (count
// of one) and installment (count of two or more) groups.
func Classify(bills []*bill.Bill) Classification {
	var c Classification

	for _, b := range bills {
		switch b.Kind() {
		case bill.KindFixed:
			c.Fixed = append(c.Fixed, b)
		case bill.KindMonthlyMisc:
			c.MonthlyMisc = append(c.MonthlyMisc, b)
		case bill.KindInstallment:
			c.Installment = append(c.Installment, b)
		}
	}

	return c
}

func live(bills []*bill.Bill) []*bill.Bill {
	out := make([]*bill.Bill, 0, len(bills))
	for _, b := range bills {
		if b == nil || b.Deleted() {
			continue
		}

		out = append(out, b)
	}

	return out
}
