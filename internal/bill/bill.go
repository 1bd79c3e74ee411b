package bill

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("bill not found")

// Kind is the category a bill falls into, derived from its installment count.
type Kind string

const (
	KindFixed       Kind = "fixed"
	KindMonthlyMisc Kind = "misc"
	KindInstallment Kind = "installment"
)

// Bill is a recurring, one-off or installment obligation owned by a user.
type Bill struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Value       decimal.Decimal
	Description string
	// Installments is nil for fixed bills, 1 for one-off monthly expenses
	// and the plan length for installment bills.
	Installments *int
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
}

func (b *Bill) Kind() Kind {
	switch {
	case b.Installments == nil:
		return KindFixed
	case *b.Installments <= 1:
		return KindMonthlyMisc
	default:
		return KindInstallment
	}
}

// Label returns "name" or "name - description" when a description exists.
func (b *Bill) Label() string {
	if b.Description == "" {
		return b.Name
	}

	return b.Name + " - " + b.Description
}

func (b *Bill) Deleted() bool {
	return b.DeletedAt != nil
}
