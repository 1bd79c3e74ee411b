package planning

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/billy/internal/summary"
)

var ErrNotFound = errors.New("planning not found")

// Planning is a savings goal the user wants to reach by TargetDate.
type Planning struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description string
	GoalValue   decimal.Decimal
	SavedValue  decimal.Decimal
	TargetDate  time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}

// Remaining is what is still missing to reach the goal, never negative.
func (p *Planning) Remaining() decimal.Decimal {
	left := p.GoalValue.Sub(p.SavedValue)
	if left.IsNegative() {
		return decimal.Zero
	}

	return left
}

func (p *Planning) Reached() bool {
	return !p.SavedValue.LessThan(p.GoalValue)
}

// MonthsLeft counts the calendar months between now and the target date, read
// in now's location, at least one so an overdue goal asks for the whole
// remainder this month.
func (p *Planning) MonthsLeft(now time.Time) int {
	return max(summary.MonthsBetween(now, p.TargetDate.In(now.Location())), 1)
}

// MonthlyDeposit is the amount to save each month to reach the goal on time,
// rounded up to the cent.
func (p *Planning) MonthlyDeposit(now time.Time) decimal.Decimal {
	if p.Reached() {
		return decimal.Zero
	}

	return p.Remaining().Div(decimal.NewFromInt(int64(p.MonthsLeft(now)))).RoundCeil(2)
}
