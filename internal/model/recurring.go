package model

import (
	"time"

	"github.com/Veraticus/solari/internal/money"
)

// Frequency is how often a recurring transaction fires.
type Frequency string

const (
	// FrequencyDaily fires every day.
	FrequencyDaily Frequency = "daily"
	// FrequencyWeekly fires every seven days.
	FrequencyWeekly Frequency = "weekly"
	// FrequencyMonthly fires on the same day each month.
	FrequencyMonthly Frequency = "monthly"
	// FrequencyYearly fires on the same date each year.
	FrequencyYearly Frequency = "yearly"
)

// Valid reports whether the frequency is one of the known values.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Next returns the due date that follows the given one.
func (f Frequency) Next(after time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return after.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return after.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return after.AddDate(0, 1, 0)
	case FrequencyYearly:
		return after.AddDate(1, 0, 0)
	}
	return after
}

// RecurringStatus tracks whether a template still spawns transactions.
type RecurringStatus string

const (
	// RecurringActive templates are considered by ProcessDue.
	RecurringActive RecurringStatus = "active"
	// RecurringInactive templates are kept for history only.
	RecurringInactive RecurringStatus = "inactive"
)

// RecurringTransaction is a template that spawns pending wallet
// transactions on a schedule. EndDate is nil for open-ended templates.
type RecurringTransaction struct {
	StartDate   time.Time
	NextDueDate time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	Description string
	Type        TransactionType
	Status      RecurringStatus
	Frequency   Frequency
	ID          int64
	WalletID    int64
	CategoryID  int64
	Amount      money.Amount
}
