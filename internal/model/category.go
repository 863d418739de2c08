package model

import "time"

// Category classifies wallet transactions and credit card debts.
type Category struct {
	CreatedAt time.Time
	Name      string
	ID        int64
	Archived  bool
}
