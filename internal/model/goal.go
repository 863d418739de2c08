package model

import (
	"time"

	"github.com/Veraticus/solari/internal/money"
)

// Goal is a savings target backed by a dedicated wallet. It references the
// wallet by ID rather than specializing it; the goal row and the wallet row
// are created together and share the wallet name namespace.
type Goal struct {
	TargetDate    time.Time
	CompletedAt   *time.Time
	Motivation    string
	WalletID      int64
	TargetBalance money.Amount
	Archived      bool
}

// Completed reports whether the goal has been marked achieved.
func (g *Goal) Completed() bool {
	return g.CompletedAt != nil
}

// Progress returns how far the wallet balance is toward the target, in the
// range [0, 1].
func (g *Goal) Progress(balance money.Amount) float64 {
	if g.TargetBalance <= 0 {
		return 0
	}
	p := float64(balance) / float64(g.TargetBalance)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
