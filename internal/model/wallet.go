// Package model defines the entity records persisted by the ledger.
package model

import (
	"time"

	"github.com/Veraticus/solari/internal/money"
)

// Wallet is a named money container with a cached balance. The balance is
// maintained incrementally by the services: every confirmed transaction and
// transfer adjusts it inside the same unit of work.
type Wallet struct {
	CreatedAt time.Time
	Name      string
	Type      string
	ID        int64
	Balance   money.Amount
	Archived  bool
}
