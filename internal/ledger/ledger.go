// Package ledger implements the domain services of the personal-finance
// ledger. Every mutating method runs as a single storage transaction so a
// failure partway through leaves balances and history untouched.
package ledger

import (
	"context"
	"fmt"

	"github.com/Veraticus/solari/internal/model"
	"github.com/Veraticus/solari/internal/money"
	"github.com/Veraticus/solari/internal/service"
)

// runInTx executes fn inside a storage transaction, committing on success
// and rolling back on any error.
func runInTx(ctx context.Context, store service.Storage, fn func(tx service.Tx) error) error {
	tx, err := store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// balanceDelta returns the signed effect a transaction has on its wallet.
func balanceDelta(txnType model.TransactionType, amount money.Amount) money.Amount {
	if txnType == model.TypeIncome {
		return amount
	}
	return -amount
}
