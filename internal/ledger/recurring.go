package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/solari/internal/common"
	"github.com/Veraticus/solari/internal/model"
	"github.com/Veraticus/solari/internal/money"
	"github.com/Veraticus/solari/internal/service"
)

// RecurringService manages recurring transaction templates and materializes
// the transactions they are due to spawn.
type RecurringService struct {
	store service.Storage
}

// NewRecurringService creates a recurring service backed by the given
// storage.
func NewRecurringService(store service.Storage) *RecurringService {
	return &RecurringService{store: store}
}

// CreateRecurring registers a template. Its first due date is the start
// date; EndDate nil means the template never expires.
func (s *RecurringService) CreateRecurring(ctx context.Context, walletID, categoryID int64, txnType model.TransactionType, amount money.Amount, description string, startDate time.Time, endDate *time.Time, frequency model.Frequency) (*model.RecurringTransaction, error) {
	if !txnType.Valid() {
		return nil, fmt.Errorf("transaction type %q: %w", txnType, common.ErrInvalidInput)
	}
	if !frequency.Valid() {
		return nil, fmt.Errorf("frequency %q: %w", frequency, common.ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("recurring amount must be positive: %w", common.ErrInvalidInput)
	}
	if endDate != nil && endDate.Before(startDate) {
		return nil, fmt.Errorf("end date before start date: %w", common.ErrInvalidInput)
	}

	recurring := &model.RecurringTransaction{
		WalletID:    walletID,
		CategoryID:  categoryID,
		Type:        txnType,
		Status:      model.RecurringActive,
		Frequency:   frequency,
		Amount:      amount,
		Description: description,
		StartDate:   startDate,
		NextDueDate: startDate,
		EndDate:     endDate,
	}

	err := runInTx(ctx, s.store, func(tx service.Tx) error {
		if _, err := tx.GetWalletByID(ctx, walletID); err != nil {
			return fmt.Errorf("wallet: %w", err)
		}
		if _, err := tx.GetCategoryByID(ctx, categoryID); err != nil {
			return fmt.Errorf("category: %w", err)
		}
		return tx.CreateRecurring(ctx, recurring)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("recurring transaction created",
		"wallet_id", walletID,
		"frequency", frequency,
		"amount", amount.String())
	return recurring, nil
}

// StopRecurring deactivates a template without deleting its history.
func (s *RecurringService) StopRecurring(ctx context.Context, id int64) error {
	return runInTx(ctx, s.store, func(tx service.Tx) error {
		recurring, err := tx.GetRecurringByID(ctx, id)
		if err != nil {
			return err
		}
		recurring.Status = model.RecurringInactive
		return tx.UpdateRecurring(ctx, recurring)
	})
}

// DeleteRecurring removes a template. Transactions it already spawned are
// untouched.
func (s *RecurringService) DeleteRecurring(ctx context.Context, id int64) error {
	return runInTx(ctx, s.store, func(tx service.Tx) error {
		return tx.DeleteRecurring(ctx, id)
	})
}

// ProcessDue spawns a pending transaction for every elapsed due date of
// every active template, advances their schedules, and deactivates
// templates past their end date. Spawned transactions are pending so
// balances stay untouched until the user confirms them. It returns how
// many transactions were spawned.
func (s *RecurringService) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	spawned := 0

	err := runInTx(ctx, s.store, func(tx service.Tx) error {
		templates, err := tx.ListRecurringByStatus(ctx, model.RecurringActive)
		if err != nil {
			return err
		}

		for i := range templates {
			template := &templates[i]
			changed := false

			for !template.NextDueDate.After(now) {
				if template.EndDate != nil && template.NextDueDate.After(*template.EndDate) {
					break
				}

				txn := &model.WalletTransaction{
					WalletID:    template.WalletID,
					CategoryID:  template.CategoryID,
					Type:        template.Type,
					Status:      model.StatusPending,
					Date:        template.NextDueDate,
					Amount:      template.Amount,
					Description: template.Description,
				}
				if err := tx.CreateTransaction(ctx, txn); err != nil {
					return err
				}
				spawned++

				template.NextDueDate = template.Frequency.Next(template.NextDueDate)
				changed = true
			}

			if template.EndDate != nil && template.NextDueDate.After(*template.EndDate) {
				template.Status = model.RecurringInactive
				changed = true
			}
			if changed {
				if err := tx.UpdateRecurring(ctx, template); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if spawned > 0 {
		slog.Info("recurring transactions processed", "spawned", spawned)
	}
	return spawned, nil
}

// GetRecurring returns a template by ID.
func (s *RecurringService) GetRecurring(ctx context.Context, id int64) (*model.RecurringTransaction, error) {
	return s.store.GetRecurringByID(ctx, id)
}

// ListRecurring returns templates with the given status.
func (s *RecurringService) ListRecurring(ctx context.Context, status model.RecurringStatus) ([]model.RecurringTransaction, error) {
	return s.store.ListRecurringByStatus(ctx, status)
}
