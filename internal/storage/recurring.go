package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/solari/internal/common"
	"github.com/Veraticus/solari/internal/model"
	"github.com/Veraticus/solari/internal/money"
)

// CreateRecurring persists a recurring transaction template and fills in its ID.
func (q *queries) CreateRecurring(ctx context.Context, recurring *model.RecurringTransaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if recurring == nil {
		return fmt.Errorf("%w: recurring", ErrNilParameter)
	}
	if err := validateID(recurring.WalletID, "walletID"); err != nil {
		return err
	}
	if err := validateID(recurring.CategoryID, "categoryID"); err != nil {
		return err
	}

	query := `
		INSERT INTO recurring_transactions
			(wallet_id, category_id, type, status, frequency, amount, description,
			 start_date, next_due_date, end_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now()
	result, err := q.q.ExecContext(ctx, query,
		recurring.WalletID, recurring.CategoryID, string(recurring.Type),
		string(recurring.Status), string(recurring.Frequency), int64(recurring.Amount),
		recurring.Description, recurring.StartDate, recurring.NextDueDate,
		recurring.EndDate, now)
	if err != nil {
		return fmt.Errorf("failed to create recurring transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get recurring transaction ID: %w", err)
	}

	recurring.ID = id
	recurring.CreatedAt = now

	slog.Debug("created recurring transaction", "wallet_id", recurring.WalletID, "id", id)
	return nil
}

const recurringColumns = `id, wallet_id, category_id, type, status, frequency, amount, description, start_date, next_due_date, end_date, created_at`

func scanRecurring(scan func(dest ...any) error) (*model.RecurringTransaction, error) {
	var r model.RecurringTransaction
	var amount int64
	err := scan(&r.ID, &r.WalletID, &r.CategoryID, &r.Type, &r.Status, &r.Frequency,
		&amount, &r.Description, &r.StartDate, &r.NextDueDate, &r.EndDate, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	r.Amount = money.Amount(amount)
	return &r, nil
}

// GetRecurringByID returns a recurring transaction template by its ID.
func (q *queries) GetRecurringByID(ctx context.Context, id int64) (*model.RecurringTransaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	row := q.q.QueryRowContext(ctx,
		`SELECT `+recurringColumns+` FROM recurring_transactions WHERE id = ?`, id)

	r, err := scanRecurring(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recurring transaction: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring transaction: %w", err)
	}
	return r, nil
}

// UpdateRecurring rewrites a template's mutable fields, including the next
// due date as ProcessDue advances it.
func (q *queries) UpdateRecurring(ctx context.Context, recurring *model.RecurringTransaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if recurring == nil {
		return fmt.Errorf("%w: recurring", ErrNilParameter)
	}
	if err := validateID(recurring.ID, "id"); err != nil {
		return err
	}

	query := `
		UPDATE recurring_transactions
		SET wallet_id = ?, category_id = ?, type = ?, status = ?, frequency = ?,
			amount = ?, description = ?, start_date = ?, next_due_date = ?, end_date = ?
		WHERE id = ?`

	result, err := q.q.ExecContext(ctx, query,
		recurring.WalletID, recurring.CategoryID, string(recurring.Type),
		string(recurring.Status), string(recurring.Frequency), int64(recurring.Amount),
		recurring.Description, recurring.StartDate, recurring.NextDueDate,
		recurring.EndDate, recurring.ID)
	if err != nil {
		return fmt.Errorf("failed to update recurring transaction: %w", err)
	}
	return requireRowAffected(result, "recurring transaction")
}

// DeleteRecurring removes a template. Transactions it already spawned stay.
func (q *queries) DeleteRecurring(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	result, err := q.q.ExecContext(ctx, `DELETE FROM recurring_transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recurring transaction: %w", err)
	}
	return requireRowAffected(result, "recurring transaction")
}

// ListRecurringByStatus returns templates with the given status ordered by
// next due date.
func (q *queries) ListRecurringByStatus(ctx context.Context, status model.RecurringStatus) ([]model.RecurringTransaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := q.q.QueryContext(ctx, `
		SELECT `+recurringColumns+`
		FROM recurring_transactions
		WHERE status = ?
		ORDER BY next_due_date`, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring transactions: %w", err)
	}
	defer rows.Close()

	var templates []model.RecurringTransaction
	for rows.Next() {
		r, err := scanRecurring(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring transaction: %w", err)
		}
		templates = append(templates, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recurring transactions: %w", err)
	}
	return templates, nil
}
