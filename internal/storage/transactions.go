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

const transactionColumns = `id, wallet_id, category_id, type, status, date, amount, description, COALESCE(hash, ''), created_at`

// CreateTransaction persists a new wallet transaction and fills in its ID.
func (q *queries) CreateTransaction(ctx context.Context, txn *model.WalletTransaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	query := `
		INSERT INTO transactions (wallet_id, category_id, type, status, date, amount, description, hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var hash any
	if txn.Hash != "" {
		hash = txn.Hash
	}

	now := time.Now()
	result, err := q.q.ExecContext(ctx, query,
		txn.WalletID, txn.CategoryID, string(txn.Type), string(txn.Status),
		txn.Date, int64(txn.Amount), txn.Description, hash, now)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get transaction ID: %w", err)
	}

	txn.ID = id
	txn.CreatedAt = now

	slog.Debug("created transaction",
		"id", id,
		"wallet_id", txn.WalletID,
		"type", txn.Type,
		"status", txn.Status,
		"amount", txn.Amount.String())
	return nil
}

// GetTransactionByID returns a transaction by its ID.
func (q *queries) GetTransactionByID(ctx context.Context, id int64) (*model.WalletTransaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	row := q.q.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)

	txn, err := scanTransactionRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	return txn, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransactionRow(row rowScanner) (*model.WalletTransaction, error) {
	var t model.WalletTransaction
	var txnType, status string
	var amount int64
	err := row.Scan(&t.ID, &t.WalletID, &t.CategoryID, &txnType, &status,
		&t.Date, &amount, &t.Description, &t.Hash, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.Type = model.TransactionType(txnType)
	t.Status = model.TransactionStatus(status)
	t.Amount = money.Amount(amount)
	return &t, nil
}

// UpdateTransactionStatus flips a transaction's status.
func (q *queries) UpdateTransactionStatus(ctx context.Context, id int64, status model.TransactionStatus) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidEntity, status)
	}

	result, err := q.q.ExecContext(ctx,
		`UPDATE transactions SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}
	return requireRowAffected(result, "transaction")
}

// DeleteTransaction removes a transaction row.
func (q *queries) DeleteTransaction(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	result, err := q.q.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return requireRowAffected(result, "transaction")
}

// ListTransactionsByWallet returns a wallet's transactions, newest first.
func (q *queries) ListTransactionsByWallet(ctx context.Context, walletID int64) ([]model.WalletTransaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(walletID, "walletID"); err != nil {
		return nil, err
	}

	return q.listTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE wallet_id = ? ORDER BY date DESC, id DESC`,
		walletID)
}

// ListTransactionsByMonth returns every transaction dated in the given
// month, newest first.
func (q *queries) ListTransactionsByMonth(ctx context.Context, month time.Month, year int) ([]model.WalletTransaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	return q.listTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE date >= ? AND date < ? ORDER BY date DESC, id DESC`,
		start, end)
}

// ListPendingTransactions returns all pending transactions, oldest first,
// for the review flow.
func (q *queries) ListPendingTransactions(ctx context.Context) ([]model.WalletTransaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	return q.listTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE status = ? ORDER BY date, id`,
		string(model.StatusPending))
}

func (q *queries) listTransactions(ctx context.Context, query string, args ...any) ([]model.WalletTransaction, error) {
	rows, err := q.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.WalletTransaction
	for rows.Next() {
		txn, err := scanTransactionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, *txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return txns, nil
}

// CountTransactionsByWallet counts transactions referencing a wallet.
func (q *queries) CountTransactionsByWallet(ctx context.Context, walletID int64) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateID(walletID, "walletID"); err != nil {
		return 0, err
	}

	var count int64
	err := q.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE wallet_id = ?`, walletID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// TransactionExistsByHash reports whether an imported transaction with the
// same content hash is already stored.
func (q *queries) TransactionExistsByHash(ctx context.Context, hash string) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateString(hash, "hash"); err != nil {
		return false, err
	}

	var count int
	err := q.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE hash = ?`, hash).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check transaction hash: %w", err)
	}
	return count > 0, nil
}
