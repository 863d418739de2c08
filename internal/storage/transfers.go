package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/solari/internal/model"
	"github.com/Veraticus/solari/internal/money"
)

// CreateTransfer persists a new transfer record and fills in its ID. The
// paired balance updates happen in the same unit of work at the service
// layer.
func (q *queries) CreateTransfer(ctx context.Context, transfer *model.Transfer) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if transfer == nil {
		return fmt.Errorf("%w: transfer", ErrNilParameter)
	}
	if err := validateID(transfer.SenderWalletID, "senderWalletID"); err != nil {
		return err
	}
	if err := validateID(transfer.ReceiverWalletID, "receiverWalletID"); err != nil {
		return err
	}

	query := `
		INSERT INTO transfers (sender_wallet_id, receiver_wallet_id, date, amount, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	now := time.Now()
	result, err := q.q.ExecContext(ctx, query,
		transfer.SenderWalletID, transfer.ReceiverWalletID, transfer.Date,
		int64(transfer.Amount), transfer.Description, now)
	if err != nil {
		return fmt.Errorf("failed to create transfer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get transfer ID: %w", err)
	}

	transfer.ID = id
	transfer.CreatedAt = now

	slog.Debug("created transfer",
		"id", id,
		"sender", transfer.SenderWalletID,
		"receiver", transfer.ReceiverWalletID,
		"amount", transfer.Amount.String())
	return nil
}

// ListTransfersByWallet returns transfers where the wallet is sender or
// receiver, newest first.
func (q *queries) ListTransfersByWallet(ctx context.Context, walletID int64) ([]model.Transfer, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(walletID, "walletID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, sender_wallet_id, receiver_wallet_id, date, amount, description, created_at
		FROM transfers
		WHERE sender_wallet_id = ? OR receiver_wallet_id = ?
		ORDER BY date DESC, id DESC`

	rows, err := q.q.QueryContext(ctx, query, walletID, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfers: %w", err)
	}
	defer rows.Close()

	var transfers []model.Transfer
	for rows.Next() {
		var t model.Transfer
		var amount int64
		if err := rows.Scan(&t.ID, &t.SenderWalletID, &t.ReceiverWalletID,
			&t.Date, &amount, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		t.Amount = money.Amount(amount)
		transfers = append(transfers, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transfers: %w", err)
	}
	return transfers, nil
}

// CountTransfersByWallet counts transfers referencing a wallet on either
// side.
func (q *queries) CountTransfersByWallet(ctx context.Context, walletID int64) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateID(walletID, "walletID"); err != nil {
		return 0, err
	}

	var count int64
	err := q.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transfers WHERE sender_wallet_id = ? OR receiver_wallet_id = ?`,
		walletID, walletID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transfers: %w", err)
	}
	return count, nil
}
