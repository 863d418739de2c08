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

// CreateWallet persists a new wallet and fills in its ID.
func (q *queries) CreateWallet(ctx context.Context, wallet *model.Wallet) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateWallet(wallet); err != nil {
		return err
	}

	query := `
		INSERT INTO wallets (name, type, balance, archived, created_at)
		VALUES (?, ?, ?, ?, ?)`

	now := time.Now()
	result, err := q.q.ExecContext(ctx, query,
		wallet.Name, wallet.Type, int64(wallet.Balance), wallet.Archived, now)
	if err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get wallet ID: %w", err)
	}

	wallet.ID = id
	wallet.CreatedAt = now

	slog.Debug("created wallet", "name", wallet.Name, "id", id)
	return nil
}

// GetWalletByID returns a wallet by its ID.
func (q *queries) GetWalletByID(ctx context.Context, id int64) (*model.Wallet, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, type, balance, archived, created_at
		FROM wallets
		WHERE id = ?`

	return q.scanWallet(q.q.QueryRowContext(ctx, query, id))
}

// GetWalletByName returns a wallet by its unique name.
func (q *queries) GetWalletByName(ctx context.Context, name string) (*model.Wallet, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, type, balance, archived, created_at
		FROM wallets
		WHERE name = ?`

	return q.scanWallet(q.q.QueryRowContext(ctx, query, name))
}

func (q *queries) scanWallet(row *sql.Row) (*model.Wallet, error) {
	var w model.Wallet
	var balance int64
	err := row.Scan(&w.ID, &w.Name, &w.Type, &balance, &w.Archived, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("wallet: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet: %w", err)
	}
	w.Balance = money.Amount(balance)
	return &w, nil
}

// WalletExistsByName reports whether a wallet with the given name exists.
func (q *queries) WalletExistsByName(ctx context.Context, name string) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateString(name, "name"); err != nil {
		return false, err
	}

	var count int
	err := q.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM wallets WHERE name = ?`, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check wallet name: %w", err)
	}
	return count > 0, nil
}

// UpdateWallet rewrites a wallet's mutable fields.
func (q *queries) UpdateWallet(ctx context.Context, wallet *model.Wallet) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateWallet(wallet); err != nil {
		return err
	}

	query := `
		UPDATE wallets
		SET name = ?, type = ?, balance = ?, archived = ?
		WHERE id = ?`

	result, err := q.q.ExecContext(ctx, query,
		wallet.Name, wallet.Type, int64(wallet.Balance), wallet.Archived, wallet.ID)
	if err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}
	return requireRowAffected(result, "wallet")
}

// UpdateWalletBalance overrides the cached balance of a wallet.
func (q *queries) UpdateWalletBalance(ctx context.Context, id int64, balance money.Amount) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	result, err := q.q.ExecContext(ctx,
		`UPDATE wallets SET balance = ? WHERE id = ?`, int64(balance), id)
	if err != nil {
		return fmt.Errorf("failed to update wallet balance: %w", err)
	}
	return requireRowAffected(result, "wallet")
}

// DeleteWallet removes a wallet row. The services ensure no transactions or
// transfers still reference it.
func (q *queries) DeleteWallet(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	result, err := q.q.ExecContext(ctx, `DELETE FROM wallets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete wallet: %w", err)
	}
	return requireRowAffected(result, "wallet")
}

// ListWallets returns wallets ordered by name, optionally including
// archived ones.
func (q *queries) ListWallets(ctx context.Context, includeArchived bool) ([]model.Wallet, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, type, balance, archived, created_at
		FROM wallets`
	if !includeArchived {
		query += ` WHERE archived = 0`
	}
	query += ` ORDER BY name`

	rows, err := q.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets: %w", err)
	}
	defer rows.Close()

	var wallets []model.Wallet
	for rows.Next() {
		var w model.Wallet
		var balance int64
		if err := rows.Scan(&w.ID, &w.Name, &w.Type, &balance, &w.Archived, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wallet: %w", err)
		}
		w.Balance = money.Amount(balance)
		wallets = append(wallets, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallets: %w", err)
	}
	return wallets, nil
}

// requireRowAffected turns a zero-row UPDATE/DELETE into ErrNotFound.
func requireRowAffected(result sql.Result, entity string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, common.ErrNotFound)
	}
	return nil
}
