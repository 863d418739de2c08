package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Wallets, categories, transactions, transfers",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS wallets (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT UNIQUE NOT NULL,
					type TEXT NOT NULL DEFAULT '',
					balance INTEGER NOT NULL DEFAULT 0,
					archived INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS categories (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT UNIQUE NOT NULL,
					archived INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS transactions (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					wallet_id INTEGER NOT NULL REFERENCES wallets(id),
					category_id INTEGER NOT NULL REFERENCES categories(id),
					type TEXT NOT NULL,
					status TEXT NOT NULL,
					date DATETIME NOT NULL,
					amount INTEGER NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					hash TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_transactions_wallet ON transactions(wallet_id)`,
				`CREATE INDEX idx_transactions_date ON transactions(date)`,
				`CREATE INDEX idx_transactions_status ON transactions(status)`,
				`CREATE UNIQUE INDEX idx_transactions_hash ON transactions(hash) WHERE hash IS NOT NULL`,

				`CREATE TABLE IF NOT EXISTS transfers (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					sender_wallet_id INTEGER NOT NULL REFERENCES wallets(id),
					receiver_wallet_id INTEGER NOT NULL REFERENCES wallets(id),
					date DATETIME NOT NULL,
					amount INTEGER NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_transfers_sender ON transfers(sender_wallet_id)`,
				`CREATE INDEX idx_transfers_receiver ON transfers(receiver_wallet_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Credit cards, debts, installment payments",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS credit_cards (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT UNIQUE NOT NULL,
					operator TEXT NOT NULL DEFAULT '',
					billing_due_day INTEGER NOT NULL,
					closing_day INTEGER NOT NULL,
					max_debt INTEGER NOT NULL,
					last_four_digits TEXT NOT NULL DEFAULT '',
					archived INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS credit_card_debts (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					card_id INTEGER NOT NULL REFERENCES credit_cards(id),
					category_id INTEGER NOT NULL REFERENCES categories(id),
					date DATETIME NOT NULL,
					total_amount INTEGER NOT NULL,
					installments INTEGER NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_debts_card ON credit_card_debts(card_id)`,

				`CREATE TABLE IF NOT EXISTS credit_card_payments (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					debt_id INTEGER NOT NULL REFERENCES credit_card_debts(id) ON DELETE CASCADE,
					wallet_id INTEGER REFERENCES wallets(id),
					due_date DATETIME NOT NULL,
					amount INTEGER NOT NULL,
					installment_number INTEGER NOT NULL
				)`,
				`CREATE INDEX idx_payments_debt ON credit_card_payments(debt_id)`,
				`CREATE INDEX idx_payments_due_date ON credit_card_payments(due_date)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Savings goals and recurring transaction templates",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS goals (
					wallet_id INTEGER PRIMARY KEY REFERENCES wallets(id) ON DELETE CASCADE,
					target_balance INTEGER NOT NULL,
					target_date DATETIME NOT NULL,
					motivation TEXT NOT NULL DEFAULT '',
					completed_at DATETIME,
					archived INTEGER NOT NULL DEFAULT 0
				)`,

				`CREATE TABLE IF NOT EXISTS recurring_transactions (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					wallet_id INTEGER NOT NULL REFERENCES wallets(id),
					category_id INTEGER NOT NULL REFERENCES categories(id),
					type TEXT NOT NULL,
					amount INTEGER NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					start_date DATETIME NOT NULL,
					end_date DATETIME,
					next_due_date DATETIME NOT NULL,
					frequency TEXT NOT NULL,
					status TEXT NOT NULL DEFAULT 'active',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_recurring_status ON recurring_transactions(status)`,
				`CREATE INDEX idx_recurring_next_due ON recurring_transactions(next_due_date)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending schema migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
