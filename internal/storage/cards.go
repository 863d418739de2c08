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

// CreateCreditCard persists a new credit card and fills in its ID.
func (q *queries) CreateCreditCard(ctx context.Context, card *model.CreditCard) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCard(card); err != nil {
		return err
	}

	query := `
		INSERT INTO credit_cards (name, operator, billing_due_day, closing_day, max_debt, last_four_digits, archived, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now()
	result, err := q.q.ExecContext(ctx, query,
		card.Name, card.Operator, card.BillingDueDay, card.ClosingDay,
		int64(card.MaxDebt), card.LastFourDigits, card.Archived, now)
	if err != nil {
		return fmt.Errorf("failed to create credit card: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get credit card ID: %w", err)
	}

	card.ID = id
	card.CreatedAt = now

	slog.Debug("created credit card", "name", card.Name, "id", id)
	return nil
}

const cardColumns = `id, name, operator, billing_due_day, closing_day, max_debt, last_four_digits, archived, created_at`

// GetCreditCardByID returns a credit card by its ID.
func (q *queries) GetCreditCardByID(ctx context.Context, id int64) (*model.CreditCard, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	row := q.q.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM credit_cards WHERE id = ?`, id)
	return scanCard(row)
}

// GetCreditCardByName returns a credit card by its unique name.
func (q *queries) GetCreditCardByName(ctx context.Context, name string) (*model.CreditCard, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	row := q.q.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM credit_cards WHERE name = ?`, name)
	return scanCard(row)
}

func scanCard(row *sql.Row) (*model.CreditCard, error) {
	var c model.CreditCard
	var maxDebt int64
	err := row.Scan(&c.ID, &c.Name, &c.Operator, &c.BillingDueDay, &c.ClosingDay,
		&maxDebt, &c.LastFourDigits, &c.Archived, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("credit card: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query credit card: %w", err)
	}
	c.MaxDebt = money.Amount(maxDebt)
	return &c, nil
}

// CreditCardExistsByName reports whether a card with the given name exists.
func (q *queries) CreditCardExistsByName(ctx context.Context, name string) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateString(name, "name"); err != nil {
		return false, err
	}

	var count int
	err := q.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM credit_cards WHERE name = ?`, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check credit card name: %w", err)
	}
	return count > 0, nil
}

// UpdateCreditCard rewrites a card's mutable fields.
func (q *queries) UpdateCreditCard(ctx context.Context, card *model.CreditCard) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCard(card); err != nil {
		return err
	}

	query := `
		UPDATE credit_cards
		SET name = ?, operator = ?, billing_due_day = ?, closing_day = ?, max_debt = ?, last_four_digits = ?, archived = ?
		WHERE id = ?`

	result, err := q.q.ExecContext(ctx, query,
		card.Name, card.Operator, card.BillingDueDay, card.ClosingDay,
		int64(card.MaxDebt), card.LastFourDigits, card.Archived, card.ID)
	if err != nil {
		return fmt.Errorf("failed to update credit card: %w", err)
	}
	return requireRowAffected(result, "credit card")
}

// DeleteCreditCard removes a card row. The services ensure no debts still
// reference it.
func (q *queries) DeleteCreditCard(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	result, err := q.q.ExecContext(ctx, `DELETE FROM credit_cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete credit card: %w", err)
	}
	return requireRowAffected(result, "credit card")
}

// ListCreditCards returns cards ordered by name, optionally including
// archived ones.
func (q *queries) ListCreditCards(ctx context.Context, includeArchived bool) ([]model.CreditCard, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + cardColumns + ` FROM credit_cards`
	if !includeArchived {
		query += ` WHERE archived = 0`
	}
	query += ` ORDER BY name`

	rows, err := q.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query credit cards: %w", err)
	}
	defer rows.Close()

	var cards []model.CreditCard
	for rows.Next() {
		var c model.CreditCard
		var maxDebt int64
		if err := rows.Scan(&c.ID, &c.Name, &c.Operator, &c.BillingDueDay, &c.ClosingDay,
			&maxDebt, &c.LastFourDigits, &c.Archived, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan credit card: %w", err)
		}
		c.MaxDebt = money.Amount(maxDebt)
		cards = append(cards, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credit cards: %w", err)
	}
	return cards, nil
}

// CountDebtsByCard counts debts booked on a card.
func (q *queries) CountDebtsByCard(ctx context.Context, cardID int64) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateID(cardID, "cardID"); err != nil {
		return 0, err
	}

	var count int64
	err := q.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM credit_card_debts WHERE card_id = ?`, cardID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count debts: %w", err)
	}
	return count, nil
}
