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

// CreateDebt persists a new credit card debt and fills in its ID.
func (q *queries) CreateDebt(ctx context.Context, debt *model.CreditCardDebt) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if debt == nil {
		return fmt.Errorf("%w: debt", ErrNilParameter)
	}
	if err := validateID(debt.CardID, "cardID"); err != nil {
		return err
	}
	if err := validateID(debt.CategoryID, "categoryID"); err != nil {
		return err
	}

	query := `
		INSERT INTO credit_card_debts (card_id, category_id, date, description, total_amount, installments, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	now := time.Now()
	result, err := q.q.ExecContext(ctx, query,
		debt.CardID, debt.CategoryID, debt.Date, debt.Description,
		int64(debt.TotalAmount), debt.Installments, now)
	if err != nil {
		return fmt.Errorf("failed to create debt: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get debt ID: %w", err)
	}

	debt.ID = id
	debt.CreatedAt = now

	slog.Debug("created credit card debt", "card_id", debt.CardID, "id", id)
	return nil
}

// GetDebtByID returns a debt by its ID.
func (q *queries) GetDebtByID(ctx context.Context, id int64) (*model.CreditCardDebt, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	row := q.q.QueryRowContext(ctx, `
		SELECT id, card_id, category_id, date, description, total_amount, installments, created_at
		FROM credit_card_debts WHERE id = ?`, id)

	var d model.CreditCardDebt
	var total int64
	err := row.Scan(&d.ID, &d.CardID, &d.CategoryID, &d.Date, &d.Description,
		&total, &d.Installments, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("debt: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query debt: %w", err)
	}
	d.TotalAmount = money.Amount(total)
	return &d, nil
}

// DeleteDebt removes a debt. Its payments go with it via ON DELETE CASCADE.
func (q *queries) DeleteDebt(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	result, err := q.q.ExecContext(ctx, `DELETE FROM credit_card_debts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	return requireRowAffected(result, "debt")
}

// CreatePayment persists one installment payment row.
func (q *queries) CreatePayment(ctx context.Context, payment *model.CreditCardPayment) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if payment == nil {
		return fmt.Errorf("%w: payment", ErrNilParameter)
	}
	if err := validateID(payment.DebtID, "debtID"); err != nil {
		return err
	}

	query := `
		INSERT INTO credit_card_payments (debt_id, wallet_id, due_date, amount, installment_number)
		VALUES (?, ?, ?, ?, ?)`

	result, err := q.q.ExecContext(ctx, query,
		payment.DebtID, payment.WalletID, payment.DueDate,
		int64(payment.Amount), payment.InstallmentNumber)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get payment ID: %w", err)
	}

	payment.ID = id
	return nil
}

const paymentColumns = `id, debt_id, wallet_id, due_date, amount, installment_number`

func scanPayments(rows *sql.Rows) ([]model.CreditCardPayment, error) {
	var payments []model.CreditCardPayment
	for rows.Next() {
		var p model.CreditCardPayment
		var amount int64
		if err := rows.Scan(&p.ID, &p.DebtID, &p.WalletID, &p.DueDate,
			&amount, &p.InstallmentNumber); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		p.Amount = money.Amount(amount)
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payments: %w", err)
	}
	return payments, nil
}

// ListPaymentsByDebt returns a debt's payments in installment order.
func (q *queries) ListPaymentsByDebt(ctx context.Context, debtID int64) ([]model.CreditCardPayment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(debtID, "debtID"); err != nil {
		return nil, err
	}

	rows, err := q.q.QueryContext(ctx, `
		SELECT `+paymentColumns+`
		FROM credit_card_payments
		WHERE debt_id = ?
		ORDER BY installment_number`, debtID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

// ListPendingPaymentsByCardMonth returns a card's unpaid installments due in
// the given month.
func (q *queries) ListPendingPaymentsByCardMonth(ctx context.Context, cardID int64, month time.Month, year int) ([]model.CreditCardPayment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(cardID, "cardID"); err != nil {
		return nil, err
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	rows, err := q.q.QueryContext(ctx, `
		SELECT p.id, p.debt_id, p.wallet_id, p.due_date, p.amount, p.installment_number
		FROM credit_card_payments p
		JOIN credit_card_debts d ON d.id = p.debt_id
		WHERE d.card_id = ? AND p.wallet_id IS NULL AND p.due_date >= ? AND p.due_date < ?
		ORDER BY p.due_date, p.installment_number`, cardID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending payments: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

// MarkPaymentPaid records which wallet settled an installment.
func (q *queries) MarkPaymentPaid(ctx context.Context, paymentID, walletID int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(paymentID, "paymentID"); err != nil {
		return err
	}
	if err := validateID(walletID, "walletID"); err != nil {
		return err
	}

	result, err := q.q.ExecContext(ctx,
		`UPDATE credit_card_payments SET wallet_id = ? WHERE id = ?`, walletID, paymentID)
	if err != nil {
		return fmt.Errorf("failed to mark payment paid: %w", err)
	}
	return requireRowAffected(result, "payment")
}

// SumDebtForCard returns the sum of all debt totals booked on a card.
func (q *queries) SumDebtForCard(ctx context.Context, cardID int64) (money.Amount, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateID(cardID, "cardID"); err != nil {
		return 0, err
	}

	var total int64
	err := q.q.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM credit_card_debts WHERE card_id = ?`, cardID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum card debt: %w", err)
	}
	return money.Amount(total), nil
}

// SumPaidAmountForCard returns the sum of already-settled installments for a
// card. A payment is settled once a wallet is attached to it.
func (q *queries) SumPaidAmountForCard(ctx context.Context, cardID int64) (money.Amount, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateID(cardID, "cardID"); err != nil {
		return 0, err
	}

	var total int64
	err := q.q.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(p.amount), 0)
		FROM credit_card_payments p
		JOIN credit_card_debts d ON d.id = p.debt_id
		WHERE d.card_id = ? AND p.wallet_id IS NOT NULL`, cardID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum paid amount: %w", err)
	}
	return money.Amount(total), nil
}

// SumPendingPaymentsForCard returns the sum of unpaid installments for a card.
func (q *queries) SumPendingPaymentsForCard(ctx context.Context, cardID int64) (money.Amount, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateID(cardID, "cardID"); err != nil {
		return 0, err
	}

	var total int64
	err := q.q.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(p.amount), 0)
		FROM credit_card_payments p
		JOIN credit_card_debts d ON d.id = p.debt_id
		WHERE d.card_id = ? AND p.wallet_id IS NULL`, cardID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum pending payments: %w", err)
	}
	return money.Amount(total), nil
}

// TotalDebtAmount returns the sum of all debts booked during a month, across
// all cards.
func (q *queries) TotalDebtAmount(ctx context.Context, month time.Month, year int) (money.Amount, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var total int64
	err := q.q.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM credit_card_debts
		WHERE date >= ? AND date < ?`, start, end).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum monthly debt: %w", err)
	}
	return money.Amount(total), nil
}

// TotalPendingPayments returns the sum of unpaid installments due during a
// month, across all cards.
func (q *queries) TotalPendingPayments(ctx context.Context, month time.Month, year int) (money.Amount, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var total int64
	err := q.q.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM credit_card_payments
		WHERE wallet_id IS NULL AND due_date >= ? AND due_date < ?`, start, end).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum pending payments: %w", err)
	}
	return money.Amount(total), nil
}
