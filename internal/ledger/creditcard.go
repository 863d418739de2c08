package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/Veraticus/solari/internal/common"
	"github.com/Veraticus/solari/internal/model"
	"github.com/Veraticus/solari/internal/money"
	"github.com/Veraticus/solari/internal/service"
)

// CreditCardService manages credit cards, purchase debts, and their
// installment schedules.
type CreditCardService struct {
	store service.Storage
}

// NewCreditCardService creates a credit card service backed by the given
// storage.
func NewCreditCardService(store service.Storage) *CreditCardService {
	return &CreditCardService{store: store}
}

// CreateCreditCard registers a new card. Billing and closing days are
// capped at 28 so every month of the year has them.
func (s *CreditCardService) CreateCreditCard(ctx context.Context, name, operator string, billingDueDay, closingDay int, maxDebt money.Amount, lastFour string) (*model.CreditCard, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("card name: %w", common.ErrInvalidInput)
	}
	if billingDueDay < 1 || billingDueDay > model.MaxBillingDueDay {
		return nil, fmt.Errorf("billing due day must be in [1, %d]: %w", model.MaxBillingDueDay, common.ErrInvalidInput)
	}
	if closingDay < 1 || closingDay > model.MaxBillingDueDay {
		return nil, fmt.Errorf("closing day must be in [1, %d]: %w", model.MaxBillingDueDay, common.ErrInvalidInput)
	}
	if maxDebt < 0 {
		return nil, fmt.Errorf("max debt must not be negative: %w", common.ErrInvalidInput)
	}
	if lastFour != "" && !isFourDigits(lastFour) {
		return nil, fmt.Errorf("last four digits must be exactly 4 digits: %w", common.ErrInvalidInput)
	}

	card := &model.CreditCard{
		Name:           name,
		Operator:       operator,
		BillingDueDay:  billingDueDay,
		ClosingDay:     closingDay,
		MaxDebt:        maxDebt,
		LastFourDigits: lastFour,
	}

	err := runInTx(ctx, s.store, func(tx service.Tx) error {
		exists, err := tx.CreditCardExistsByName(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("card %q: %w", name, common.ErrDuplicateName)
		}
		return tx.CreateCreditCard(ctx, card)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("credit card created", "name", name, "max_debt", maxDebt.String())
	return card, nil
}

func isFourDigits(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// DeleteCreditCard removes a card that has no debts booked on it.
func (s *CreditCardService) DeleteCreditCard(ctx context.Context, id int64) error {
	return runInTx(ctx, s.store, func(tx service.Tx) error {
		count, err := tx.CountDebtsByCard(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("card has debts, archive it instead: %w", common.ErrInvalidInput)
		}
		return tx.DeleteCreditCard(ctx, id)
	})
}

// ArchiveCreditCard hides a card from default listings. Cards with unpaid
// installments cannot be archived.
func (s *CreditCardService) ArchiveCreditCard(ctx context.Context, id int64) error {
	return runInTx(ctx, s.store, func(tx service.Tx) error {
		card, err := tx.GetCreditCardByID(ctx, id)
		if err != nil {
			return err
		}
		pending, err := tx.SumPendingPaymentsForCard(ctx, id)
		if err != nil {
			return err
		}
		if pending > 0 {
			return fmt.Errorf("card has %s in pending payments: %w", pending, common.ErrInvalidInput)
		}
		card.Archived = true
		return tx.UpdateCreditCard(ctx, card)
	})
}

// UnarchiveCreditCard restores an archived card.
func (s *CreditCardService) UnarchiveCreditCard(ctx context.Context, id int64) error {
	return runInTx(ctx, s.store, func(tx service.Tx) error {
		card, err := tx.GetCreditCardByID(ctx, id)
		if err != nil {
			return err
		}
		card.Archived = false
		return tx.UpdateCreditCard(ctx, card)
	})
}

// GetAvailableCredit returns how much of the card's limit remains. Paid
// installments restore credit; merely scheduled ones do not.
func (s *CreditCardService) GetAvailableCredit(ctx context.Context, id int64) (money.Amount, error) {
	card, err := s.store.GetCreditCardByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return s.availableCredit(ctx, s.store, card)
}

func (s *CreditCardService) availableCredit(ctx context.Context, store service.Storage, card *model.CreditCard) (money.Amount, error) {
	totalDebt, err := store.SumDebtForCard(ctx, card.ID)
	if err != nil {
		return 0, err
	}
	totalPaid, err := store.SumPaidAmountForCard(ctx, card.ID)
	if err != nil {
		return 0, err
	}
	return card.MaxDebt - totalDebt + totalPaid, nil
}

// RegisterDebt books a purchase on a card and schedules its installment
// payments, one per month starting the month after the purchase, each due
// on the card's billing day. The installment amounts sum exactly to the
// total; leftover cents go to the final installment.
func (s *CreditCardService) RegisterDebt(ctx context.Context, cardID, categoryID int64, date time.Time, totalValue money.Amount, installments int, description string) (*model.CreditCardDebt, error) {
	if !totalValue.IsPositive() {
		return nil, fmt.Errorf("debt total must be positive: %w", common.ErrInvalidInput)
	}
	if installments < 1 || installments > model.MaxInstallments {
		return nil, fmt.Errorf("installments must be in [1, %d]: %w", model.MaxInstallments, common.ErrInvalidInput)
	}

	debt := &model.CreditCardDebt{
		CardID:       cardID,
		CategoryID:   categoryID,
		Date:         date,
		TotalAmount:  totalValue,
		Installments: installments,
		Description:  description,
	}

	err := runInTx(ctx, s.store, func(tx service.Tx) error {
		card, err := tx.GetCreditCardByID(ctx, cardID)
		if err != nil {
			return fmt.Errorf("card: %w", err)
		}
		if _, err := tx.GetCategoryByID(ctx, categoryID); err != nil {
			return fmt.Errorf("category: %w", err)
		}

		available, err := s.availableCredit(ctx, tx, card)
		if err != nil {
			return err
		}
		if totalValue > available {
			return fmt.Errorf("card %q has %s available, need %s: %w",
				card.Name, available, totalValue, common.ErrInsufficientCredit)
		}

		if err := tx.CreateDebt(ctx, debt); err != nil {
			return err
		}

		amounts := totalValue.Split(installments)
		for i, amount := range amounts {
			payment := &model.CreditCardPayment{
				DebtID:            debt.ID,
				DueDate:           installmentDueDate(date, i+1, card.BillingDueDay),
				Amount:            amount,
				InstallmentNumber: i + 1,
			}
			if err := tx.CreatePayment(ctx, payment); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("debt registered",
		"card_id", cardID,
		"total", totalValue.String(),
		"installments", installments)
	return debt, nil
}

// installmentDueDate returns the billing day of the nth month after the
// purchase date. Billing days never exceed 28, so the day exists in every
// month.
func installmentDueDate(purchase time.Time, n, billingDay int) time.Time {
	firstOfMonth := time.Date(purchase.Year(), purchase.Month(), 1, 0, 0, 0, 0, time.UTC)
	due := firstOfMonth.AddDate(0, n, 0)
	return time.Date(due.Year(), due.Month(), billingDay, 0, 0, 0, 0, time.UTC)
}

// DeleteDebt removes a debt and its installment schedule. Installments that
// were already paid have their amounts credited back to the paying wallet.
func (s *CreditCardService) DeleteDebt(ctx context.Context, debtID int64) error {
	return runInTx(ctx, s.store, func(tx service.Tx) error {
		if _, err := tx.GetDebtByID(ctx, debtID); err != nil {
			return err
		}
		payments, err := tx.ListPaymentsByDebt(ctx, debtID)
		if err != nil {
			return err
		}
		for _, payment := range payments {
			if !payment.Paid() {
				continue
			}
			wallet, err := tx.GetWalletByID(ctx, *payment.WalletID)
			if err != nil {
				return err
			}
			if err := tx.UpdateWalletBalance(ctx, wallet.ID, wallet.Balance+payment.Amount); err != nil {
				return err
			}
		}
		return tx.DeleteDebt(ctx, debtID)
	})
}

// PayInvoice settles every pending installment of a card due in the given
// month from one wallet, debiting the wallet by their sum. It returns the
// amount paid.
func (s *CreditCardService) PayInvoice(ctx context.Context, cardID, walletID int64, month time.Month, year int) (money.Amount, error) {
	var total money.Amount

	err := runInTx(ctx, s.store, func(tx service.Tx) error {
		payments, err := tx.ListPendingPaymentsByCardMonth(ctx, cardID, month, year)
		if err != nil {
			return err
		}
		if len(payments) == 0 {
			return fmt.Errorf("no pending payments for %s %d: %w", month, year, common.ErrNotFound)
		}

		total = 0
		for _, payment := range payments {
			total += payment.Amount
		}

		wallet, err := tx.GetWalletByID(ctx, walletID)
		if err != nil {
			return fmt.Errorf("wallet: %w", err)
		}
		if wallet.Balance < total {
			return fmt.Errorf("wallet %q has %s, invoice is %s: %w",
				wallet.Name, wallet.Balance, total, common.ErrInsufficientBalance)
		}

		for _, payment := range payments {
			if err := tx.MarkPaymentPaid(ctx, payment.ID, walletID); err != nil {
				return err
			}
		}
		return tx.UpdateWalletBalance(ctx, walletID, wallet.Balance-total)
	})
	if err != nil {
		return 0, err
	}

	slog.Info("invoice paid",
		"card_id", cardID,
		"wallet_id", walletID,
		"month", month.String(),
		"year", year,
		"total", total.String())
	return total, nil
}

// GetTotalDebtAmount returns the sum of all debts booked during a month.
func (s *CreditCardService) GetTotalDebtAmount(ctx context.Context, month time.Month, year int) (money.Amount, error) {
	return s.store.TotalDebtAmount(ctx, month, year)
}

// GetTotalPendingPayments returns the sum of unpaid installments due in a
// month across all cards.
func (s *CreditCardService) GetTotalPendingPayments(ctx context.Context, month time.Month, year int) (money.Amount, error) {
	return s.store.TotalPendingPayments(ctx, month, year)
}

// GetCreditCard returns a card by ID.
func (s *CreditCardService) GetCreditCard(ctx context.Context, id int64) (*model.CreditCard, error) {
	return s.store.GetCreditCardByID(ctx, id)
}

// GetCreditCardByName returns a card by its unique name.
func (s *CreditCardService) GetCreditCardByName(ctx context.Context, name string) (*model.CreditCard, error) {
	return s.store.GetCreditCardByName(ctx, name)
}

// ListCreditCards returns cards, optionally including archived ones.
func (s *CreditCardService) ListCreditCards(ctx context.Context, includeArchived bool) ([]model.CreditCard, error) {
	return s.store.ListCreditCards(ctx, includeArchived)
}

// ListPayments returns a debt's installment schedule.
func (s *CreditCardService) ListPayments(ctx context.Context, debtID int64) ([]model.CreditCardPayment, error) {
	return s.store.ListPaymentsByDebt(ctx, debtID)
}
