package model

import (
	"time"

	"github.com/Veraticus/solari/internal/money"
)

const (
	// MaxBillingDueDay caps due and closing days so every month has the day.
	MaxBillingDueDay = 28
	// MaxInstallments caps how far a debt may be split (three years).
	MaxInstallments = 36
)

// CreditCard is a credit line with a monthly billing cycle.
type CreditCard struct {
	CreatedAt      time.Time
	Name           string
	Operator       string
	LastFourDigits string
	ID             int64
	BillingDueDay  int
	ClosingDay     int
	MaxDebt        money.Amount
	Archived       bool
}

// CreditCardDebt is a single purchase event on a card, independent of how
// it is repaid.
type CreditCardDebt struct {
	Date         time.Time
	CreatedAt    time.Time
	Description  string
	ID           int64
	CardID       int64
	CategoryID   int64
	TotalAmount  money.Amount
	Installments int
}

// CreditCardPayment is one scheduled repayment fraction of a debt, due on
// the card's billing day. WalletID is set once the installment is actually
// paid from a wallet; until then the payment is pending and does not
// restore credit.
type CreditCardPayment struct {
	DueDate           time.Time
	WalletID          *int64
	ID                int64
	DebtID            int64
	Amount            money.Amount
	InstallmentNumber int
}

// Paid reports whether the installment has been paid from a wallet.
func (p *CreditCardPayment) Paid() bool {
	return p.WalletID != nil
}
