package model

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/Veraticus/solari/internal/money"
)

// TransactionType indicates whether a transaction adds to or removes from a
// wallet balance.
type TransactionType string

const (
	// TypeIncome adds the amount to the wallet balance.
	TypeIncome TransactionType = "income"
	// TypeExpense subtracts the amount from the wallet balance.
	TypeExpense TransactionType = "expense"
)

// Valid reports whether the type is one of the known values.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// TransactionStatus tracks whether a transaction has been applied to its
// wallet balance yet.
type TransactionStatus string

const (
	// StatusPending means the transaction is expected but has not touched
	// the balance.
	StatusPending TransactionStatus = "pending"
	// StatusConfirmed means the balance delta has been applied.
	StatusConfirmed TransactionStatus = "confirmed"
)

// Valid reports whether the status is one of the known values.
func (s TransactionStatus) Valid() bool {
	return s == StatusPending || s == StatusConfirmed
}

// WalletTransaction is a single income or expense event on a wallet.
// Only confirmed transactions affect the wallet's cached balance.
type WalletTransaction struct {
	Date        time.Time
	CreatedAt   time.Time
	Description string
	Type        TransactionType
	Status      TransactionStatus
	Hash        string
	ID          int64
	WalletID    int64
	CategoryID  int64
	Amount      money.Amount
}

// GenerateHash creates a content hash used to deduplicate imported
// statement transactions.
func (t *WalletTransaction) GenerateHash() string {
	data := fmt.Sprintf("%d:%s:%d:%s:%s",
		t.WalletID,
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Type,
		t.Description)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
