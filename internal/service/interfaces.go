// Package service defines the contracts between the domain services and the
// persistence layer.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/solari/internal/model"
	"github.com/Veraticus/solari/internal/money"
)

// Storage defines the contract for the persistence layer. Every mutating
// domain operation runs against a Tx obtained from BeginTx so that all of
// its writes commit or roll back together.
type Storage interface {
	// Wallet operations
	CreateWallet(ctx context.Context, wallet *model.Wallet) error
	GetWalletByID(ctx context.Context, id int64) (*model.Wallet, error)
	GetWalletByName(ctx context.Context, name string) (*model.Wallet, error)
	WalletExistsByName(ctx context.Context, name string) (bool, error)
	UpdateWallet(ctx context.Context, wallet *model.Wallet) error
	UpdateWalletBalance(ctx context.Context, id int64, balance money.Amount) error
	DeleteWallet(ctx context.Context, id int64) error
	ListWallets(ctx context.Context, includeArchived bool) ([]model.Wallet, error)

	// Wallet transaction operations
	CreateTransaction(ctx context.Context, txn *model.WalletTransaction) error
	GetTransactionByID(ctx context.Context, id int64) (*model.WalletTransaction, error)
	UpdateTransactionStatus(ctx context.Context, id int64, status model.TransactionStatus) error
	DeleteTransaction(ctx context.Context, id int64) error
	ListTransactionsByWallet(ctx context.Context, walletID int64) ([]model.WalletTransaction, error)
	ListTransactionsByMonth(ctx context.Context, month time.Month, year int) ([]model.WalletTransaction, error)
	ListPendingTransactions(ctx context.Context) ([]model.WalletTransaction, error)
	CountTransactionsByWallet(ctx context.Context, walletID int64) (int64, error)
	CountTransactionsByCategory(ctx context.Context, categoryID int64) (int64, error)
	TransactionExistsByHash(ctx context.Context, hash string) (bool, error)

	// Transfer operations
	CreateTransfer(ctx context.Context, transfer *model.Transfer) error
	ListTransfersByWallet(ctx context.Context, walletID int64) ([]model.Transfer, error)
	CountTransfersByWallet(ctx context.Context, walletID int64) (int64, error)

	// Category operations
	CreateCategory(ctx context.Context, category *model.Category) error
	GetCategoryByID(ctx context.Context, id int64) (*model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	CategoryExistsByName(ctx context.Context, name string) (bool, error)
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context, includeArchived bool) ([]model.Category, error)
	CountDebtsByCategory(ctx context.Context, categoryID int64) (int64, error)
	CountRecurringByCategory(ctx context.Context, categoryID int64) (int64, error)

	// Credit card operations
	CreateCreditCard(ctx context.Context, card *model.CreditCard) error
	GetCreditCardByID(ctx context.Context, id int64) (*model.CreditCard, error)
	GetCreditCardByName(ctx context.Context, name string) (*model.CreditCard, error)
	CreditCardExistsByName(ctx context.Context, name string) (bool, error)
	UpdateCreditCard(ctx context.Context, card *model.CreditCard) error
	DeleteCreditCard(ctx context.Context, id int64) error
	ListCreditCards(ctx context.Context, includeArchived bool) ([]model.CreditCard, error)
	CountDebtsByCard(ctx context.Context, cardID int64) (int64, error)

	// Debt and installment payment operations
	CreateDebt(ctx context.Context, debt *model.CreditCardDebt) error
	GetDebtByID(ctx context.Context, id int64) (*model.CreditCardDebt, error)
	DeleteDebt(ctx context.Context, id int64) error
	CreatePayment(ctx context.Context, payment *model.CreditCardPayment) error
	ListPaymentsByDebt(ctx context.Context, debtID int64) ([]model.CreditCardPayment, error)
	ListPendingPaymentsByCardMonth(ctx context.Context, cardID int64, month time.Month, year int) ([]model.CreditCardPayment, error)
	MarkPaymentPaid(ctx context.Context, paymentID, walletID int64) error
	SumDebtForCard(ctx context.Context, cardID int64) (money.Amount, error)
	SumPaidAmountForCard(ctx context.Context, cardID int64) (money.Amount, error)
	SumPendingPaymentsForCard(ctx context.Context, cardID int64) (money.Amount, error)
	TotalDebtAmount(ctx context.Context, month time.Month, year int) (money.Amount, error)
	TotalPendingPayments(ctx context.Context, month time.Month, year int) (money.Amount, error)

	// Goal operations
	CreateGoal(ctx context.Context, goal *model.Goal) error
	GetGoalByWalletID(ctx context.Context, walletID int64) (*model.Goal, error)
	UpdateGoal(ctx context.Context, goal *model.Goal) error
	DeleteGoal(ctx context.Context, walletID int64) error
	ListGoals(ctx context.Context, includeArchived bool) ([]model.Goal, error)

	// Recurring transaction operations
	CreateRecurring(ctx context.Context, recurring *model.RecurringTransaction) error
	GetRecurringByID(ctx context.Context, id int64) (*model.RecurringTransaction, error)
	UpdateRecurring(ctx context.Context, recurring *model.RecurringTransaction) error
	DeleteRecurring(ctx context.Context, id int64) error
	ListRecurringByStatus(ctx context.Context, status model.RecurringStatus) ([]model.RecurringTransaction, error)

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Tx, error)
	Close() error
}

// Tx is a unit of work. It exposes the full Storage surface scoped to one
// database transaction.
type Tx interface {
	Commit() error
	Rollback() error
	Storage
}
