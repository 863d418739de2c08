package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/solari/internal/common"
	"github.com/Veraticus/solari/internal/model"
	"github.com/Veraticus/solari/internal/money"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func createTestWallet(t *testing.T, store *SQLiteStorage, name string, balance money.Amount) *model.Wallet {
	t.Helper()
	wallet := &model.Wallet{Name: name, Type: "checking", Balance: balance}
	if err := store.CreateWallet(context.Background(), wallet); err != nil {
		t.Fatalf("Failed to create wallet: %v", err)
	}
	return wallet
}

func createTestCategory(t *testing.T, store *SQLiteStorage, name string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name}
	if err := store.CreateCategory(context.Background(), category); err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	return category
}

func TestSQLiteStorage_WalletCRUD(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	wallet := createTestWallet(t, store, "Checking", 10000)
	if wallet.ID == 0 {
		t.Fatal("Expected wallet ID to be set")
	}

	got, err := store.GetWalletByID(ctx, wallet.ID)
	if err != nil {
		t.Fatalf("Failed to get wallet: %v", err)
	}
	if got.Name != "Checking" || got.Balance != 10000 {
		t.Errorf("Unexpected wallet: %+v", got)
	}

	byName, err := store.GetWalletByName(ctx, "Checking")
	if err != nil {
		t.Fatalf("Failed to get wallet by name: %v", err)
	}
	if byName.ID != wallet.ID {
		t.Errorf("Expected ID %d, got %d", wallet.ID, byName.ID)
	}

	exists, err := store.WalletExistsByName(ctx, "Checking")
	if err != nil || !exists {
		t.Errorf("Expected wallet to exist, got exists=%v err=%v", exists, err)
	}

	got.Name = "Main Checking"
	got.Archived = true
	if err := store.UpdateWallet(ctx, got); err != nil {
		t.Fatalf("Failed to update wallet: %v", err)
	}

	if err := store.UpdateWalletBalance(ctx, wallet.ID, 7500); err != nil {
		t.Fatalf("Failed to update balance: %v", err)
	}
	updated, err := store.GetWalletByID(ctx, wallet.ID)
	if err != nil {
		t.Fatalf("Failed to get wallet: %v", err)
	}
	if updated.Balance != 7500 {
		t.Errorf("Expected balance 7500, got %d", updated.Balance)
	}
	if updated.Name != "Main Checking" || !updated.Archived {
		t.Errorf("Update not applied: %+v", updated)
	}

	active, err := store.ListWallets(ctx, false)
	if err != nil {
		t.Fatalf("Failed to list wallets: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("Expected 0 active wallets, got %d", len(active))
	}
	all, err := store.ListWallets(ctx, true)
	if err != nil {
		t.Fatalf("Failed to list wallets: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Expected 1 wallet, got %d", len(all))
	}

	if err := store.DeleteWallet(ctx, wallet.ID); err != nil {
		t.Fatalf("Failed to delete wallet: %v", err)
	}
	if _, err := store.GetWalletByID(ctx, wallet.ID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStorage_WalletNotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := store.GetWalletByID(ctx, 999); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := store.UpdateWalletBalance(ctx, 999, 100); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := store.DeleteWallet(ctx, 999); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStorage_TransactionCRUD(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	wallet := createTestWallet(t, store, "Checking", 10000)
	category := createTestCategory(t, store, "Groceries")

	txn := &model.WalletTransaction{
		WalletID:    wallet.ID,
		CategoryID:  category.ID,
		Type:        model.TypeExpense,
		Status:      model.StatusConfirmed,
		Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Amount:      2500,
		Description: "Weekly shop",
	}
	txn.Hash = txn.GenerateHash()

	if err := store.CreateTransaction(ctx, txn); err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}
	if txn.ID == 0 {
		t.Fatal("Expected transaction ID to be set")
	}

	got, err := store.GetTransactionByID(ctx, txn.ID)
	if err != nil {
		t.Fatalf("Failed to get transaction: %v", err)
	}
	if got.Amount != 2500 || got.Type != model.TypeExpense || got.Status != model.StatusConfirmed {
		t.Errorf("Unexpected transaction: %+v", got)
	}

	exists, err := store.TransactionExistsByHash(ctx, txn.Hash)
	if err != nil || !exists {
		t.Errorf("Expected hash to exist, got exists=%v err=%v", exists, err)
	}

	if err := store.UpdateTransactionStatus(ctx, txn.ID, model.StatusPending); err != nil {
		t.Fatalf("Failed to update status: %v", err)
	}
	pending, err := store.ListPendingTransactions(ctx)
	if err != nil {
		t.Fatalf("Failed to list pending: %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("Expected 1 pending transaction, got %d", len(pending))
	}

	byMonth, err := store.ListTransactionsByMonth(ctx, time.March, 2024)
	if err != nil {
		t.Fatalf("Failed to list by month: %v", err)
	}
	if len(byMonth) != 1 {
		t.Errorf("Expected 1 transaction in March, got %d", len(byMonth))
	}
	byOtherMonth, err := store.ListTransactionsByMonth(ctx, time.April, 2024)
	if err != nil {
		t.Fatalf("Failed to list by month: %v", err)
	}
	if len(byOtherMonth) != 0 {
		t.Errorf("Expected 0 transactions in April, got %d", len(byOtherMonth))
	}

	count, err := store.CountTransactionsByWallet(ctx, wallet.ID)
	if err != nil || count != 1 {
		t.Errorf("Expected count 1, got %d err=%v", count, err)
	}
	count, err = store.CountTransactionsByCategory(ctx, category.ID)
	if err != nil || count != 1 {
		t.Errorf("Expected count 1, got %d err=%v", count, err)
	}

	if err := store.DeleteTransaction(ctx, txn.ID); err != nil {
		t.Fatalf("Failed to delete transaction: %v", err)
	}
	if _, err := store.GetTransactionByID(ctx, txn.ID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStorage_TransferOperations(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	sender := createTestWallet(t, store, "Checking", 10000)
	receiver := createTestWallet(t, store, "Savings", 0)

	transfer := &model.Transfer{
		SenderWalletID:   sender.ID,
		ReceiverWalletID: receiver.ID,
		Date:             time.Now(),
		Amount:           3000,
		Description:      "Monthly savings",
	}
	if err := store.CreateTransfer(ctx, transfer); err != nil {
		t.Fatalf("Failed to create transfer: %v", err)
	}
	if transfer.ID == 0 {
		t.Fatal("Expected transfer ID to be set")
	}

	for _, walletID := range []int64{sender.ID, receiver.ID} {
		transfers, err := store.ListTransfersByWallet(ctx, walletID)
		if err != nil {
			t.Fatalf("Failed to list transfers: %v", err)
		}
		if len(transfers) != 1 {
			t.Errorf("Expected 1 transfer for wallet %d, got %d", walletID, len(transfers))
		}
	}

	count, err := store.CountTransfersByWallet(ctx, sender.ID)
	if err != nil || count != 1 {
		t.Errorf("Expected count 1, got %d err=%v", count, err)
	}
}

func TestSQLiteStorage_CategoryCRUD(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	category := createTestCategory(t, store, "Groceries")

	got, err := store.GetCategoryByName(ctx, "Groceries")
	if err != nil {
		t.Fatalf("Failed to get category: %v", err)
	}
	if got.ID != category.ID {
		t.Errorf("Expected ID %d, got %d", category.ID, got.ID)
	}

	duplicate := &model.Category{Name: "Groceries"}
	if err := store.CreateCategory(ctx, duplicate); err == nil {
		t.Error("Expected error creating duplicate category name")
	}

	got.Name = "Food"
	if err := store.UpdateCategory(ctx, got); err != nil {
		t.Fatalf("Failed to update category: %v", err)
	}

	if err := store.DeleteCategory(ctx, category.ID); err != nil {
		t.Fatalf("Failed to delete category: %v", err)
	}
	if _, err := store.GetCategoryByID(ctx, category.ID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStorage_CreditCardCRUD(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	card := &model.CreditCard{
		Name:           "Platinum",
		Operator:       "Visa",
		BillingDueDay:  10,
		ClosingDay:     3,
		MaxDebt:        100000,
		LastFourDigits: "4242",
	}
	if err := store.CreateCreditCard(ctx, card); err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}
	if card.ID == 0 {
		t.Fatal("Expected card ID to be set")
	}

	got, err := store.GetCreditCardByName(ctx, "Platinum")
	if err != nil {
		t.Fatalf("Failed to get card: %v", err)
	}
	if got.MaxDebt != 100000 || got.BillingDueDay != 10 {
		t.Errorf("Unexpected card: %+v", got)
	}

	got.MaxDebt = 150000
	if err := store.UpdateCreditCard(ctx, got); err != nil {
		t.Fatalf("Failed to update card: %v", err)
	}

	cards, err := store.ListCreditCards(ctx, false)
	if err != nil || len(cards) != 1 {
		t.Errorf("Expected 1 card, got %d err=%v", len(cards), err)
	}

	if err := store.DeleteCreditCard(ctx, card.ID); err != nil {
		t.Fatalf("Failed to delete card: %v", err)
	}
}

func TestSQLiteStorage_DebtAndPayments(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	category := createTestCategory(t, store, "Electronics")
	card := &model.CreditCard{Name: "Platinum", BillingDueDay: 10, ClosingDay: 3, MaxDebt: 100000}
	if err := store.CreateCreditCard(ctx, card); err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}

	debt := &model.CreditCardDebt{
		CardID:       card.ID,
		CategoryID:   category.ID,
		Date:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Description:  "Laptop",
		TotalAmount:  30000,
		Installments: 3,
	}
	if err := store.CreateDebt(ctx, debt); err != nil {
		t.Fatalf("Failed to create debt: %v", err)
	}

	for i := 1; i <= 3; i++ {
		payment := &model.CreditCardPayment{
			DebtID:            debt.ID,
			DueDate:           time.Date(2024, time.Month(1+i), 10, 0, 0, 0, 0, time.UTC),
			Amount:            10000,
			InstallmentNumber: i,
		}
		if err := store.CreatePayment(ctx, payment); err != nil {
			t.Fatalf("Failed to create payment %d: %v", i, err)
		}
	}

	payments, err := store.ListPaymentsByDebt(ctx, debt.ID)
	if err != nil {
		t.Fatalf("Failed to list payments: %v", err)
	}
	if len(payments) != 3 {
		t.Fatalf("Expected 3 payments, got %d", len(payments))
	}
	for i, p := range payments {
		if p.InstallmentNumber != i+1 {
			t.Errorf("Expected installment %d, got %d", i+1, p.InstallmentNumber)
		}
		if p.Paid() {
			t.Errorf("Expected payment %d to be unpaid", p.InstallmentNumber)
		}
	}

	sum, err := store.SumDebtForCard(ctx, card.ID)
	if err != nil || sum != 30000 {
		t.Errorf("Expected debt sum 30000, got %d err=%v", sum, err)
	}
	pendingSum, err := store.SumPendingPaymentsForCard(ctx, card.ID)
	if err != nil || pendingSum != 30000 {
		t.Errorf("Expected pending sum 30000, got %d err=%v", pendingSum, err)
	}

	wallet := createTestWallet(t, store, "Checking", 50000)
	if err := store.MarkPaymentPaid(ctx, payments[0].ID, wallet.ID); err != nil {
		t.Fatalf("Failed to mark payment paid: %v", err)
	}

	paidSum, err := store.SumPaidAmountForCard(ctx, card.ID)
	if err != nil || paidSum != 10000 {
		t.Errorf("Expected paid sum 10000, got %d err=%v", paidSum, err)
	}
	pendingSum, err = store.SumPendingPaymentsForCard(ctx, card.ID)
	if err != nil || pendingSum != 20000 {
		t.Errorf("Expected pending sum 20000, got %d err=%v", pendingSum, err)
	}

	marchPending, err := store.ListPendingPaymentsByCardMonth(ctx, card.ID, time.March, 2024)
	if err != nil {
		t.Fatalf("Failed to list pending by month: %v", err)
	}
	if len(marchPending) != 1 || marchPending[0].InstallmentNumber != 2 {
		t.Errorf("Expected installment 2 pending in March, got %+v", marchPending)
	}

	febPending, err := store.ListPendingPaymentsByCardMonth(ctx, card.ID, time.February, 2024)
	if err != nil {
		t.Fatalf("Failed to list pending by month: %v", err)
	}
	if len(febPending) != 0 {
		t.Errorf("Expected no pending payments in February after paying, got %d", len(febPending))
	}

	totalPending, err := store.TotalPendingPayments(ctx, time.March, 2024)
	if err != nil || totalPending != 10000 {
		t.Errorf("Expected total pending 10000, got %d err=%v", totalPending, err)
	}
	totalDebt, err := store.TotalDebtAmount(ctx, time.January, 2024)
	if err != nil || totalDebt != 30000 {
		t.Errorf("Expected total debt 30000, got %d err=%v", totalDebt, err)
	}

	// Deleting a debt cascades to its payments.
	if err := store.DeleteDebt(ctx, debt.ID); err != nil {
		t.Fatalf("Failed to delete debt: %v", err)
	}
	payments, err = store.ListPaymentsByDebt(ctx, debt.ID)
	if err != nil {
		t.Fatalf("Failed to list payments: %v", err)
	}
	if len(payments) != 0 {
		t.Errorf("Expected payments to cascade on debt delete, got %d", len(payments))
	}
}

func TestSQLiteStorage_GoalCRUD(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	wallet := createTestWallet(t, store, "Vacation Fund", 0)
	goal := &model.Goal{
		WalletID:      wallet.ID,
		TargetBalance: 500000,
		TargetDate:    time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		Motivation:    "Two weeks in Patagonia",
	}
	if err := store.CreateGoal(ctx, goal); err != nil {
		t.Fatalf("Failed to create goal: %v", err)
	}

	got, err := store.GetGoalByWalletID(ctx, wallet.ID)
	if err != nil {
		t.Fatalf("Failed to get goal: %v", err)
	}
	if got.TargetBalance != 500000 || got.Completed() {
		t.Errorf("Unexpected goal: %+v", got)
	}

	now := time.Now()
	got.CompletedAt = &now
	if err := store.UpdateGoal(ctx, got); err != nil {
		t.Fatalf("Failed to update goal: %v", err)
	}
	updated, err := store.GetGoalByWalletID(ctx, wallet.ID)
	if err != nil {
		t.Fatalf("Failed to get goal: %v", err)
	}
	if !updated.Completed() {
		t.Error("Expected goal to be completed")
	}

	goals, err := store.ListGoals(ctx, false)
	if err != nil || len(goals) != 1 {
		t.Errorf("Expected 1 goal, got %d err=%v", len(goals), err)
	}

	if err := store.DeleteGoal(ctx, wallet.ID); err != nil {
		t.Fatalf("Failed to delete goal: %v", err)
	}
	if _, err := store.GetGoalByWalletID(ctx, wallet.ID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStorage_RecurringCRUD(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	wallet := createTestWallet(t, store, "Checking", 10000)
	category := createTestCategory(t, store, "Rent")

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	recurring := &model.RecurringTransaction{
		WalletID:    wallet.ID,
		CategoryID:  category.ID,
		Type:        model.TypeExpense,
		Status:      model.RecurringActive,
		Frequency:   model.FrequencyMonthly,
		Amount:      120000,
		Description: "Rent",
		StartDate:   start,
		NextDueDate: start,
	}
	if err := store.CreateRecurring(ctx, recurring); err != nil {
		t.Fatalf("Failed to create recurring: %v", err)
	}

	got, err := store.GetRecurringByID(ctx, recurring.ID)
	if err != nil {
		t.Fatalf("Failed to get recurring: %v", err)
	}
	if got.Frequency != model.FrequencyMonthly || got.EndDate != nil {
		t.Errorf("Unexpected recurring: %+v", got)
	}

	got.NextDueDate = got.Frequency.Next(got.NextDueDate)
	got.Status = model.RecurringInactive
	if err := store.UpdateRecurring(ctx, got); err != nil {
		t.Fatalf("Failed to update recurring: %v", err)
	}

	active, err := store.ListRecurringByStatus(ctx, model.RecurringActive)
	if err != nil {
		t.Fatalf("Failed to list recurring: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("Expected 0 active templates, got %d", len(active))
	}
	inactive, err := store.ListRecurringByStatus(ctx, model.RecurringInactive)
	if err != nil {
		t.Fatalf("Failed to list recurring: %v", err)
	}
	if len(inactive) != 1 {
		t.Errorf("Expected 1 inactive template, got %d", len(inactive))
	}

	if err := store.DeleteRecurring(ctx, recurring.ID); err != nil {
		t.Fatalf("Failed to delete recurring: %v", err)
	}
}

func TestSQLiteStorage_TransactionRollback(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	wallet := createTestWallet(t, store, "Checking", 10000)

	tx, err := store.BeginTx(ctx)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	if err := tx.UpdateWalletBalance(ctx, wallet.ID, 0); err != nil {
		t.Fatalf("Failed to update balance in tx: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Failed to rollback: %v", err)
	}

	got, err := store.GetWalletByID(ctx, wallet.ID)
	if err != nil {
		t.Fatalf("Failed to get wallet: %v", err)
	}
	if got.Balance != 10000 {
		t.Errorf("Expected balance unchanged after rollback, got %d", got.Balance)
	}
}

func TestSQLiteStorage_TransactionCommit(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	wallet := createTestWallet(t, store, "Checking", 10000)
	category := createTestCategory(t, store, "Salary")

	tx, err := store.BeginTx(ctx)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	txn := &model.WalletTransaction{
		WalletID:   wallet.ID,
		CategoryID: category.ID,
		Type:       model.TypeIncome,
		Status:     model.StatusConfirmed,
		Date:       time.Now(),
		Amount:     50000,
	}
	if err := tx.CreateTransaction(ctx, txn); err != nil {
		t.Fatalf("Failed to create transaction in tx: %v", err)
	}
	if err := tx.UpdateWalletBalance(ctx, wallet.ID, 60000); err != nil {
		t.Fatalf("Failed to update balance in tx: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}

	got, err := store.GetWalletByID(ctx, wallet.ID)
	if err != nil {
		t.Fatalf("Failed to get wallet: %v", err)
	}
	if got.Balance != 60000 {
		t.Errorf("Expected balance 60000 after commit, got %d", got.Balance)
	}
}

func TestSQLiteStorage_ForeignKeysEnforced(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	txn := &model.WalletTransaction{
		WalletID:   999,
		CategoryID: 999,
		Type:       model.TypeExpense,
		Status:     model.StatusPending,
		Date:       time.Now(),
		Amount:     100,
	}
	if err := store.CreateTransaction(ctx, txn); err == nil {
		t.Error("Expected foreign key violation creating transaction for missing wallet")
	}
}

func TestSQLiteStorage_ValidationErrors(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := store.GetWalletByName(ctx, ""); err == nil {
		t.Error("Expected error for empty name")
	}
	if _, err := store.GetWalletByID(ctx, 0); err == nil {
		t.Error("Expected error for zero ID")
	}
	if err := store.CreateWallet(ctx, nil); err == nil {
		t.Error("Expected error for nil wallet")
	}
	//nolint:staticcheck // deliberately passing a nil context
	if _, err := store.GetWalletByID(nil, 1); err == nil {
		t.Error("Expected error for nil context")
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	// Running Migrate again must be a no-op.
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Second migrate failed: %v", err)
	}

	var version int
	if err := store.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("Failed to read schema version: %v", err)
	}
	if version != ExpectedSchemaVersion {
		t.Errorf("Expected schema version %d, got %d", ExpectedSchemaVersion, version)
	}
}

func TestSQLiteStorage_ManyWallets(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		createTestWallet(t, store, fmt.Sprintf("Wallet %02d", i), money.Amount(i*100))
	}

	wallets, err := store.ListWallets(ctx, true)
	if err != nil {
		t.Fatalf("Failed to list wallets: %v", err)
	}
	if len(wallets) != 10 {
		t.Fatalf("Expected 10 wallets, got %d", len(wallets))
	}
	for i := 1; i < len(wallets); i++ {
		if wallets[i-1].Name > wallets[i].Name {
			t.Errorf("Wallets not ordered by name: %q after %q", wallets[i].Name, wallets[i-1].Name)
		}
	}
}
