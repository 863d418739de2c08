package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/solari/internal/common"
	"github.com/Veraticus/solari/internal/model"
	"github.com/Veraticus/solari/internal/money"
)

func TestWalletService_CreateWallet(t *testing.T) {
	store := newTestStore(t)
	svc := NewWalletService(store)
	ctx := context.Background()

	wallet, err := svc.CreateWallet(ctx, "Checking", "checking", 10000)
	require.NoError(t, err)
	assert.NotZero(t, wallet.ID)
	assert.Equal(t, money.Amount(10000), wallet.Balance)

	_, err = svc.CreateWallet(ctx, "Checking", "checking", 0)
	assert.ErrorIs(t, err, common.ErrDuplicateName)

	_, err = svc.CreateWallet(ctx, "   ", "checking", 0)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestWalletService_RenameWallet(t *testing.T) {
	store := newTestStore(t)
	svc := NewWalletService(store)
	ctx := context.Background()

	a, err := svc.CreateWallet(ctx, "A", "checking", 0)
	require.NoError(t, err)
	_, err = svc.CreateWallet(ctx, "B", "checking", 0)
	require.NoError(t, err)

	require.NoError(t, svc.RenameWallet(ctx, a.ID, "C"))
	renamed, err := svc.GetWallet(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "C", renamed.Name)

	// Renaming to itself is a no-op, to a taken name an error.
	assert.NoError(t, svc.RenameWallet(ctx, a.ID, "C"))
	assert.ErrorIs(t, svc.RenameWallet(ctx, a.ID, "B"), common.ErrDuplicateName)
	assert.ErrorIs(t, svc.RenameWallet(ctx, 999, "D"), common.ErrNotFound)
}

func TestWalletService_DeleteWallet(t *testing.T) {
	store := newTestStore(t)
	svc := NewWalletService(store)
	ctx := context.Background()
	category := newTestCategory(t, store, "Groceries")

	empty, err := svc.CreateWallet(ctx, "Empty", "checking", 0)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteWallet(ctx, empty.ID))

	used, err := svc.CreateWallet(ctx, "Used", "checking", 10000)
	require.NoError(t, err)
	_, err = svc.AddTransaction(ctx, used.ID, category.ID,
		model.TypeExpense, model.StatusConfirmed, time.Now(), 100, "coffee")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteWallet(ctx, used.ID), common.ErrInvalidInput)
	assert.ErrorIs(t, svc.DeleteWallet(ctx, 999), common.ErrNotFound)
}

func TestWalletService_TransferMoney(t *testing.T) {
	store := newTestStore(t)
	svc := NewWalletService(store)
	ctx := context.Background()

	sender, err := svc.CreateWallet(ctx, "Checking", "checking", 10000)
	require.NoError(t, err)
	receiver, err := svc.CreateWallet(ctx, "Savings", "savings", 0)
	require.NoError(t, err)

	transfer, err := svc.TransferMoney(ctx, sender.ID, receiver.ID, time.Now(), 3000, "monthly savings")
	require.NoError(t, err)
	assert.NotZero(t, transfer.ID)

	gotSender, err := svc.GetWallet(ctx, sender.ID)
	require.NoError(t, err)
	gotReceiver, err := svc.GetWallet(ctx, receiver.ID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(7000), gotSender.Balance)
	assert.Equal(t, money.Amount(3000), gotReceiver.Balance)

	transfers, err := svc.ListTransfers(ctx, sender.ID)
	require.NoError(t, err)
	assert.Len(t, transfers, 1)
}

func TestWalletService_TransferValidation(t *testing.T) {
	store := newTestStore(t)
	svc := NewWalletService(store)
	ctx := context.Background()

	sender, err := svc.CreateWallet(ctx, "Checking", "checking", 1000)
	require.NoError(t, err)
	receiver, err := svc.CreateWallet(ctx, "Savings", "savings", 0)
	require.NoError(t, err)

	_, err = svc.TransferMoney(ctx, sender.ID, sender.ID, time.Now(), 100, "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = svc.TransferMoney(ctx, sender.ID, receiver.ID, time.Now(), 0, "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = svc.TransferMoney(ctx, sender.ID, receiver.ID, time.Now(), -500, "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = svc.TransferMoney(ctx, sender.ID, receiver.ID, time.Now(), 5000, "")
	assert.ErrorIs(t, err, common.ErrInsufficientBalance)

	// A failed transfer leaves both balances intact.
	gotSender, err := svc.GetWallet(ctx, sender.ID)
	require.NoError(t, err)
	gotReceiver, err := svc.GetWallet(ctx, receiver.ID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(1000), gotSender.Balance)
	assert.Equal(t, money.Amount(0), gotReceiver.Balance)
}

func TestWalletService_AddTransaction(t *testing.T) {
	store := newTestStore(t)
	svc := NewWalletService(store)
	ctx := context.Background()
	category := newTestCategory(t, store, "Salary")

	wallet, err := svc.CreateWallet(ctx, "Checking", "checking", 10000)
	require.NoError(t, err)

	// Confirmed income applies immediately.
	_, err = svc.AddTransaction(ctx, wallet.ID, category.ID,
		model.TypeIncome, model.StatusConfirmed, time.Now(), 50000, "paycheck")
	require.NoError(t, err)
	got, err := svc.GetWallet(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(60000), got.Balance)

	// Pending expense leaves the balance alone.
	pending, err := svc.AddTransaction(ctx, wallet.ID, category.ID,
		model.TypeExpense, model.StatusPending, time.Now(), 2000, "utility bill")
	require.NoError(t, err)
	got, err = svc.GetWallet(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(60000), got.Balance)
	assert.Equal(t, model.StatusPending, pending.Status)

	// Validation failures.
	_, err = svc.AddTransaction(ctx, wallet.ID, category.ID,
		model.TypeExpense, model.StatusConfirmed, time.Now(), 0, "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	_, err = svc.AddTransaction(ctx, 999, category.ID,
		model.TypeExpense, model.StatusConfirmed, time.Now(), 100, "")
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = svc.AddTransaction(ctx, wallet.ID, 999,
		model.TypeExpense, model.StatusConfirmed, time.Now(), 100, "")
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = svc.AddTransaction(ctx, wallet.ID, category.ID,
		"refund", model.StatusConfirmed, time.Now(), 100, "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestWalletService_ConfirmTransaction(t *testing.T) {
	store := newTestStore(t)
	svc := NewWalletService(store)
	ctx := context.Background()
	category := newTestCategory(t, store, "Groceries")

	wallet, err := svc.CreateWallet(ctx, "Checking", "checking", 10000)
	require.NoError(t, err)

	txn, err := svc.AddTransaction(ctx, wallet.ID, category.ID,
		model.TypeExpense, model.StatusPending, time.Now(), 3000, "weekly shop")
	require.NoError(t, err)

	require.NoError(t, svc.ConfirmTransaction(ctx, txn.ID))
	got, err := svc.GetWallet(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(7000), got.Balance)

	// Confirming twice must not apply the delta twice.
	err = svc.ConfirmTransaction(ctx, txn.ID)
	assert.ErrorIs(t, err, common.ErrAlreadyConfirmed)
	got, err = svc.GetWallet(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(7000), got.Balance)
}

func TestWalletService_ConfirmInsufficientBalance(t *testing.T) {
	store := newTestStore(t)
	svc := NewWalletService(store)
	ctx := context.Background()
	category := newTestCategory(t, store, "Groceries")

	wallet, err := svc.CreateWallet(ctx, "Checking", "checking", 1000)
	require.NoError(t, err)

	txn, err := svc.AddTransaction(ctx, wallet.ID, category.ID,
		model.TypeExpense, model.StatusPending, time.Now(), 5000, "too much")
	require.NoError(t, err)

	err = svc.ConfirmTransaction(ctx, txn.ID)
	assert.ErrorIs(t, err, common.ErrInsufficientBalance)

	// Still pending, balance untouched.
	got, err := store.GetTransactionByID(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)
	gotWallet, err := svc.GetWallet(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(1000), gotWallet.Balance)

	// Confirming a pending income on an empty wallet is fine.
	income, err := svc.AddTransaction(ctx, wallet.ID, category.ID,
		model.TypeIncome, model.StatusPending, time.Now(), 5000, "refund")
	require.NoError(t, err)
	require.NoError(t, svc.ConfirmTransaction(ctx, income.ID))
}

func TestWalletService_DeleteTransactionRestoresBalance(t *testing.T) {
	store := newTestStore(t)
	svc := NewWalletService(store)
	ctx := context.Background()
	category := newTestCategory(t, store, "Groceries")

	wallet, err := svc.CreateWallet(ctx, "Checking", "checking", 10000)
	require.NoError(t, err)

	txn, err := svc.AddTransaction(ctx, wallet.ID, category.ID,
		model.TypeExpense, model.StatusConfirmed, time.Now(), 3000, "weekly shop")
	require.NoError(t, err)

	got, err := svc.GetWallet(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(7000), got.Balance)

	require.NoError(t, svc.DeleteTransaction(ctx, txn.ID))
	got, err = svc.GetWallet(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(10000), got.Balance)

	// Deleting a pending transaction leaves the balance alone.
	pending, err := svc.AddTransaction(ctx, wallet.ID, category.ID,
		model.TypeExpense, model.StatusPending, time.Now(), 500, "maybe")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteTransaction(ctx, pending.ID))
	got, err = svc.GetWallet(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(10000), got.Balance)
}

// The balance must stay equal to the starting balance plus the sum of
// confirmed deltas through an arbitrary sequence of service calls.
func TestWalletService_BalanceIdentity(t *testing.T) {
	store := newTestStore(t)
	svc := NewWalletService(store)
	ctx := context.Background()
	category := newTestCategory(t, store, "Mixed")

	wallet, err := svc.CreateWallet(ctx, "Checking", "checking", 100000)
	require.NoError(t, err)

	steps := []struct {
		txnType model.TransactionType
		status  model.TransactionStatus
		amount  money.Amount
	}{
		{model.TypeExpense, model.StatusConfirmed, 12345},
		{model.TypeIncome, model.StatusConfirmed, 5000},
		{model.TypeExpense, model.StatusPending, 99999},
		{model.TypeIncome, model.StatusPending, 42},
		{model.TypeExpense, model.StatusConfirmed, 1},
	}

	expected := money.Amount(100000)
	for _, step := range steps {
		_, err := svc.AddTransaction(ctx, wallet.ID, category.ID,
			step.txnType, step.status, time.Now(), step.amount, "step")
		require.NoError(t, err)
		if step.status == model.StatusConfirmed {
			expected += balanceDelta(step.txnType, step.amount)
		}
	}

	got, err := svc.GetWallet(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, expected, got.Balance)
}

func TestWalletService_ArchiveWallet(t *testing.T) {
	store := newTestStore(t)
	svc := NewWalletService(store)
	ctx := context.Background()

	wallet, err := svc.CreateWallet(ctx, "Old", "checking", 0)
	require.NoError(t, err)

	require.NoError(t, svc.ArchiveWallet(ctx, wallet.ID))
	active, err := svc.ListWallets(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, svc.UnarchiveWallet(ctx, wallet.ID))
	active, err = svc.ListWallets(ctx, false)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}
