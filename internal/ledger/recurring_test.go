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

func TestRecurringService_CreateRecurring(t *testing.T) {
	store := newTestStore(t)
	svc := NewRecurringService(store)
	wallets := NewWalletService(store)
	ctx := context.Background()
	category := newTestCategory(t, store, "Rent")

	wallet, err := wallets.CreateWallet(ctx, "Checking", "checking", 0)
	require.NoError(t, err)

	start := date(2024, time.January, 1)
	recurring, err := svc.CreateRecurring(ctx, wallet.ID, category.ID,
		model.TypeExpense, 120000, "rent", start, nil, model.FrequencyMonthly)
	require.NoError(t, err)
	assert.NotZero(t, recurring.ID)
	assert.True(t, recurring.NextDueDate.Equal(start))
	assert.Equal(t, model.RecurringActive, recurring.Status)

	// Validation failures.
	_, err = svc.CreateRecurring(ctx, wallet.ID, category.ID,
		model.TypeExpense, 0, "", start, nil, model.FrequencyMonthly)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	_, err = svc.CreateRecurring(ctx, wallet.ID, category.ID,
		model.TypeExpense, 100, "", start, nil, "fortnightly")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	earlier := start.AddDate(0, -1, 0)
	_, err = svc.CreateRecurring(ctx, wallet.ID, category.ID,
		model.TypeExpense, 100, "", start, &earlier, model.FrequencyMonthly)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	_, err = svc.CreateRecurring(ctx, 999, category.ID,
		model.TypeExpense, 100, "", start, nil, model.FrequencyMonthly)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRecurringService_ProcessDue(t *testing.T) {
	store := newTestStore(t)
	svc := NewRecurringService(store)
	wallets := NewWalletService(store)
	ctx := context.Background()
	category := newTestCategory(t, store, "Rent")

	wallet, err := wallets.CreateWallet(ctx, "Checking", "checking", 500000)
	require.NoError(t, err)

	start := date(2024, time.January, 1)
	recurring, err := svc.CreateRecurring(ctx, wallet.ID, category.ID,
		model.TypeExpense, 120000, "rent", start, nil, model.FrequencyMonthly)
	require.NoError(t, err)

	// Three months elapsed: January, February, and March are due.
	spawned, err := svc.ProcessDue(ctx, date(2024, time.March, 15))
	require.NoError(t, err)
	assert.Equal(t, 3, spawned)

	// Spawned transactions are pending, dated on their due dates, and the
	// balance is untouched.
	pending, err := store.ListPendingTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	for _, txn := range pending {
		assert.Equal(t, model.StatusPending, txn.Status)
		assert.Equal(t, money.Amount(120000), txn.Amount)
	}
	gotWallet, err := wallets.GetWallet(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(500000), gotWallet.Balance)

	// The schedule advanced past March; a second run spawns nothing.
	got, err := svc.GetRecurring(ctx, recurring.ID)
	require.NoError(t, err)
	assert.True(t, got.NextDueDate.Equal(date(2024, time.April, 1)))

	spawned, err = svc.ProcessDue(ctx, date(2024, time.March, 15))
	require.NoError(t, err)
	assert.Zero(t, spawned)
}

func TestRecurringService_ProcessDueRespectsEndDate(t *testing.T) {
	store := newTestStore(t)
	svc := NewRecurringService(store)
	wallets := NewWalletService(store)
	ctx := context.Background()
	category := newTestCategory(t, store, "Gym")

	wallet, err := wallets.CreateWallet(ctx, "Checking", "checking", 0)
	require.NoError(t, err)

	start := date(2024, time.January, 1)
	end := date(2024, time.February, 15)
	recurring, err := svc.CreateRecurring(ctx, wallet.ID, category.ID,
		model.TypeExpense, 5000, "gym", start, &end, model.FrequencyMonthly)
	require.NoError(t, err)

	// Due dates within the window: Jan 1 and Feb 1. March 1 is past the end,
	// so the template deactivates.
	spawned, err := svc.ProcessDue(ctx, date(2024, time.June, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, spawned)

	got, err := svc.GetRecurring(ctx, recurring.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RecurringInactive, got.Status)
}

func TestRecurringService_StopAndDelete(t *testing.T) {
	store := newTestStore(t)
	svc := NewRecurringService(store)
	wallets := NewWalletService(store)
	ctx := context.Background()
	category := newTestCategory(t, store, "Rent")

	wallet, err := wallets.CreateWallet(ctx, "Checking", "checking", 0)
	require.NoError(t, err)

	recurring, err := svc.CreateRecurring(ctx, wallet.ID, category.ID,
		model.TypeExpense, 120000, "rent", date(2024, time.January, 1), nil, model.FrequencyMonthly)
	require.NoError(t, err)

	require.NoError(t, svc.StopRecurring(ctx, recurring.ID))

	// Stopped templates spawn nothing.
	spawned, err := svc.ProcessDue(ctx, date(2024, time.December, 1))
	require.NoError(t, err)
	assert.Zero(t, spawned)

	active, err := svc.ListRecurring(ctx, model.RecurringActive)
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, svc.DeleteRecurring(ctx, recurring.ID))
	assert.ErrorIs(t, svc.DeleteRecurring(ctx, recurring.ID), common.ErrNotFound)
}

func TestFrequency_Next(t *testing.T) {
	base := date(2024, time.January, 31)

	assert.True(t, model.FrequencyDaily.Next(base).Equal(date(2024, time.February, 1)))
	assert.True(t, model.FrequencyWeekly.Next(base).Equal(date(2024, time.February, 7)))
	assert.True(t, model.FrequencyYearly.Next(base).Equal(date(2025, time.January, 31)))
}
