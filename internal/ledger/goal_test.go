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

func TestGoalService_CreateGoal(t *testing.T) {
	store := newTestStore(t)
	svc := NewGoalService(store)
	ctx := context.Background()
	future := time.Now().AddDate(1, 0, 0)

	goal, err := svc.CreateGoal(ctx, "Vacation", 10000, 500000, future, "Patagonia")
	require.NoError(t, err)
	assert.NotZero(t, goal.WalletID)

	// The backing wallet exists, holds the initial balance, and owns the
	// goal's name.
	wallet, err := store.GetWalletByID(ctx, goal.WalletID)
	require.NoError(t, err)
	assert.Equal(t, "Vacation", wallet.Name)
	assert.Equal(t, money.Amount(10000), wallet.Balance)
	assert.Equal(t, "goal", wallet.Type)
}

func TestGoalService_CreateGoalValidation(t *testing.T) {
	store := newTestStore(t)
	svc := NewGoalService(store)
	wallets := NewWalletService(store)
	ctx := context.Background()
	future := time.Now().AddDate(1, 0, 0)
	past := time.Now().AddDate(-1, 0, 0)

	_, err := wallets.CreateWallet(ctx, "Checking", "checking", 0)
	require.NoError(t, err)

	tests := []struct {
		name           string
		goalName       string
		initialBalance money.Amount
		targetBalance  money.Amount
		targetDate     time.Time
		wantErr        error
	}{
		{"blank name", " ", 0, 1000, future, common.ErrInvalidInput},
		{"name taken by wallet", "Checking", 0, 1000, future, common.ErrDuplicateName},
		{"zero target", "A", 0, 0, future, common.ErrInvalidInput},
		{"negative initial", "B", -1, 1000, future, common.ErrInvalidInput},
		{"initial above target", "C", 2000, 1000, future, common.ErrInvalidInput},
		{"past target date", "D", 0, 1000, past, common.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateGoal(ctx, tt.goalName, tt.initialBalance,
				tt.targetBalance, tt.targetDate, "")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGoalService_CompleteAndReopen(t *testing.T) {
	store := newTestStore(t)
	svc := NewGoalService(store)
	wallets := NewWalletService(store)
	ctx := context.Background()
	category := newTestCategory(t, store, "Savings")
	future := time.Now().AddDate(1, 0, 0)

	goal, err := svc.CreateGoal(ctx, "Vacation", 0, 50000, future, "")
	require.NoError(t, err)

	// Below target: completing fails.
	assert.ErrorIs(t, svc.CompleteGoal(ctx, goal.WalletID), common.ErrInvalidInput)

	// Fund the goal through the normal wallet machinery.
	_, err = wallets.AddTransaction(ctx, goal.WalletID, category.ID,
		model.TypeIncome, model.StatusConfirmed, time.Now(), 50000, "deposit")
	require.NoError(t, err)

	require.NoError(t, svc.CompleteGoal(ctx, goal.WalletID))
	got, err := svc.GetGoal(ctx, goal.WalletID)
	require.NoError(t, err)
	assert.True(t, got.Goal.Completed())
	assert.InDelta(t, 1.0, got.Goal.Progress(got.Wallet.Balance), 0.001)

	require.NoError(t, svc.ReopenGoal(ctx, goal.WalletID))
	got, err = svc.GetGoal(ctx, goal.WalletID)
	require.NoError(t, err)
	assert.False(t, got.Goal.Completed())
}

func TestGoalService_DeleteGoal(t *testing.T) {
	store := newTestStore(t)
	svc := NewGoalService(store)
	wallets := NewWalletService(store)
	ctx := context.Background()
	category := newTestCategory(t, store, "Savings")
	future := time.Now().AddDate(1, 0, 0)

	empty, err := svc.CreateGoal(ctx, "Empty", 0, 1000, future, "")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteGoal(ctx, empty.WalletID))
	// Both the goal and the backing wallet are gone.
	_, err = store.GetWalletByID(ctx, empty.WalletID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	funded, err := svc.CreateGoal(ctx, "Funded", 0, 1000, future, "")
	require.NoError(t, err)
	_, err = wallets.AddTransaction(ctx, funded.WalletID, category.ID,
		model.TypeIncome, model.StatusConfirmed, time.Now(), 100, "deposit")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.DeleteGoal(ctx, funded.WalletID), common.ErrInvalidInput)
}

func TestGoalService_Updates(t *testing.T) {
	store := newTestStore(t)
	svc := NewGoalService(store)
	ctx := context.Background()
	future := time.Now().AddDate(1, 0, 0)

	goal, err := svc.CreateGoal(ctx, "Vacation", 0, 50000, future, "old reason")
	require.NoError(t, err)

	newDate := future.AddDate(0, 6, 0)
	require.NoError(t, svc.UpdateTargetBalance(ctx, goal.WalletID, 75000))
	require.NoError(t, svc.UpdateTargetDate(ctx, goal.WalletID, newDate))
	require.NoError(t, svc.UpdateMotivation(ctx, goal.WalletID, "new reason"))

	got, err := svc.GetGoal(ctx, goal.WalletID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(75000), got.Goal.TargetBalance)
	assert.Equal(t, "new reason", got.Goal.Motivation)

	assert.ErrorIs(t, svc.UpdateTargetBalance(ctx, goal.WalletID, 0), common.ErrInvalidInput)
}

func TestGoalService_ArchiveGoal(t *testing.T) {
	store := newTestStore(t)
	svc := NewGoalService(store)
	ctx := context.Background()
	future := time.Now().AddDate(1, 0, 0)

	goal, err := svc.CreateGoal(ctx, "Vacation", 0, 50000, future, "")
	require.NoError(t, err)

	require.NoError(t, svc.ArchiveGoal(ctx, goal.WalletID))

	goals, err := svc.ListGoals(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, goals)

	// The backing wallet is archived with it.
	wallet, err := store.GetWalletByID(ctx, goal.WalletID)
	require.NoError(t, err)
	assert.True(t, wallet.Archived)

	require.NoError(t, svc.UnarchiveGoal(ctx, goal.WalletID))
	goals, err = svc.ListGoals(ctx, false)
	require.NoError(t, err)
	assert.Len(t, goals, 1)
}
