package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/solari/internal/common"
	"github.com/Veraticus/solari/internal/model"
	"github.com/Veraticus/solari/internal/money"
	"github.com/Veraticus/solari/internal/service"
)

// GoalService manages savings goals. A goal is a wallet with a target
// attached; the wallet holds the saved money and the goal row holds the
// target, so deposits and withdrawals reuse the wallet machinery.
type GoalService struct {
	store service.Storage
}

// NewGoalService creates a goal service backed by the given storage.
func NewGoalService(store service.Storage) *GoalService {
	return &GoalService{store: store}
}

// GoalWithWallet pairs a goal with its backing wallet for display.
type GoalWithWallet struct {
	Goal   model.Goal
	Wallet model.Wallet
}

// CreateGoal creates a savings goal and its backing wallet in one
// transaction. Goal names share the wallet namespace.
func (s *GoalService) CreateGoal(ctx context.Context, name string, initialBalance, targetBalance money.Amount, targetDate time.Time, motivation string) (*model.Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("goal name: %w", common.ErrInvalidInput)
	}
	if !targetBalance.IsPositive() {
		return nil, fmt.Errorf("target balance must be positive: %w", common.ErrInvalidInput)
	}
	if initialBalance < 0 {
		return nil, fmt.Errorf("initial balance must not be negative: %w", common.ErrInvalidInput)
	}
	if initialBalance > targetBalance {
		return nil, fmt.Errorf("initial balance exceeds target: %w", common.ErrInvalidInput)
	}
	if !targetDate.After(time.Now()) {
		return nil, fmt.Errorf("target date must be in the future: %w", common.ErrInvalidInput)
	}

	goal := &model.Goal{
		TargetBalance: targetBalance,
		TargetDate:    targetDate,
		Motivation:    motivation,
	}

	err := runInTx(ctx, s.store, func(tx service.Tx) error {
		exists, err := tx.WalletExistsByName(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("goal %q: %w", name, common.ErrDuplicateName)
		}

		wallet := &model.Wallet{Name: name, Type: "goal", Balance: initialBalance}
		if err := tx.CreateWallet(ctx, wallet); err != nil {
			return err
		}
		goal.WalletID = wallet.ID
		return tx.CreateGoal(ctx, goal)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("goal created",
		"name", name,
		"target", targetBalance.String(),
		"target_date", targetDate.Format("2006-01-02"))
	return goal, nil
}

// DeleteGoal removes a goal and its backing wallet. Goals whose wallet has
// transaction history cannot be deleted.
func (s *GoalService) DeleteGoal(ctx context.Context, walletID int64) error {
	return runInTx(ctx, s.store, func(tx service.Tx) error {
		if _, err := tx.GetGoalByWalletID(ctx, walletID); err != nil {
			return err
		}
		txnCount, err := tx.CountTransactionsByWallet(ctx, walletID)
		if err != nil {
			return err
		}
		transferCount, err := tx.CountTransfersByWallet(ctx, walletID)
		if err != nil {
			return err
		}
		if txnCount > 0 || transferCount > 0 {
			return fmt.Errorf("goal wallet has history, archive it instead: %w", common.ErrInvalidInput)
		}
		if err := tx.DeleteGoal(ctx, walletID); err != nil {
			return err
		}
		return tx.DeleteWallet(ctx, walletID)
	})
}

// ArchiveGoal archives a goal and its backing wallet together.
func (s *GoalService) ArchiveGoal(ctx context.Context, walletID int64) error {
	return s.setArchived(ctx, walletID, true)
}

// UnarchiveGoal restores an archived goal and its wallet.
func (s *GoalService) UnarchiveGoal(ctx context.Context, walletID int64) error {
	return s.setArchived(ctx, walletID, false)
}

func (s *GoalService) setArchived(ctx context.Context, walletID int64, archived bool) error {
	return runInTx(ctx, s.store, func(tx service.Tx) error {
		goal, err := tx.GetGoalByWalletID(ctx, walletID)
		if err != nil {
			return err
		}
		wallet, err := tx.GetWalletByID(ctx, walletID)
		if err != nil {
			return err
		}
		goal.Archived = archived
		wallet.Archived = archived
		if err := tx.UpdateGoal(ctx, goal); err != nil {
			return err
		}
		return tx.UpdateWallet(ctx, wallet)
	})
}

// UpdateTargetBalance changes the goal's target amount.
func (s *GoalService) UpdateTargetBalance(ctx context.Context, walletID int64, target money.Amount) error {
	if !target.IsPositive() {
		return fmt.Errorf("target balance must be positive: %w", common.ErrInvalidInput)
	}
	return s.update(ctx, walletID, func(goal *model.Goal) { goal.TargetBalance = target })
}

// UpdateTargetDate changes when the goal should be reached.
func (s *GoalService) UpdateTargetDate(ctx context.Context, walletID int64, targetDate time.Time) error {
	return s.update(ctx, walletID, func(goal *model.Goal) { goal.TargetDate = targetDate })
}

// UpdateMotivation changes the goal's motivation note.
func (s *GoalService) UpdateMotivation(ctx context.Context, walletID int64, motivation string) error {
	return s.update(ctx, walletID, func(goal *model.Goal) { goal.Motivation = motivation })
}

func (s *GoalService) update(ctx context.Context, walletID int64, mutate func(*model.Goal)) error {
	return runInTx(ctx, s.store, func(tx service.Tx) error {
		goal, err := tx.GetGoalByWalletID(ctx, walletID)
		if err != nil {
			return err
		}
		mutate(goal)
		return tx.UpdateGoal(ctx, goal)
	})
}

// CompleteGoal stamps the goal achieved once the wallet balance covers the
// target.
func (s *GoalService) CompleteGoal(ctx context.Context, walletID int64) error {
	err := runInTx(ctx, s.store, func(tx service.Tx) error {
		goal, err := tx.GetGoalByWalletID(ctx, walletID)
		if err != nil {
			return err
		}
		wallet, err := tx.GetWalletByID(ctx, walletID)
		if err != nil {
			return err
		}
		if wallet.Balance < goal.TargetBalance {
			return fmt.Errorf("balance %s below target %s: %w",
				wallet.Balance, goal.TargetBalance, common.ErrInvalidInput)
		}
		now := time.Now()
		goal.CompletedAt = &now
		return tx.UpdateGoal(ctx, goal)
	})
	if err != nil {
		return err
	}

	slog.Info("goal completed", "wallet_id", walletID)
	return nil
}

// ReopenGoal clears the achieved stamp.
func (s *GoalService) ReopenGoal(ctx context.Context, walletID int64) error {
	return s.update(ctx, walletID, func(goal *model.Goal) { goal.CompletedAt = nil })
}

// GetGoal returns a goal with its backing wallet.
func (s *GoalService) GetGoal(ctx context.Context, walletID int64) (*GoalWithWallet, error) {
	goal, err := s.store.GetGoalByWalletID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	wallet, err := s.store.GetWalletByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	return &GoalWithWallet{Goal: *goal, Wallet: *wallet}, nil
}

// ListGoals returns goals with their wallets, ordered by target date.
func (s *GoalService) ListGoals(ctx context.Context, includeArchived bool) ([]GoalWithWallet, error) {
	goals, err := s.store.ListGoals(ctx, includeArchived)
	if err != nil {
		return nil, err
	}

	result := make([]GoalWithWallet, 0, len(goals))
	for _, goal := range goals {
		wallet, err := s.store.GetWalletByID(ctx, goal.WalletID)
		if err != nil {
			return nil, err
		}
		result = append(result, GoalWithWallet{Goal: goal, Wallet: *wallet})
	}
	return result, nil
}
