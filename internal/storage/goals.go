package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/solari/internal/common"
	"github.com/Veraticus/solari/internal/model"
	"github.com/Veraticus/solari/internal/money"
)

// CreateGoal persists a savings goal for an existing wallet.
func (q *queries) CreateGoal(ctx context.Context, goal *model.Goal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if goal == nil {
		return fmt.Errorf("%w: goal", ErrNilParameter)
	}
	if err := validateID(goal.WalletID, "walletID"); err != nil {
		return err
	}

	query := `
		INSERT INTO goals (wallet_id, target_balance, target_date, motivation, completed_at, archived)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := q.q.ExecContext(ctx, query,
		goal.WalletID, int64(goal.TargetBalance), goal.TargetDate,
		goal.Motivation, goal.CompletedAt, goal.Archived)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}

	slog.Debug("created goal", "wallet_id", goal.WalletID)
	return nil
}

const goalColumns = `wallet_id, target_balance, target_date, motivation, completed_at, archived`

// GetGoalByWalletID returns the goal attached to a wallet.
func (q *queries) GetGoalByWalletID(ctx context.Context, walletID int64) (*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(walletID, "walletID"); err != nil {
		return nil, err
	}

	row := q.q.QueryRowContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE wallet_id = ?`, walletID)

	var g model.Goal
	var target int64
	err := row.Scan(&g.WalletID, &target, &g.TargetDate, &g.Motivation,
		&g.CompletedAt, &g.Archived)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("goal: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query goal: %w", err)
	}
	g.TargetBalance = money.Amount(target)
	return &g, nil
}

// UpdateGoal rewrites a goal's mutable fields.
func (q *queries) UpdateGoal(ctx context.Context, goal *model.Goal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if goal == nil {
		return fmt.Errorf("%w: goal", ErrNilParameter)
	}
	if err := validateID(goal.WalletID, "walletID"); err != nil {
		return err
	}

	query := `
		UPDATE goals
		SET target_balance = ?, target_date = ?, motivation = ?, completed_at = ?, archived = ?
		WHERE wallet_id = ?`

	result, err := q.q.ExecContext(ctx, query,
		int64(goal.TargetBalance), goal.TargetDate, goal.Motivation,
		goal.CompletedAt, goal.Archived, goal.WalletID)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	return requireRowAffected(result, "goal")
}

// DeleteGoal removes the goal row. The backing wallet is handled separately.
func (q *queries) DeleteGoal(ctx context.Context, walletID int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(walletID, "walletID"); err != nil {
		return err
	}

	result, err := q.q.ExecContext(ctx, `DELETE FROM goals WHERE wallet_id = ?`, walletID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return requireRowAffected(result, "goal")
}

// ListGoals returns goals ordered by target date.
func (q *queries) ListGoals(ctx context.Context, includeArchived bool) ([]model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + goalColumns + ` FROM goals`
	if !includeArchived {
		query += ` WHERE archived = 0`
	}
	query += ` ORDER BY target_date`

	rows, err := q.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []model.Goal
	for rows.Next() {
		var g model.Goal
		var target int64
		if err := rows.Scan(&g.WalletID, &target, &g.TargetDate, &g.Motivation,
			&g.CompletedAt, &g.Archived); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		g.TargetBalance = money.Amount(target)
		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}
	return goals, nil
}
