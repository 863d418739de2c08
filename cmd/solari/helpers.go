package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/solari/internal/common"
	"github.com/Veraticus/solari/internal/config"
	"github.com/Veraticus/solari/internal/model"
	"github.com/Veraticus/solari/internal/money"
	"github.com/Veraticus/solari/internal/service"
	"github.com/Veraticus/solari/internal/storage"
	"github.com/spf13/viper"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDBPath
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// parseAmount converts a command-line amount like "120.50" to cents.
func parseAmount(s string) (money.Amount, error) {
	amount, err := money.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return amount, nil
}

// parseDate parses a --date flag value. An empty value means today.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return date, nil
}

// parseMonthYear validates the month/year pair used by report and invoice
// commands. Zero values default to the current month.
func parseMonthYear(month, year int) (time.Month, int, error) {
	now := time.Now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month %d", month)
	}
	if year < 1900 || year > 9999 {
		return 0, 0, fmt.Errorf("invalid year %d", year)
	}
	return time.Month(month), year, nil
}

// resolveWallet looks up a wallet by numeric ID or by name.
func resolveWallet(ctx context.Context, store service.Storage, ref string) (*model.Wallet, error) {
	var wallet *model.Wallet
	var err error
	if id, perr := strconv.ParseInt(ref, 10, 64); perr == nil {
		wallet, err = store.GetWalletByID(ctx, id)
	} else {
		wallet, err = store.GetWalletByName(ctx, ref)
	}
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NewUserError(fmt.Sprintf("no wallet matching %q", ref), err)
	}
	return wallet, err
}

// resolveCategory looks up a category by numeric ID or by name.
func resolveCategory(ctx context.Context, store service.Storage, ref string) (*model.Category, error) {
	var category *model.Category
	var err error
	if id, perr := strconv.ParseInt(ref, 10, 64); perr == nil {
		category, err = store.GetCategoryByID(ctx, id)
	} else {
		category, err = store.GetCategoryByName(ctx, ref)
	}
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NewUserError(fmt.Sprintf("no category matching %q", ref), err)
	}
	return category, err
}

// resolveCard looks up a credit card by numeric ID or by name.
func resolveCard(ctx context.Context, store service.Storage, ref string) (*model.CreditCard, error) {
	var card *model.CreditCard
	var err error
	if id, perr := strconv.ParseInt(ref, 10, 64); perr == nil {
		card, err = store.GetCreditCardByID(ctx, id)
	} else {
		card, err = store.GetCreditCardByName(ctx, ref)
	}
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NewUserError(fmt.Sprintf("no credit card matching %q", ref), err)
	}
	return card, err
}

// parseID converts a positional argument to an int64 row ID.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ID %q: %w", arg, err)
	}
	return id, nil
}
