package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/Veraticus/solari/internal/model"
	"github.com/Veraticus/solari/internal/money"
	"github.com/Veraticus/solari/internal/service"
)

// CategorySummary aggregates one category's confirmed activity for a month.
type CategorySummary struct {
	Name    string
	Income  money.Amount
	Expense money.Amount
}

// MonthlySummary is the data behind the report command and the sheet
// export: confirmed income and expense per category, current wallet
// balances, and the card totals for the month.
type MonthlySummary struct {
	Month           time.Month
	Year            int
	Categories      []CategorySummary
	Wallets         []model.Wallet
	TotalIncome     money.Amount
	TotalExpense    money.Amount
	DebtsBooked     money.Amount
	PendingInvoices money.Amount
}

// BuildMonthlySummary aggregates a month of confirmed activity.
func BuildMonthlySummary(ctx context.Context, store service.Storage, month time.Month, year int) (*MonthlySummary, error) {
	transactions, err := store.ListTransactionsByMonth(ctx, month, year)
	if err != nil {
		return nil, err
	}

	categories, err := store.ListCategories(ctx, true)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	summary := &MonthlySummary{Month: month, Year: year}
	byCategory := make(map[int64]*CategorySummary)

	for _, txn := range transactions {
		if txn.Status != model.StatusConfirmed {
			continue
		}
		entry, ok := byCategory[txn.CategoryID]
		if !ok {
			entry = &CategorySummary{Name: names[txn.CategoryID]}
			byCategory[txn.CategoryID] = entry
		}
		if txn.Type == model.TypeIncome {
			entry.Income += txn.Amount
			summary.TotalIncome += txn.Amount
		} else {
			entry.Expense += txn.Amount
			summary.TotalExpense += txn.Amount
		}
	}

	for _, entry := range byCategory {
		summary.Categories = append(summary.Categories, *entry)
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].Name < summary.Categories[j].Name
	})

	summary.Wallets, err = store.ListWallets(ctx, false)
	if err != nil {
		return nil, err
	}
	summary.DebtsBooked, err = store.TotalDebtAmount(ctx, month, year)
	if err != nil {
		return nil, err
	}
	summary.PendingInvoices, err = store.TotalPendingPayments(ctx, month, year)
	if err != nil {
		return nil, err
	}

	return summary, nil
}
