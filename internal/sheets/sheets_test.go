package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/solari/internal/common"
	"github.com/Veraticus/solari/internal/ledger"
	"github.com/Veraticus/solari/internal/model"
)

func TestConfig_Validate(t *testing.T) {
	valid := Config{ClientID: "id", ClientSecret: "secret", SpreadsheetID: "sheet"}
	assert.NoError(t, valid.Validate())

	noSheet := Config{ClientID: "id", ClientSecret: "secret"}
	assert.ErrorIs(t, noSheet.Validate(), common.ErrMissingConfig)

	noCreds := Config{SpreadsheetID: "sheet"}
	assert.ErrorIs(t, noCreds.Validate(), common.ErrMissingConfig)
}

func TestSummaryRows(t *testing.T) {
	summary := &ledger.MonthlySummary{
		Month: time.March,
		Year:  2024,
		Categories: []ledger.CategorySummary{
			{Name: "Groceries", Expense: 45000},
			{Name: "Salary", Income: 300000},
		},
		Wallets:      []model.Wallet{{Name: "Checking", Balance: 123456}},
		TotalIncome:  300000,
		TotalExpense: 45000,
		DebtsBooked:  20000,
	}

	rows := summaryRows(summary)

	assert.Equal(t, []any{"Summary March 2024"}, rows[0])
	assert.Equal(t, []any{"Category", "Income", "Expense"}, rows[2])
	assert.Equal(t, []any{"Groceries", 0.0, 450.0}, rows[3])
	assert.Equal(t, []any{"Salary", 3000.0, 0.0}, rows[4])
	assert.Equal(t, []any{"Total", 3000.0, 450.0}, rows[5])
	assert.Contains(t, rows, []any{"Checking", 1234.56})
	assert.Contains(t, rows, []any{"Card debts booked", 200.0})
}
