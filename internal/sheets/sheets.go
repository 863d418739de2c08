// Package sheets exports monthly summaries to Google Sheets.
package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Veraticus/solari/internal/common"
	"github.com/Veraticus/solari/internal/ledger"
)

// Config holds the credentials and target spreadsheet for the export.
type Config struct {
	ClientID      string
	ClientSecret  string
	TokenFile     string
	SpreadsheetID string
}

// Validate checks that the export can run.
func (c *Config) Validate() error {
	if c.SpreadsheetID == "" {
		return fmt.Errorf("spreadsheet ID: %w", common.ErrMissingConfig)
	}
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("google oauth client credentials: %w", common.ErrMissingConfig)
	}
	return nil
}

// Writer pushes summaries into a spreadsheet.
type Writer struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewWriter authenticates and creates a writer for the configured
// spreadsheet.
func NewWriter(ctx context.Context, cfg Config) (*Writer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	token, err := GetOrCreateToken(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate with Google: %w", err)
	}

	oauthConfig := oauthConfigFor(cfg)
	client := oauthConfig.Client(ctx, token)

	service, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{service: service, spreadsheetID: cfg.SpreadsheetID}, nil
}

func oauthConfigFor(cfg Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  "http://localhost:8080/callback",
		Scopes:       []string{sheets.SpreadsheetsScope},
	}
}

// WriteMonthlySummary replaces the sheet named after the month (for
// example "2024-03") with the summary's rows.
func (w *Writer) WriteMonthlySummary(ctx context.Context, summary *ledger.MonthlySummary) error {
	sheetName := fmt.Sprintf("%04d-%02d", summary.Year, summary.Month)

	if err := w.ensureSheet(ctx, sheetName); err != nil {
		return err
	}

	values := summaryRows(summary)
	valueRange := &sheets.ValueRange{Values: values}

	clearRange := sheetName + "!A:Z"
	if _, err := w.service.Spreadsheets.Values.Clear(w.spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to clear sheet %s: %w", sheetName, err)
	}

	writeRange := sheetName + "!A1"
	_, err := w.service.Spreadsheets.Values.
		Update(w.spreadsheetID, writeRange, valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	slog.Info("exported monthly summary",
		"sheet", sheetName,
		"rows", len(values))
	return nil
}

// ensureSheet adds the tab if it does not exist yet.
func (w *Writer) ensureSheet(ctx context.Context, sheetName string) error {
	spreadsheet, err := w.service.Spreadsheets.Get(w.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == sheetName {
			return nil
		}
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: sheetName},
			},
		}},
	}
	if _, err := w.service.Spreadsheets.BatchUpdate(w.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to add sheet %s: %w", sheetName, err)
	}
	return nil
}

// summaryRows flattens a summary into spreadsheet rows.
func summaryRows(summary *ledger.MonthlySummary) [][]any {
	rows := [][]any{
		{fmt.Sprintf("Summary %s %d", summary.Month, summary.Year)},
		{},
		{"Category", "Income", "Expense"},
	}
	for _, category := range summary.Categories {
		rows = append(rows, []any{
			category.Name,
			category.Income.Float(),
			category.Expense.Float(),
		})
	}
	rows = append(rows,
		[]any{"Total", summary.TotalIncome.Float(), summary.TotalExpense.Float()},
		[]any{},
		[]any{"Wallet", "Balance"},
	)
	for _, wallet := range summary.Wallets {
		rows = append(rows, []any{wallet.Name, wallet.Balance.Float()})
	}
	rows = append(rows,
		[]any{},
		[]any{"Card debts booked", summary.DebtsBooked.Float()},
		[]any{"Card invoices pending", summary.PendingInvoices.Float()},
	)
	return rows
}
