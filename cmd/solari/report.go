package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/Veraticus/solari/internal/cli"
	"github.com/Veraticus/solari/internal/config"
	"github.com/Veraticus/solari/internal/ledger"
	"github.com/Veraticus/solari/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func reportCmd() *cobra.Command {
	var (
		month       int
		year        int
		exportSheet string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show a monthly summary",
		Long: `Summarize a month: confirmed income and expenses per category, wallet
balances, and credit card totals. Optionally export the same summary
to a Google Sheets spreadsheet.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			m, y, err := parseMonthYear(month, year)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			// Spawn anything due first so the month is current.
			if _, err := ledger.NewRecurringService(store).ProcessDue(ctx, time.Now().UTC()); err != nil {
				return fmt.Errorf("failed to process recurring transactions: %w", err)
			}

			summary, err := ledger.BuildMonthlySummary(ctx, store, m, y)
			if err != nil {
				return fmt.Errorf("failed to build summary: %w", err)
			}

			printSummary(summary)

			if exportSheet != "" {
				if err := exportSummary(cmd, summary, exportSheet); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&month, "month", "m", 0, "Month to report (1-12, default current)")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Year to report (default current)")
	cmd.Flags().StringVar(&exportSheet, "export-sheet", "", "Google Sheets spreadsheet ID to export to")

	return cmd
}

func printSummary(summary *ledger.MonthlySummary) {
	fmt.Println(cli.FormatTitle(fmt.Sprintf("%s %d", summary.Month, summary.Year)))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("Category"),
		cli.TableHeaderStyle.Render("Income"),
		cli.TableHeaderStyle.Render("Expense"))
	for _, cat := range summary.Categories {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			cli.TableCellStyle.Render(cat.Name),
			cli.IncomeStyle.Render(cat.Income.String()),
			cli.ExpenseStyle.Render(cat.Expense.String()))
	}
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		cli.BoldStyle.Render("Total"),
		cli.IncomeStyle.Render(summary.TotalIncome.String()),
		cli.ExpenseStyle.Render(summary.TotalExpense.String()))
	w.Flush()

	fmt.Println()
	fmt.Println(cli.SubtitleStyle.Render("Wallets"))
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, wallet := range summary.Wallets {
		fmt.Fprintf(w, "%s\t%s\n", wallet.Name, wallet.Balance)
	}
	w.Flush()

	fmt.Println()
	fmt.Println(cli.RenderBox(fmt.Sprintf("%s %s Cards", cli.ChartIcon, cli.CardIcon),
		fmt.Sprintf("Debts booked this month: %s\nPending invoices this month: %s",
			summary.DebtsBooked, summary.PendingInvoices)))
}

func exportSummary(cmd *cobra.Command, summary *ledger.MonthlySummary, spreadsheetID string) error {
	ctx := cmd.Context()

	tokenFile := viper.GetString("sheets.token_file")
	if tokenFile == "" {
		tokenFile = "~/.config/solari/sheets-token.json"
	}

	cfg := sheets.Config{
		ClientID:      viper.GetString("sheets.client_id"),
		ClientSecret:  viper.GetString("sheets.client_secret"),
		TokenFile:     config.ExpandPath(tokenFile),
		SpreadsheetID: spreadsheetID,
	}

	writer, err := sheets.NewWriter(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to Google Sheets: %w", err)
	}

	if err := writer.WriteMonthlySummary(ctx, summary); err != nil {
		return fmt.Errorf("failed to export summary: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %s %d to spreadsheet %s", summary.Month, summary.Year, spreadsheetID)))
	return nil
}
