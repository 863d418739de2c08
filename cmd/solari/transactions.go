package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Veraticus/solari/internal/cli"
	"github.com/Veraticus/solari/internal/ledger"
	"github.com/Veraticus/solari/internal/model"
	"github.com/spf13/cobra"
)

func txnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "txn",
		Short: "Manage wallet transactions",
		Long:  `Add, confirm, list, and delete income and expense transactions.`,
	}

	cmd.AddCommand(addTxnCmd())
	cmd.AddCommand(confirmTxnCmd())
	cmd.AddCommand(deleteTxnCmd())
	cmd.AddCommand(listTxnCmd())
	cmd.AddCommand(pendingTxnCmd())

	return cmd
}

func addTxnCmd() *cobra.Command {
	var (
		txnType     string
		dateFlag    string
		description string
		pending     bool
	)

	cmd := &cobra.Command{
		Use:   "add <wallet> <category> <amount>",
		Short: "Add a transaction",
		Long: `Record an income or expense on a wallet. Confirmed transactions apply
to the balance immediately; use --pending for expected activity.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}
			date, err := parseDate(dateFlag)
			if err != nil {
				return err
			}

			kind := model.TransactionType(txnType)
			status := model.StatusConfirmed
			if pending {
				status = model.StatusPending
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			wallet, err := resolveWallet(ctx, store, args[0])
			if err != nil {
				return fmt.Errorf("wallet %q: %w", args[0], err)
			}
			category, err := resolveCategory(ctx, store, args[1])
			if err != nil {
				return fmt.Errorf("category %q: %w", args[1], err)
			}

			txn, err := ledger.NewWalletService(store).AddTransaction(ctx,
				wallet.ID, category.ID, kind, status, date, amount, description)
			if err != nil {
				return fmt.Errorf("failed to add transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s %s of %s on %q (ID: %d)",
				status, kind, amount, wallet.Name, txn.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&txnType, "type", "expense", "Transaction type (income, expense)")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Transaction date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&description, "desc", "", "Description")
	cmd.Flags().BoolVar(&pending, "pending", false, "Record as pending instead of confirmed")

	return cmd
}

func confirmTxnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <id>",
		Short: "Confirm a pending transaction",
		Long:  `Apply a pending transaction's amount to its wallet balance.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := ledger.NewWalletService(store).ConfirmTransaction(ctx, id); err != nil {
				return fmt.Errorf("failed to confirm transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Confirmed transaction %d", id)))
			return nil
		},
	}
}

func deleteTxnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Long:  `Delete a transaction. If it was confirmed, its effect on the wallet balance is reversed.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := ledger.NewWalletService(store).DeleteTransaction(ctx, id); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted transaction %d", id)))
			return nil
		},
	}
}

func listTxnCmd() *cobra.Command {
	var (
		walletRef string
		month     int
		year      int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long:  `List transactions for a wallet, or for a month across all wallets.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			var transactions []model.WalletTransaction
			if walletRef != "" {
				wallet, err := resolveWallet(ctx, store, walletRef)
				if err != nil {
					return fmt.Errorf("wallet %q: %w", walletRef, err)
				}
				transactions, err = store.ListTransactionsByWallet(ctx, wallet.ID)
				if err != nil {
					return fmt.Errorf("failed to list transactions: %w", err)
				}
			} else {
				m, y, err := parseMonthYear(month, year)
				if err != nil {
					return err
				}
				transactions, err = store.ListTransactionsByMonth(ctx, m, y)
				if err != nil {
					return fmt.Errorf("failed to list transactions: %w", err)
				}
			}

			return printTransactions(transactions)
		},
	}

	cmd.Flags().StringVar(&walletRef, "wallet", "", "Wallet ID or name")
	cmd.Flags().IntVar(&month, "month", 0, "Month to list (1-12, default current)")
	cmd.Flags().IntVar(&year, "year", 0, "Year to list (default current)")

	return cmd
}

func pendingTxnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List pending transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			transactions, err := store.ListPendingTransactions(ctx)
			if err != nil {
				return fmt.Errorf("failed to list pending transactions: %w", err)
			}

			return printTransactions(transactions)
		},
	}
}

func printTransactions(transactions []model.WalletTransaction) error {
	if len(transactions) == 0 {
		fmt.Println(cli.InfoStyle.Render("No transactions found."))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("ID"),
		cli.TableHeaderStyle.Render("Date"),
		cli.TableHeaderStyle.Render("Type"),
		cli.TableHeaderStyle.Render("Status"),
		cli.TableHeaderStyle.Render("Amount"),
		cli.TableHeaderStyle.Render("Description"))

	for _, txn := range transactions {
		amount := cli.ExpenseStyle.Render("-" + txn.Amount.String())
		if txn.Type == model.TypeIncome {
			amount = cli.IncomeStyle.Render("+" + txn.Amount.String())
		}
		status := string(txn.Status)
		if txn.Status == model.StatusPending {
			status = cli.WarningStyle.Render(status)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			txn.ID, txn.Date.Format("2006-01-02"), txn.Type, status, amount, txn.Description)
	}

	return nil
}
