package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/Veraticus/solari/internal/cli"
	"github.com/Veraticus/solari/internal/ledger"
	"github.com/Veraticus/solari/internal/model"
	"github.com/spf13/cobra"
)

func recurringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage recurring transactions",
		Long: `Set up templates for repeating income or expenses (rent, salary,
subscriptions). Due occurrences are spawned as pending transactions.`,
	}

	cmd.AddCommand(createRecurringCmd())
	cmd.AddCommand(listRecurringCmd())
	cmd.AddCommand(stopRecurringCmd())
	cmd.AddCommand(deleteRecurringCmd())
	cmd.AddCommand(processRecurringCmd())

	return cmd
}

func createRecurringCmd() *cobra.Command {
	var (
		txnType     string
		frequency   string
		startDate   string
		endDate     string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create <wallet> <category> <amount>",
		Short: "Create a recurring transaction template",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}
			start, err := parseDate(startDate)
			if err != nil {
				return err
			}
			var end *time.Time
			if endDate != "" {
				parsed, err := parseDate(endDate)
				if err != nil {
					return err
				}
				end = &parsed
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

			recurring, err := ledger.NewRecurringService(store).CreateRecurring(ctx,
				wallet.ID, category.ID, model.TransactionType(txnType), amount,
				description, start, end, model.Frequency(frequency))
			if err != nil {
				return fmt.Errorf("failed to create recurring transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created %s recurring %s of %s on %q, next due %s (ID: %d)",
				frequency, txnType, amount, wallet.Name,
				recurring.NextDueDate.Format("2006-01-02"), recurring.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&txnType, "type", "expense", "Transaction type (income, expense)")
	cmd.Flags().StringVar(&frequency, "freq", "monthly", "Frequency (daily, weekly, monthly, yearly)")
	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, optional)")
	cmd.Flags().StringVar(&description, "desc", "", "Description")

	return cmd
}

func listRecurringCmd() *cobra.Command {
	var inactive bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recurring transaction templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			status := model.RecurringActive
			if inactive {
				status = model.RecurringInactive
			}

			templates, err := ledger.NewRecurringService(store).ListRecurring(ctx, status)
			if err != nil {
				return fmt.Errorf("failed to list recurring transactions: %w", err)
			}

			if len(templates) == 0 {
				fmt.Println(cli.InfoStyle.Render("No recurring transactions found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Type"),
				cli.TableHeaderStyle.Render("Amount"),
				cli.TableHeaderStyle.Render("Frequency"),
				cli.TableHeaderStyle.Render("Next due"),
				cli.TableHeaderStyle.Render("Description"))

			for _, r := range templates {
				amount := cli.ExpenseStyle.Render("-" + r.Amount.String())
				if r.Type == model.TypeIncome {
					amount = cli.IncomeStyle.Render("+" + r.Amount.String())
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					r.ID, r.Type, amount, r.Frequency,
					r.NextDueDate.Format("2006-01-02"), r.Description)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&inactive, "inactive", false, "List stopped templates instead of active ones")

	return cmd
}

func stopRecurringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop <id>",
		Short: "Stop a recurring transaction",
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

			if err := ledger.NewRecurringService(store).StopRecurring(ctx, id); err != nil {
				return fmt.Errorf("failed to stop recurring transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Stopped recurring transaction %d", id)))
			return nil
		},
	}
}

func deleteRecurringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recurring transaction template",
		Long:  `Delete a template. Transactions it already spawned are untouched.`,
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

			if err := ledger.NewRecurringService(store).DeleteRecurring(ctx, id); err != nil {
				return fmt.Errorf("failed to delete recurring transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted recurring transaction %d", id)))
			return nil
		},
	}
}

func processRecurringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Spawn pending transactions for due templates",
		Long: `Walk every active template and spawn a pending transaction for each
elapsed due date. The spawned transactions show up in 'solari review'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			spawned, err := ledger.NewRecurringService(store).ProcessDue(ctx, time.Now().UTC())
			if err != nil {
				return fmt.Errorf("failed to process recurring transactions: %w", err)
			}

			if spawned == 0 {
				fmt.Println(cli.InfoStyle.Render("Nothing due."))
				return nil
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Spawned %d pending transaction(s). Run 'solari review' to confirm them.", spawned)))
			return nil
		},
	}
}
