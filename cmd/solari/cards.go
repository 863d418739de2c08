package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/solari/internal/cli"
	"github.com/Veraticus/solari/internal/ledger"
	"github.com/Veraticus/solari/internal/money"
	"github.com/spf13/cobra"
)

func cardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Manage credit cards and debts",
		Long: `Register credit cards, book purchases as installment debts against
them, and pay monthly invoices from a wallet.`,
	}

	cmd.AddCommand(createCardCmd())
	cmd.AddCommand(listCardsCmd())
	cmd.AddCommand(archiveCardCmd())
	cmd.AddCommand(unarchiveCardCmd())
	cmd.AddCommand(deleteCardCmd())
	cmd.AddCommand(registerDebtCmd())
	cmd.AddCommand(deleteDebtCmd())
	cmd.AddCommand(showInvoiceCmd())
	cmd.AddCommand(payInvoiceCmd())

	return cmd
}

func createCardCmd() *cobra.Command {
	var (
		operator   string
		dueDay     int
		closingDay int
		limit      string
		lastFour   string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Register a credit card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			maxDebt, err := parseAmount(limit)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			card, err := ledger.NewCreditCardService(store).CreateCreditCard(ctx,
				args[0], operator, dueDay, closingDay, maxDebt, lastFour)
			if err != nil {
				return fmt.Errorf("failed to create credit card: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created card %q (ID: %d), limit %s, invoice due day %d",
				card.Name, card.ID, card.MaxDebt, card.BillingDueDay)))
			return nil
		},
	}

	cmd.Flags().StringVar(&operator, "operator", "", "Card operator (e.g. Visa)")
	cmd.Flags().IntVar(&dueDay, "due-day", 10, "Invoice due day of month (1-28)")
	cmd.Flags().IntVar(&closingDay, "closing-day", 5, "Statement closing day of month (1-28)")
	cmd.Flags().StringVar(&limit, "limit", "0", "Credit limit")
	cmd.Flags().StringVar(&lastFour, "last-four", "0000", "Last four digits of the card number")

	return cmd
}

func listCardsCmd() *cobra.Command {
	var includeArchived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List credit cards with available credit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := ledger.NewCreditCardService(store)
			cards, err := svc.ListCreditCards(ctx, includeArchived)
			if err != nil {
				return fmt.Errorf("failed to list cards: %w", err)
			}

			if len(cards) == 0 {
				fmt.Println(cli.InfoStyle.Render("No credit cards found. Use 'solari cards create' to add one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Operator"),
				cli.TableHeaderStyle.Render("Last 4"),
				cli.TableHeaderStyle.Render("Limit"),
				cli.TableHeaderStyle.Render("Available"),
				cli.TableHeaderStyle.Render("Due day"))

			for _, card := range cards {
				available, err := svc.GetAvailableCredit(ctx, card.ID)
				if err != nil {
					return fmt.Errorf("failed to compute available credit: %w", err)
				}
				availStr := cli.IncomeStyle.Render(available.String())
				if available <= 0 {
					availStr = cli.ExpenseStyle.Render(available.String())
				}
				fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\t%s\t%s\t%d\n",
					card.ID, cli.CardIcon, card.Name, card.Operator, card.LastFourDigits,
					card.MaxDebt, availStr, card.BillingDueDay)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&includeArchived, "all", false, "Include archived cards")

	return cmd
}

func archiveCardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <card>",
		Short: "Archive a credit card",
		Long:  `Archive a card so it stops showing in listings. Fails while the card still has pending installments.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			card, err := resolveCard(ctx, store, args[0])
			if err != nil {
				return fmt.Errorf("card %q: %w", args[0], err)
			}

			if err := ledger.NewCreditCardService(store).ArchiveCreditCard(ctx, card.ID); err != nil {
				return fmt.Errorf("failed to archive card: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Archived card %q", card.Name)))
			return nil
		},
	}
}

func unarchiveCardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unarchive <card>",
		Short: "Restore an archived credit card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			card, err := resolveCard(ctx, store, args[0])
			if err != nil {
				return fmt.Errorf("card %q: %w", args[0], err)
			}

			if err := ledger.NewCreditCardService(store).UnarchiveCreditCard(ctx, card.ID); err != nil {
				return fmt.Errorf("failed to unarchive card: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Restored card %q", card.Name)))
			return nil
		},
	}
}

func deleteCardCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <card>",
		Short: "Delete a credit card",
		Long:  `Delete a card. This fails while the card still has registered debts.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			card, err := resolveCard(ctx, store, args[0])
			if err != nil {
				return fmt.Errorf("card %q: %w", args[0], err)
			}

			if !force {
				fmt.Printf("Are you sure you want to delete card %q? (y/N): ", card.Name)
				var response string
				fmt.Scanln(&response)
				if strings.ToLower(response) != "y" {
					fmt.Println("Deletion cancelled.")
					return nil
				}
			}

			if err := ledger.NewCreditCardService(store).DeleteCreditCard(ctx, card.ID); err != nil {
				return fmt.Errorf("failed to delete card: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted card %q", card.Name)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

func registerDebtCmd() *cobra.Command {
	var (
		installments int
		dateFlag     string
		description  string
	)

	cmd := &cobra.Command{
		Use:   "debt <card> <category> <amount>",
		Short: "Register a purchase on a card",
		Long: `Book a purchase as a debt on a card, split into monthly installments.
Each installment falls due on the card's billing day of the following
months; any remainder cents land on the final installment.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			total, err := parseAmount(args[2])
			if err != nil {
				return err
			}
			date, err := parseDate(dateFlag)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			card, err := resolveCard(ctx, store, args[0])
			if err != nil {
				return fmt.Errorf("card %q: %w", args[0], err)
			}
			category, err := resolveCategory(ctx, store, args[1])
			if err != nil {
				return fmt.Errorf("category %q: %w", args[1], err)
			}

			svc := ledger.NewCreditCardService(store)
			debt, err := svc.RegisterDebt(ctx, card.ID, category.ID, date, total, installments, description)
			if err != nil {
				return fmt.Errorf("failed to register debt: %w", err)
			}

			payments, err := svc.ListPayments(ctx, debt.ID)
			if err != nil {
				return fmt.Errorf("failed to list installments: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Registered debt of %s on %q in %d installment(s) (ID: %d)",
				total, card.Name, installments, debt.ID)))
			for _, p := range payments {
				fmt.Printf("  %d/%d  %s due %s\n",
					p.InstallmentNumber, len(payments), p.Amount, p.DueDate.Format("2006-01-02"))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&installments, "installments", 1, "Number of monthly installments (1-36)")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Purchase date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&description, "desc", "", "Description")

	return cmd
}

func deleteDebtCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete-debt <id>",
		Short: "Delete a registered debt",
		Long:  `Delete a debt and its installment schedule. Installments already paid are refunded to the paying wallet.`,
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

			if !force {
				fmt.Printf("Are you sure you want to delete debt %d? (y/N): ", id)
				var response string
				fmt.Scanln(&response)
				if strings.ToLower(response) != "y" {
					fmt.Println("Deletion cancelled.")
					return nil
				}
			}

			if err := ledger.NewCreditCardService(store).DeleteDebt(ctx, id); err != nil {
				return fmt.Errorf("failed to delete debt: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted debt %d", id)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

func showInvoiceCmd() *cobra.Command {
	var (
		month int
		year  int
	)

	cmd := &cobra.Command{
		Use:   "invoice <card>",
		Short: "Show a card's pending invoice for a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			card, err := resolveCard(ctx, store, args[0])
			if err != nil {
				return fmt.Errorf("card %q: %w", args[0], err)
			}

			payments, err := store.ListPendingPaymentsByCardMonth(ctx, card.ID, m, y)
			if err != nil {
				return fmt.Errorf("failed to list invoice: %w", err)
			}

			if len(payments) == 0 {
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("No pending installments on %q for %s %d.", card.Name, m, y)))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Due"),
				cli.TableHeaderStyle.Render("Installment"),
				cli.TableHeaderStyle.Render("Debt"),
				cli.TableHeaderStyle.Render("Amount"))

			var total money.Amount
			for _, p := range payments {
				fmt.Fprintf(w, "%s\t#%d\t%d\t%s\n",
					p.DueDate.Format("2006-01-02"), p.InstallmentNumber, p.DebtID, p.Amount)
				total += p.Amount
			}
			w.Flush()

			fmt.Println(cli.BoldStyle.Render(fmt.Sprintf("Invoice total: %s", total)))
			return nil
		},
	}

	cmd.Flags().IntVar(&month, "month", 0, "Invoice month (1-12, default current)")
	cmd.Flags().IntVar(&year, "year", 0, "Invoice year (default current)")

	return cmd
}

func payInvoiceCmd() *cobra.Command {
	var (
		walletRef string
		month     int
		year      int
	)

	cmd := &cobra.Command{
		Use:   "pay-invoice <card>",
		Short: "Pay a card's monthly invoice from a wallet",
		Long: `Pay every pending installment of a card due in the given month from
one wallet. The wallet is debited by the invoice total atomically.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if walletRef == "" {
				return fmt.Errorf("--wallet is required")
			}
			m, y, err := parseMonthYear(month, year)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			card, err := resolveCard(ctx, store, args[0])
			if err != nil {
				return fmt.Errorf("card %q: %w", args[0], err)
			}
			wallet, err := resolveWallet(ctx, store, walletRef)
			if err != nil {
				return fmt.Errorf("wallet %q: %w", walletRef, err)
			}

			paid, err := ledger.NewCreditCardService(store).PayInvoice(ctx, card.ID, wallet.ID, m, y)
			if err != nil {
				return fmt.Errorf("failed to pay invoice: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Paid %s %d invoice of %q: %s from %q",
				m, y, card.Name, paid, wallet.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&walletRef, "wallet", "", "Wallet to pay from (ID or name)")
	cmd.Flags().IntVar(&month, "month", 0, "Invoice month (1-12, default current)")
	cmd.Flags().IntVar(&year, "year", 0, "Invoice year (default current)")

	return cmd
}
