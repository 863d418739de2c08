package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/solari/internal/cli"
	"github.com/Veraticus/solari/internal/ledger"
	"github.com/spf13/cobra"
)

func walletsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallets",
		Short: "Manage wallets",
		Long:  `Create, list, rename, archive, and delete wallets. A wallet is any pool of money: a checking account, cash, or savings.`,
	}

	cmd.AddCommand(createWalletCmd())
	cmd.AddCommand(listWalletsCmd())
	cmd.AddCommand(renameWalletCmd())
	cmd.AddCommand(archiveWalletCmd())
	cmd.AddCommand(unarchiveWalletCmd())
	cmd.AddCommand(deleteWalletCmd())
	cmd.AddCommand(setBalanceCmd())

	return cmd
}

func createWalletCmd() *cobra.Command {
	var (
		walletType     string
		initialBalance string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			balance, err := parseAmount(initialBalance)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			wallet, err := ledger.NewWalletService(store).CreateWallet(ctx, args[0], walletType, balance)
			if err != nil {
				return fmt.Errorf("failed to create wallet: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created wallet %q (ID: %d) with balance %s", wallet.Name, wallet.ID, wallet.Balance)))
			return nil
		},
	}

	cmd.Flags().StringVar(&walletType, "type", "checking", "Wallet type (checking, savings, cash)")
	cmd.Flags().StringVar(&initialBalance, "balance", "0", "Initial balance")

	return cmd
}

func listWalletsCmd() *cobra.Command {
	var includeArchived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List wallets and their balances",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			wallets, err := store.ListWallets(ctx, includeArchived)
			if err != nil {
				return fmt.Errorf("failed to list wallets: %w", err)
			}

			if len(wallets) == 0 {
				fmt.Println(cli.InfoStyle.Render("No wallets found. Use 'solari wallets create' to add one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Type"),
				cli.TableHeaderStyle.Render("Balance"),
				cli.TableHeaderStyle.Render("Status"))

			for _, wallet := range wallets {
				balance := cli.IncomeStyle.Render(wallet.Balance.String())
				if wallet.Balance < 0 {
					balance = cli.ExpenseStyle.Render(wallet.Balance.String())
				}
				status := "active"
				if wallet.Archived {
					status = cli.SubtleStyle.Render("archived")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					wallet.ID, wallet.Name, wallet.Type, balance, status)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&includeArchived, "all", false, "Include archived wallets")

	return cmd
}

func renameWalletCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <wallet> <new-name>",
		Short: "Rename a wallet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			wallet, err := resolveWallet(ctx, store, args[0])
			if err != nil {
				return fmt.Errorf("wallet %q: %w", args[0], err)
			}

			if err := ledger.NewWalletService(store).RenameWallet(ctx, wallet.ID, args[1]); err != nil {
				return fmt.Errorf("failed to rename wallet: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Renamed wallet %q to %q", wallet.Name, args[1])))
			return nil
		},
	}
}

func archiveWalletCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <wallet>",
		Short: "Archive a wallet",
		Long:  `Archive a wallet so it stops showing in listings. Its history is preserved.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			wallet, err := resolveWallet(ctx, store, args[0])
			if err != nil {
				return fmt.Errorf("wallet %q: %w", args[0], err)
			}

			if err := ledger.NewWalletService(store).ArchiveWallet(ctx, wallet.ID); err != nil {
				return fmt.Errorf("failed to archive wallet: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Archived wallet %q", wallet.Name)))
			return nil
		},
	}
}

func unarchiveWalletCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unarchive <wallet>",
		Short: "Restore an archived wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			wallet, err := resolveWallet(ctx, store, args[0])
			if err != nil {
				return fmt.Errorf("wallet %q: %w", args[0], err)
			}

			if err := ledger.NewWalletService(store).UnarchiveWallet(ctx, wallet.ID); err != nil {
				return fmt.Errorf("failed to unarchive wallet: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Restored wallet %q", wallet.Name)))
			return nil
		},
	}
}

func deleteWalletCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <wallet>",
		Short: "Delete a wallet",
		Long:  `Delete a wallet. This fails while the wallet still has transactions or transfers; archive instead to keep history.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			wallet, err := resolveWallet(ctx, store, args[0])
			if err != nil {
				return fmt.Errorf("wallet %q: %w", args[0], err)
			}

			if !force {
				fmt.Printf("Are you sure you want to delete wallet %q? (y/N): ", wallet.Name)
				var response string
				fmt.Scanln(&response)
				if strings.ToLower(response) != "y" {
					fmt.Println("Deletion cancelled.")
					return nil
				}
			}

			if err := ledger.NewWalletService(store).DeleteWallet(ctx, wallet.ID); err != nil {
				return fmt.Errorf("failed to delete wallet: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted wallet %q", wallet.Name)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

func setBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-balance <wallet> <amount>",
		Short: "Set a wallet balance directly",
		Long:  `Overwrite a wallet's balance. Useful for the occasional correction; regular activity should go through transactions.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			balance, err := parseAmount(args[1])
			if err != nil {
				return err
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

			if err := ledger.NewWalletService(store).UpdateBalance(ctx, wallet.ID, balance); err != nil {
				return fmt.Errorf("failed to update balance: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Set balance of %q to %s", wallet.Name, balance)))
			return nil
		},
	}
}
