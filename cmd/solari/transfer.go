package main

import (
	"fmt"

	"github.com/Veraticus/solari/internal/cli"
	"github.com/Veraticus/solari/internal/ledger"
	"github.com/spf13/cobra"
)

func transferCmd() *cobra.Command {
	var (
		dateFlag    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "transfer <from-wallet> <to-wallet> <amount>",
		Short: "Move money between wallets",
		Long: `Transfer money from one wallet to another. Both balances change
together or not at all.`,
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

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			sender, err := resolveWallet(ctx, store, args[0])
			if err != nil {
				return fmt.Errorf("wallet %q: %w", args[0], err)
			}
			receiver, err := resolveWallet(ctx, store, args[1])
			if err != nil {
				return fmt.Errorf("wallet %q: %w", args[1], err)
			}

			transfer, err := ledger.NewWalletService(store).TransferMoney(ctx,
				sender.ID, receiver.ID, date, amount, description)
			if err != nil {
				return fmt.Errorf("failed to transfer: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Transferred %s from %q to %q (ID: %d)",
				amount, sender.Name, receiver.Name, transfer.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Transfer date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&description, "desc", "", "Description")

	return cmd
}
