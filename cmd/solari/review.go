package main

import (
	"fmt"
	"time"

	"github.com/Veraticus/solari/internal/cli"
	"github.com/Veraticus/solari/internal/ledger"
	"github.com/Veraticus/solari/internal/tui"
	"github.com/spf13/cobra"
)

func reviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Review pending transactions interactively",
		Long: `Step through pending transactions one by one and confirm or delete
them. Due recurring templates are processed first so their spawned
transactions show up in the list.`,
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
			if spawned > 0 {
				fmt.Println(cli.FormatInfo(fmt.Sprintf("Spawned %d transaction(s) from recurring templates.", spawned)))
			}

			wallets := ledger.NewWalletService(store)
			categories := ledger.NewCategoryService(store)

			confirmed, deleted, err := tui.Run(ctx, wallets, categories)
			if err != nil {
				return fmt.Errorf("review failed: %w", err)
			}

			if confirmed == 0 && deleted == 0 {
				fmt.Println(cli.InfoStyle.Render("Nothing reviewed."))
				return nil
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Review done: %d confirmed, %d deleted.", confirmed, deleted)))
			return nil
		},
	}
}
