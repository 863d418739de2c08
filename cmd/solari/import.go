package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/solari/internal/cli"
	"github.com/Veraticus/solari/internal/common"
	"github.com/Veraticus/solari/internal/ledger"
	"github.com/Veraticus/solari/internal/model"
	"github.com/Veraticus/solari/internal/ofx"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	var (
		walletRef   string
		categoryRef string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import statement transactions from OFX or QFX files exported from your
bank. Imported transactions arrive as pending; confirm them with
'solari review'. Transactions already imported are skipped.

Examples:
  # Import a single statement into a wallet
  solari import ~/Downloads/jan_2024.qfx --wallet Checking

  # Import all statements in a directory
  solari import ~/Downloads/*.ofx --wallet Checking`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if walletRef == "" {
				return fmt.Errorf("--wallet is required")
			}

			// Expand globs and collect all files
			var allFiles []string
			for _, pattern := range args {
				matches, err := filepath.Glob(pattern)
				if err != nil {
					return fmt.Errorf("invalid pattern %s: %w", pattern, err)
				}
				if len(matches) == 0 {
					if _, err := os.Stat(pattern); err == nil {
						allFiles = append(allFiles, pattern)
					} else {
						slog.Warn("No files found matching pattern", "pattern", pattern)
					}
				} else {
					allFiles = append(allFiles, matches...)
				}
			}
			if len(allFiles) == 0 {
				return fmt.Errorf("no files found to import")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			wallet, err := resolveWallet(ctx, store, walletRef)
			if err != nil {
				return fmt.Errorf("wallet %q: %w", walletRef, err)
			}

			// Imported transactions land in a fallback category until the
			// user refiles them.
			category, err := resolveCategory(ctx, store, categoryRef)
			if errors.Is(err, common.ErrNotFound) {
				category, err = ledger.NewCategoryService(store).AddCategory(ctx, categoryRef)
			}
			if err != nil {
				return fmt.Errorf("category %q: %w", categoryRef, err)
			}

			parser := ofx.NewParser()
			var entries []ofx.StatementEntry
			for _, filePath := range allFiles {
				slog.Info("Processing file", "file", filepath.Base(filePath))

				f, err := os.Open(filePath)
				if err != nil {
					slog.Error("Failed to open file", "file", filePath, "error", err)
					continue
				}

				parsed, err := parser.ParseFile(ctx, f)
				f.Close()
				if err != nil {
					slog.Error("Failed to parse OFX file", "file", filePath, "error", err)
					continue
				}
				if len(parsed) == 0 {
					slog.Warn("No transactions found in file", "file", filepath.Base(filePath))
					continue
				}
				entries = append(entries, parsed...)
			}

			if len(entries) == 0 {
				fmt.Println(cli.FormatWarning("No transactions found in any file."))
				return nil
			}

			if dryRun {
				fmt.Println(cli.FormatInfo(fmt.Sprintf("Dry run: %d transaction(s) would be imported into %q.", len(entries), wallet.Name)))
				return nil
			}

			bar := progressbar.Default(int64(len(entries)), "importing")
			var imported, skipped int
			for _, entry := range entries {
				txn := &model.WalletTransaction{
					WalletID:    wallet.ID,
					CategoryID:  category.ID,
					Type:        entry.Type,
					Status:      model.StatusPending,
					Date:        entry.Date,
					Amount:      entry.Amount,
					Description: entry.Description,
				}
				txn.Hash = txn.GenerateHash()

				exists, err := store.TransactionExistsByHash(ctx, txn.Hash)
				if err != nil {
					return fmt.Errorf("failed to check for duplicate: %w", err)
				}
				if exists {
					skipped++
					_ = bar.Add(1)
					continue
				}

				if err := store.CreateTransaction(ctx, txn); err != nil {
					return fmt.Errorf("failed to save transaction: %w", err)
				}
				imported++
				_ = bar.Add(1)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transaction(s) into %q (%d duplicate(s) skipped).",
				imported, wallet.Name, skipped)))
			if imported > 0 {
				fmt.Println(cli.InfoStyle.Render("Run 'solari review' to confirm them."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&walletRef, "wallet", "", "Wallet to import into (ID or name)")
	cmd.Flags().StringVar(&categoryRef, "category", "Uncategorized", "Category for imported transactions")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Preview import without saving")

	return cmd
}
