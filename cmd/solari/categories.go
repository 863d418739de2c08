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

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
		Long:  `List, add, rename, archive, and delete the categories transactions are filed under.`,
	}

	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(renameCategoryCmd())
	cmd.AddCommand(archiveCategoryCmd())
	cmd.AddCommand(unarchiveCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func addCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			category, err := ledger.NewCategoryService(store).AddCategory(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created category %q (ID: %d)", category.Name, category.ID)))
			return nil
		},
	}
}

func listCategoriesCmd() *cobra.Command {
	var includeArchived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := ledger.NewCategoryService(store)
			categories, err := svc.ListCategories(ctx, includeArchived)
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories found. Use 'solari categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Transactions"),
				cli.TableHeaderStyle.Render("Status"))

			for _, cat := range categories {
				count, err := svc.CountTransactions(ctx, cat.ID)
				if err != nil {
					return fmt.Errorf("failed to count transactions: %w", err)
				}
				status := "active"
				if cat.Archived {
					status = cli.SubtleStyle.Render("archived")
				}
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", cat.ID, cat.Name, count, status)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&includeArchived, "all", false, "Include archived categories")

	return cmd
}

func renameCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <category> <new-name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			category, err := resolveCategory(ctx, store, args[0])
			if err != nil {
				return fmt.Errorf("category %q: %w", args[0], err)
			}

			if err := ledger.NewCategoryService(store).RenameCategory(ctx, category.ID, args[1]); err != nil {
				return fmt.Errorf("failed to rename category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Renamed category %q to %q", category.Name, args[1])))
			return nil
		},
	}
}

func archiveCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <category>",
		Short: "Archive a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			category, err := resolveCategory(ctx, store, args[0])
			if err != nil {
				return fmt.Errorf("category %q: %w", args[0], err)
			}

			if err := ledger.NewCategoryService(store).ArchiveCategory(ctx, category.ID); err != nil {
				return fmt.Errorf("failed to archive category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Archived category %q", category.Name)))
			return nil
		},
	}
}

func unarchiveCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unarchive <category>",
		Short: "Restore an archived category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			category, err := resolveCategory(ctx, store, args[0])
			if err != nil {
				return fmt.Errorf("category %q: %w", args[0], err)
			}

			if err := ledger.NewCategoryService(store).UnarchiveCategory(ctx, category.ID); err != nil {
				return fmt.Errorf("failed to unarchive category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Restored category %q", category.Name)))
			return nil
		},
	}
}

func deleteCategoryCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <category>",
		Short: "Delete a category",
		Long:  `Delete a category. This fails while transactions, debts, or recurring templates still use it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			category, err := resolveCategory(ctx, store, args[0])
			if err != nil {
				return fmt.Errorf("category %q: %w", args[0], err)
			}

			if !force {
				fmt.Printf("Are you sure you want to delete category %q? (y/N): ", category.Name)
				var response string
				fmt.Scanln(&response)
				if strings.ToLower(response) != "y" {
					fmt.Println("Deletion cancelled.")
					return nil
				}
			}

			if err := ledger.NewCategoryService(store).DeleteCategory(ctx, category.ID); err != nil {
				return fmt.Errorf("failed to delete category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted category %q", category.Name)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
