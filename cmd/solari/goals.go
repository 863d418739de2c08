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

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage savings goals",
		Long: `Create savings goals with a target balance and date. Each goal is
backed by its own wallet; fund it with transfers like any other wallet.`,
	}

	cmd.AddCommand(createGoalCmd())
	cmd.AddCommand(listGoalsCmd())
	cmd.AddCommand(updateGoalCmd())
	cmd.AddCommand(completeGoalCmd())
	cmd.AddCommand(reopenGoalCmd())
	cmd.AddCommand(archiveGoalCmd())
	cmd.AddCommand(unarchiveGoalCmd())
	cmd.AddCommand(deleteGoalCmd())

	return cmd
}

func createGoalCmd() *cobra.Command {
	var (
		initial    string
		target     string
		targetDate string
		motivation string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a savings goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			initialBalance, err := parseAmount(initial)
			if err != nil {
				return err
			}
			targetBalance, err := parseAmount(target)
			if err != nil {
				return err
			}
			if targetDate == "" {
				return fmt.Errorf("--date is required")
			}
			date, err := parseDate(targetDate)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			goal, err := ledger.NewGoalService(store).CreateGoal(ctx,
				args[0], initialBalance, targetBalance, date, motivation)
			if err != nil {
				return fmt.Errorf("failed to create goal: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created goal %q: %s by %s",
				args[0], goal.TargetBalance, goal.TargetDate.Format("2006-01-02"))))
			return nil
		},
	}

	cmd.Flags().StringVar(&initial, "initial", "0", "Initial balance")
	cmd.Flags().StringVar(&target, "target", "0", "Target balance")
	cmd.Flags().StringVar(&targetDate, "date", "", "Target date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&motivation, "motivation", "", "Why you are saving")

	return cmd
}

func listGoalsCmd() *cobra.Command {
	var includeArchived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List savings goals with progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			goals, err := ledger.NewGoalService(store).ListGoals(ctx, includeArchived)
			if err != nil {
				return fmt.Errorf("failed to list goals: %w", err)
			}

			if len(goals) == 0 {
				fmt.Println(cli.InfoStyle.Render("No goals found. Use 'solari goals create' to start saving."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Saved"),
				cli.TableHeaderStyle.Render("Target"),
				cli.TableHeaderStyle.Render("By"),
				cli.TableHeaderStyle.Render("Progress"))

			for _, g := range goals {
				progress := fmt.Sprintf("%.0f%%", g.Goal.Progress(g.Wallet.Balance)*100)
				if g.Goal.Completed() {
					progress = cli.SuccessStyle.Render("completed")
				}
				fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\t%s\t%s\n",
					g.Wallet.ID, cli.GoalIcon, g.Wallet.Name,
					g.Wallet.Balance, g.Goal.TargetBalance,
					g.Goal.TargetDate.Format("2006-01-02"), progress)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&includeArchived, "all", false, "Include archived goals")

	return cmd
}

func updateGoalCmd() *cobra.Command {
	var (
		target     string
		targetDate string
		motivation string
	)

	cmd := &cobra.Command{
		Use:   "update <goal>",
		Short: "Update a goal's target, date, or motivation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if target == "" && targetDate == "" && motivation == "" {
				return fmt.Errorf("must specify --target, --date, or --motivation")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			wallet, err := resolveWallet(ctx, store, args[0])
			if err != nil {
				return fmt.Errorf("goal %q: %w", args[0], err)
			}

			svc := ledger.NewGoalService(store)
			if target != "" {
				amount, err := parseAmount(target)
				if err != nil {
					return err
				}
				if err := svc.UpdateTargetBalance(ctx, wallet.ID, amount); err != nil {
					return fmt.Errorf("failed to update target: %w", err)
				}
			}
			if targetDate != "" {
				date, err := parseDate(targetDate)
				if err != nil {
					return err
				}
				if err := svc.UpdateTargetDate(ctx, wallet.ID, date); err != nil {
					return fmt.Errorf("failed to update target date: %w", err)
				}
			}
			if motivation != "" {
				if err := svc.UpdateMotivation(ctx, wallet.ID, motivation); err != nil {
					return fmt.Errorf("failed to update motivation: %w", err)
				}
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated goal %q", wallet.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "New target balance")
	cmd.Flags().StringVar(&targetDate, "date", "", "New target date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&motivation, "motivation", "", "New motivation")

	return cmd
}

func completeGoalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <goal>",
		Short: "Mark a goal achieved",
		Long:  `Mark a goal achieved. Fails while the saved balance is still below the target.`,
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
				return fmt.Errorf("goal %q: %w", args[0], err)
			}

			if err := ledger.NewGoalService(store).CompleteGoal(ctx, wallet.ID); err != nil {
				return fmt.Errorf("failed to complete goal: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s Goal %q achieved!", cli.GoalIcon, wallet.Name)))
			return nil
		},
	}
}

func reopenGoalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reopen <goal>",
		Short: "Reopen a completed goal",
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
				return fmt.Errorf("goal %q: %w", args[0], err)
			}

			if err := ledger.NewGoalService(store).ReopenGoal(ctx, wallet.ID); err != nil {
				return fmt.Errorf("failed to reopen goal: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Reopened goal %q", wallet.Name)))
			return nil
		},
	}
}

func archiveGoalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <goal>",
		Short: "Archive a goal",
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
				return fmt.Errorf("goal %q: %w", args[0], err)
			}

			if err := ledger.NewGoalService(store).ArchiveGoal(ctx, wallet.ID); err != nil {
				return fmt.Errorf("failed to archive goal: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Archived goal %q", wallet.Name)))
			return nil
		},
	}
}

func unarchiveGoalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unarchive <goal>",
		Short: "Restore an archived goal",
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
				return fmt.Errorf("goal %q: %w", args[0], err)
			}

			if err := ledger.NewGoalService(store).UnarchiveGoal(ctx, wallet.ID); err != nil {
				return fmt.Errorf("failed to unarchive goal: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Restored goal %q", wallet.Name)))
			return nil
		},
	}
}

func deleteGoalCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <goal>",
		Short: "Delete a goal",
		Long:  `Delete a goal and its backing wallet. Fails while the wallet has transaction history.`,
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
				return fmt.Errorf("goal %q: %w", args[0], err)
			}

			if !force {
				fmt.Printf("Are you sure you want to delete goal %q? (y/N): ", wallet.Name)
				var response string
				fmt.Scanln(&response)
				if strings.ToLower(response) != "y" {
					fmt.Println("Deletion cancelled.")
					return nil
				}
			}

			if err := ledger.NewGoalService(store).DeleteGoal(ctx, wallet.ID); err != nil {
				return fmt.Errorf("failed to delete goal: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted goal %q", wallet.Name)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
