package main

import (
	"fmt"

	"github.com/Veraticus/family-budget/internal/cli"
	"github.com/Veraticus/family-budget/internal/model"
	"github.com/Veraticus/family-budget/internal/service"
	"github.com/Veraticus/family-budget/internal/viewsync"
	"github.com/spf13/cobra"
)

func plannedCmd(c *budgetCLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planned",
		Short: "Manage planned operations",
		Long: `Planned operations are scheduled income or expenses. Completing one
records the transaction on the server; recurring operations stay pending with
their next due date.`,
	}

	cmd.AddCommand(listPlannedCmd(c))
	cmd.AddCommand(addPlannedCmd(c))
	cmd.AddCommand(completePlannedCmd(c))

	return cmd
}

func listPlannedCmd(c *budgetCLI) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pending and completed planned operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			eng, err := c.engine()
			if err != nil {
				return err
			}
			if err := loadReference(ctx, eng); err != nil {
				return err
			}
			if err := eng.LoadPlanned(ctx); err != nil {
				return fmt.Errorf("failed to list planned operations: %w", err)
			}

			out := cmd.OutOrStdout()
			state := eng.View().Snapshot()
			if len(state.Pending) == 0 && len(state.Completed) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No planned operations. Use 'budget planned add' to schedule one."))
				return nil
			}
			fmt.Fprintln(out, cli.TitleStyle.Render(cli.CalendarIcon+" Planned operations"))
			return cli.WritePlanned(out, state.Pending, state.Completed, eng.View())
		},
	}
}

func addPlannedCmd(c *budgetCLI) *cobra.Command {
	var (
		in                  service.PlannedOperationInput
		typ, amount, due    string
		recurrence, comment string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Schedule a planned operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			minor, err := parseAmount(amount)
			if err != nil {
				return err
			}
			dueAt, err := parseWhen("due", due)
			if err != nil {
				return err
			}

			eng, err := c.engine()
			if err != nil {
				return err
			}
			if in.AccountID == "" || in.CategoryID == "" {
				if err := loadReference(ctx, eng, viewsync.SectionCategories, viewsync.SectionAccounts); err != nil {
					return err
				}
				entry := eng.View().Entry()
				if in.AccountID == "" {
					in.AccountID = entry.AccountID
				}
				if in.CategoryID == "" {
					in.CategoryID = entry.CategoryID
				}
			}

			in.Title = args[0]
			in.Type = model.TransactionType(typ)
			in.AmountMinor = minor
			in.DueAt = dueAt
			in.Recurrence = model.Recurrence(recurrence)
			in.Comment = optional(comment)

			op, err := eng.CreatePlanned(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), success("Scheduled %q for %s (%s)",
				op.Title, op.DueAt.UTC().Format(model.DateLayout), op.ID))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in.AccountID, "account", "", "account id")
	flags.StringVar(&in.CategoryID, "category", "", "category id")
	flags.StringVar(&typ, "type", string(model.TransactionTypeExpense), "income or expense")
	flags.StringVar(&amount, "amount", "", "positive amount, e.g. 12.34")
	flags.StringVar(&due, "due", "", "due date, YYYY-MM-DD (default today)")
	flags.StringVar(&recurrence, "repeat", string(model.RecurrenceNone), "recurrence (none, weekly, monthly, yearly)")
	flags.StringVar(&comment, "comment", "", "free-text comment")
	flags.StringVar(&in.Currency, "currency", "", "currency (default: the account's)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func completePlannedCmd(c *budgetCLI) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Complete a planned operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := c.engine()
			if err != nil {
				return err
			}
			op, err := eng.CompletePlanned(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if op.IsCompleted {
				fmt.Fprintln(out, success("Completed %q", op.Title))
				return nil
			}
			fmt.Fprintln(out, success("Recorded %q; next due %s", op.Title, op.DueAt.UTC().Format(model.DateLayout)))
			return nil
		},
	}
}
