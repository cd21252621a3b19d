package main

import (
	"fmt"

	"github.com/Veraticus/family-budget/internal/cli"
	"github.com/Veraticus/family-budget/internal/common"
	"github.com/Veraticus/family-budget/internal/model"
	"github.com/Veraticus/family-budget/internal/service"
	"github.com/Veraticus/family-budget/internal/viewsync"
	"github.com/spf13/cobra"
)

func transactionsCmd(c *budgetCLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "List and record transactions",
	}

	cmd.AddCommand(listTransactionsCmd(c))
	cmd.AddCommand(addTransactionCmd(c))

	return cmd
}

func listTransactionsCmd(c *budgetCLI) *cobra.Command {
	var (
		from, to string
		filters  viewsync.Filters
		typ      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long: `List the transactions of a period, the current month by default.
Filters combine: only transactions matching all of them are shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			period, err := parsePeriod(from, to)
			if err != nil {
				return err
			}
			filters.Period = period
			filters.Type = model.TransactionType(typ)

			eng, err := c.engine()
			if err != nil {
				return err
			}
			if err := loadReference(ctx, eng); err != nil {
				return err
			}

			view := eng.View()
			view.SetFilters(filters)
			if err := unknownFilter(filters, view.Filters()); err != nil {
				return err
			}

			if err := eng.RefreshTransactions(ctx); err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			out := cmd.OutOrStdout()
			transactions := view.Snapshot().Transactions
			fmt.Fprintln(out, cli.FormatTitle("Transactions "+period.String()))
			if len(transactions) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No transactions match."))
				return nil
			}
			return cli.WriteTransactions(out, transactions, view)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	flags.StringVar(&to, "to", "", "last day, YYYY-MM-DD")
	flags.StringVar(&typ, "type", "", "only income or expense")
	flags.StringVar(&filters.CategoryID, "category", "", "only this category id")
	flags.StringVar(&filters.AccountID, "account", "", "only this account id")
	flags.StringVar(&filters.MemberID, "member", "", "only transactions by this member id")

	return cmd
}

// unknownFilter reports a filter id the view dropped because it does not
// name a known entity.
func unknownFilter(requested, applied viewsync.Filters) error {
	switch {
	case requested.CategoryID != applied.CategoryID:
		return common.NewValidationError("category", fmt.Sprintf("unknown category %s", requested.CategoryID))
	case requested.AccountID != applied.AccountID:
		return common.NewValidationError("account", fmt.Sprintf("unknown account %s", requested.AccountID))
	case requested.MemberID != applied.MemberID:
		return common.NewValidationError("member", fmt.Sprintf("unknown member %s", requested.MemberID))
	}
	return nil
}

func addTransactionCmd(c *budgetCLI) *cobra.Command {
	var (
		in              service.TransactionInput
		typ, amount, at string
		comment         string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Long: `Record a transaction. The amount is always positive; --type sets the
direction. Without --account or --category the first active account and
category are used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			minor, err := parseAmount(amount)
			if err != nil {
				return err
			}
			occurred, err := parseWhen("at", at)
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

			in.Type = model.TransactionType(typ)
			in.AmountMinor = minor
			in.OccurredAt = occurred
			in.Comment = optional(comment)

			tx, _, err := eng.CreateTransaction(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), success("Recorded %s on %s",
				model.FormatMinor(tx.SignedMinor(), tx.Currency), tx.OccurredAt.UTC().Format(model.DateLayout)))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in.AccountID, "account", "", "account id")
	flags.StringVar(&in.CategoryID, "category", "", "category id")
	flags.StringVar(&typ, "type", string(model.TransactionTypeExpense), "income or expense")
	flags.StringVar(&amount, "amount", "", "positive amount, e.g. 12.34")
	flags.StringVar(&comment, "comment", "", "free-text comment")
	flags.StringVar(&at, "at", "", "date, YYYY-MM-DD (default today)")
	flags.StringVar(&in.Currency, "currency", "", "currency (default: the account's)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
