package main

import (
	"fmt"

	"github.com/Veraticus/family-budget/internal/cli"
	"github.com/Veraticus/family-budget/internal/model"
	"github.com/Veraticus/family-budget/internal/service"
	"github.com/Veraticus/family-budget/internal/viewsync"
	"github.com/spf13/cobra"
)

func accountsCmd(c *budgetCLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account"},
		Short:   "Manage family accounts",
	}

	cmd.AddCommand(listAccountsCmd(c))
	cmd.AddCommand(addAccountCmd(c))

	return cmd
}

func listAccountsCmd(c *budgetCLI) *cobra.Command {
	var showArchived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts with balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := c.engine()
			if err != nil {
				return err
			}
			if err := loadReference(cmd.Context(), eng, viewsync.SectionAccounts); err != nil {
				return err
			}

			view := eng.View()
			if showArchived {
				view.SetShowArchived(true)
			}
			accounts := view.VisibleAccounts()
			if len(accounts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No accounts found. Use 'budget accounts add' to create one."))
				return nil
			}
			return cli.WriteAccounts(cmd.OutOrStdout(), accounts)
		},
	}

	cmd.Flags().BoolVar(&showArchived, "archived", false, "include archived accounts")
	return cmd
}

func addAccountCmd(c *budgetCLI) *cobra.Command {
	var (
		in      service.AccountInput
		typ     string
		balance string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minor, err := parseBalance(balance)
			if err != nil {
				return err
			}
			eng, err := c.engine()
			if err != nil {
				return err
			}

			in.Name = args[0]
			in.Type = model.AccountType(typ)
			in.BalanceMinor = minor

			account, err := eng.CreateAccount(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), success("Created account %q with balance %s",
				account.Name, model.FormatMinor(account.BalanceMinor, account.Currency)))
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", string(model.AccountTypeBank), "account type (cash, card, bank, deposit, wallet)")
	cmd.Flags().StringVar(&in.Currency, "currency", "", "account currency (ISO code)")
	cmd.Flags().StringVar(&balance, "balance", "", "opening balance, e.g. 1250.00")
	cmd.Flags().BoolVar(&in.IsShared, "shared", false, "share the account with the whole family")
	_ = cmd.MarkFlagRequired("currency")

	return cmd
}

func membersCmd(c *budgetCLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Show family members",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List family members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := c.engine()
			if err != nil {
				return err
			}
			if err := loadReference(cmd.Context(), eng, viewsync.SectionMembers); err != nil {
				return err
			}
			return cli.WriteMembers(cmd.OutOrStdout(), eng.View().Snapshot().Members)
		},
	})

	return cmd
}
