package main

import (
	"fmt"
	"time"

	"github.com/Veraticus/family-budget/internal/cli"
	"github.com/Veraticus/family-budget/internal/config"
	"github.com/Veraticus/family-budget/internal/service"
	"github.com/spf13/cobra"
)

func registerCmd(c *budgetCLI) *cobra.Command {
	var req service.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a user and create or join a family",
		Long: `Register creates a user on the budget server. Without --join-family a new
family is created with the given name and base currency. The user id is saved
to the session file and used by every later command.

Missing --name and --email values are asked for interactively.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			prompter := cli.NewPrompter(cmd.InOrStdin(), out)
			var err error
			if req.Name, err = prompter.Ask(ctx, "Your name", req.Name); err != nil {
				return err
			}
			if req.Email, err = prompter.Ask(ctx, "Email", req.Email); err != nil {
				return err
			}

			eng, err := c.engineAs("")
			if err != nil {
				return err
			}
			reg, err := eng.Register(ctx, req)
			if err != nil {
				return err
			}

			session := &config.Session{
				RegisteredAt: time.Now().UTC(),
				UserID:       reg.User.ID,
				FamilyID:     reg.Family.ID,
				Name:         reg.User.Name,
				Currency:     reg.Family.BaseCurrency,
			}
			if err := config.SaveSession(c.cfg.SessionPath, session); err != nil {
				return err
			}

			fmt.Fprintln(out, success("Registered %s in family %q", reg.User.Name, reg.Family.Name))
			fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("User id %s saved to %s", reg.User.ID, c.cfg.SessionPath)))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "your display name")
	cmd.Flags().StringVar(&req.Email, "email", "", "your email address")
	cmd.Flags().StringVar(&req.FamilyName, "family-name", "", "name of the new family")
	cmd.Flags().StringVar(&req.Currency, "currency", "", "base currency of the new family (ISO code)")
	cmd.Flags().StringVar(&req.JoinFamilyID, "join-family", "", "join an existing family by id")

	return cmd
}
