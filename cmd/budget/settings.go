package main

import (
	"fmt"

	"github.com/Veraticus/family-budget/internal/cli"
	"github.com/Veraticus/family-budget/internal/service"
	"github.com/Veraticus/family-budget/internal/viewsync"
	"github.com/spf13/cobra"
)

func settingsCmd(c *budgetCLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change your settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show your settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := c.engine()
			if err != nil {
				return err
			}
			if err := loadReference(cmd.Context(), eng, viewsync.SectionSettings); err != nil {
				return err
			}
			settings := eng.View().Snapshot().Settings
			if settings == nil {
				return fmt.Errorf("server returned no settings")
			}
			return cli.WriteSettings(cmd.OutOrStdout(), *settings)
		},
	})
	cmd.AddCommand(setSettingsCmd(c))

	return cmd
}

func setSettingsCmd(c *budgetCLI) *cobra.Command {
	var update service.SettingsUpdate

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		Long:  `Set changes only the settings given as flags; the rest keep their current values.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			eng, err := c.engine()
			if err != nil {
				return err
			}
			if err := loadReference(ctx, eng, viewsync.SectionSettings); err != nil {
				return err
			}
			current := eng.View().Snapshot().Settings
			if current == nil {
				return fmt.Errorf("server returned no settings")
			}

			flags := cmd.Flags()
			next := service.SettingsUpdate{
				Currency: current.Currency,
				Locale:   current.Locale,
				Display:  current.Display,
			}
			if flags.Changed("currency") {
				next.Currency = update.Currency
			}
			if flags.Changed("locale") {
				next.Locale = update.Locale
			}
			if flags.Changed("theme") {
				next.Display.Theme = update.Display.Theme
			}
			if flags.Changed("density") {
				next.Display.Density = update.Display.Density
			}
			if flags.Changed("show-archived") {
				next.Display.ShowArchived = update.Display.ShowArchived
			}
			if flags.Changed("totals-in-family-currency") {
				next.Display.ShowTotalsInFamilyCurrency = update.Display.ShowTotalsInFamilyCurrency
			}

			settings, err := eng.UpdateSettings(ctx, next)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), success("Settings saved"))
			return cli.WriteSettings(cmd.OutOrStdout(), *settings)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&update.Currency, "currency", "", "personal currency (ISO code)")
	flags.StringVar(&update.Locale, "locale", "", "locale, e.g. en-US")
	flags.StringVar(&update.Display.Theme, "theme", "", "theme (system, light, dark)")
	flags.StringVar(&update.Display.Density, "density", "", "density (comfortable, compact)")
	flags.BoolVar(&update.Display.ShowArchived, "show-archived", false, "show archived categories and accounts")
	flags.BoolVar(&update.Display.ShowTotalsInFamilyCurrency, "totals-in-family-currency", false, "show totals in the family currency")

	return cmd
}
