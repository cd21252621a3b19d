package main

import (
	"fmt"

	"github.com/Veraticus/family-budget/internal/cli"
	"github.com/Veraticus/family-budget/internal/tui"
	"github.com/spf13/cobra"
)

func reportCmd(c *budgetCLI) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show income and expense totals for a period",
		Long:  `Report shows totals, per-category and per-member breakdowns, for the current month by default.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			period, err := parsePeriod(from, to)
			if err != nil {
				return err
			}
			eng, err := c.engine()
			if err != nil {
				return err
			}
			if err := eng.LoadReport(cmd.Context(), period); err != nil {
				return fmt.Errorf("failed to load report: %w", err)
			}

			report := eng.View().Snapshot().Report
			if report == nil {
				return fmt.Errorf("server returned no report")
			}
			return cli.WriteReport(cmd.OutOrStdout(), *report)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day, YYYY-MM-DD")
	return cmd
}

func browseCmd(c *budgetCLI) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse transactions and planned operations interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := c.engine()
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), eng, tui.WithRequestTimeout(c.cfg.Timeout))
		},
	}
}
