package main

import (
	"fmt"

	"github.com/Veraticus/family-budget/internal/cli"
	"github.com/Veraticus/family-budget/internal/model"
	"github.com/Veraticus/family-budget/internal/service"
	"github.com/Veraticus/family-budget/internal/viewsync"
	"github.com/spf13/cobra"
)

func categoriesCmd(c *budgetCLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Manage family categories",
		Long:    `List, add, edit, archive and restore the categories shared by the family.`,
	}

	cmd.AddCommand(listCategoriesCmd(c))
	cmd.AddCommand(addCategoryCmd(c))
	cmd.AddCommand(editCategoryCmd(c))
	cmd.AddCommand(archiveCategoryCmd(c, true))
	cmd.AddCommand(archiveCategoryCmd(c, false))

	return cmd
}

func listCategoriesCmd(c *budgetCLI) *cobra.Command {
	var showArchived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := c.engine()
			if err != nil {
				return err
			}
			if err := loadReference(cmd.Context(), eng, viewsync.SectionCategories); err != nil {
				return err
			}

			view := eng.View()
			categories := view.ActiveCategories()
			if showArchived || view.ShowArchived() {
				categories = view.Snapshot().Categories
			}
			if len(categories) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No categories found. Use 'budget categories add' to create one."))
				return nil
			}
			return cli.WriteCategories(cmd.OutOrStdout(), categories)
		},
	}

	cmd.Flags().BoolVar(&showArchived, "archived", false, "include archived categories")
	return cmd
}

func categoryFlags(cmd *cobra.Command, in *service.CategoryInput, parent *string, typ *string) {
	cmd.Flags().StringVar(typ, "type", string(model.CategoryTypeExpense), "category type (income, expense, transfer)")
	cmd.Flags().StringVar(parent, "parent", "", "parent category id")
	cmd.Flags().StringVar(&in.Color, "color", "", "display color")
	cmd.Flags().StringVar(&in.Description, "description", "", "description")
}

func addCategoryCmd(c *budgetCLI) *cobra.Command {
	var (
		in     service.CategoryInput
		parent string
		typ    string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := c.engine()
			if err != nil {
				return err
			}

			in.Name = args[0]
			in.Type = model.CategoryType(typ)
			in.ParentID = optional(parent)

			category, err := eng.CreateCategory(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), success("Created category %q (%s)", category.Name, category.ID))
			return nil
		},
	}

	categoryFlags(cmd, &in, &parent, &typ)
	return cmd
}

func editCategoryCmd(c *budgetCLI) *cobra.Command {
	var (
		in     service.CategoryInput
		parent string
		typ    string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a category",
		Long:  `Edit changes only the fields given as flags; the rest keep their current values.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, err := c.engine()
			if err != nil {
				return err
			}
			if err := loadReference(ctx, eng, viewsync.SectionCategories); err != nil {
				return err
			}

			current, ok := eng.View().Category(args[0])
			if !ok {
				return fmt.Errorf("category %s not found", args[0])
			}

			flags := cmd.Flags()
			update := service.CategoryInput{
				ParentID:    current.ParentID,
				Name:        current.Name,
				Type:        current.Type,
				Color:       current.Color,
				Description: current.Description,
			}
			if flags.Changed("name") {
				update.Name = in.Name
			}
			if flags.Changed("type") {
				update.Type = model.CategoryType(typ)
			}
			if flags.Changed("parent") {
				update.ParentID = optional(parent)
			}
			if flags.Changed("color") {
				update.Color = in.Color
			}
			if flags.Changed("description") {
				update.Description = in.Description
			}

			category, err := eng.EditCategory(ctx, current.ID, update)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), success("Updated category %q", category.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "new name")
	categoryFlags(cmd, &in, &parent, &typ)
	return cmd
}

func archiveCategoryCmd(c *budgetCLI, archive bool) *cobra.Command {
	use, short, verb := "archive <id>", "Archive a category", "Archived"
	if !archive {
		use, short, verb = "unarchive <id>", "Restore an archived category", "Restored"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, err := c.engine()
			if err != nil {
				return err
			}
			// The category list tells the engine which categories are system ones.
			if err := loadReference(ctx, eng, viewsync.SectionCategories); err != nil {
				return err
			}

			category, err := eng.ArchiveCategory(ctx, args[0], archive)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, success("%s category %q", verb, category.Name))
			if archive {
				active := 0
				for _, child := range eng.View().Children(category.ID) {
					if child.IsActive() {
						active++
					}
				}
				if active > 0 {
					fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("%d subcategories are still active", active)))
				}
			}
			return nil
		},
	}
}
