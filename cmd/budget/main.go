package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/family-budget/internal/cli"
	"github.com/Veraticus/family-budget/internal/common"
	"github.com/Veraticus/family-budget/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

func main() {
	interrupts := cli.NewInterruptHandler(os.Stderr)
	ctx := interrupts.HandleInterrupts(context.Background())

	err := newRootCmd(viper.New()).ExecuteContext(ctx)
	interrupts.Stop()

	if err != nil {
		if interrupts.WasInterrupted() {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, cli.FormatError(err.Error()))
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	c := &budgetCLI{viper: v}

	root := &cobra.Command{
		Use:   "budget",
		Short: cli.WalletIcon + " Family budget client",
		Long: `budget keeps a family's categories, accounts, transactions and planned
operations in sync with the budget server.

Register once with 'budget register', then list and record entries, or run
'budget browse' for the interactive view.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.initConfig,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (default: $HOME/.config/budget/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("api-url", "", "budget server base URL")
	flags.String("user-id", "", "act as this user instead of the registered one")

	_ = v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))
	_ = v.BindPFlag(config.KeyBaseURL, flags.Lookup("api-url"))
	_ = v.BindPFlag(config.KeyUserID, flags.Lookup("user-id"))

	root.AddCommand(registerCmd(c))
	root.AddCommand(categoriesCmd(c))
	root.AddCommand(accountsCmd(c))
	root.AddCommand(membersCmd(c))
	root.AddCommand(settingsCmd(c))
	root.AddCommand(transactionsCmd(c))
	root.AddCommand(plannedCmd(c))
	root.AddCommand(reportCmd(c))
	root.AddCommand(browseCmd(c))
	root.AddCommand(versionCmd())

	return root
}

func (c *budgetCLI) initConfig(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	v := c.viper
	config.SetDefaults(v)

	if c.cfgFile != "" {
		v.SetConfigFile(c.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".config", "budget"))
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("BUDGET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	if err := common.SetupLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	c.cfg = cfg
	common.LogDebug("configuration loaded", common.Fields{
		"base_url": cfg.BaseURL,
		"config":   v.ConfigFileUsed(),
	})
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "budget %s\n", version)
		},
	}
}
