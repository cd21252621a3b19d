package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/family-budget/internal/api"
	"github.com/Veraticus/family-budget/internal/cli"
	"github.com/Veraticus/family-budget/internal/common"
	"github.com/Veraticus/family-budget/internal/config"
	"github.com/Veraticus/family-budget/internal/engine"
	"github.com/Veraticus/family-budget/internal/model"
	"github.com/Veraticus/family-budget/internal/service"
	"github.com/Veraticus/family-budget/internal/viewsync"
	"github.com/spf13/viper"
)

// newService builds the backend client. Tests replace it.
var newService = func(cfg *config.Config) (service.RemoteBudgetService, error) {
	return api.NewClient(api.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout})
}

// now is the clock used for default periods and dates.
var now = time.Now

// budgetCLI is the state shared by every command of one invocation.
type budgetCLI struct {
	viper   *viper.Viper
	cfg     *config.Config
	cfgFile string
}

// engine creates an engine acting as the configured or registered user,
// over a fresh view filtered to the current month.
func (c *budgetCLI) engine() (*engine.Engine, error) {
	userID, err := c.cfg.ResolveUserID()
	if err != nil {
		return nil, common.NewUserError("not registered; run 'budget register' first", err)
	}
	return c.engineAs(userID)
}

func (c *budgetCLI) engineAs(userID string) (*engine.Engine, error) {
	svc, err := newService(c.cfg)
	if err != nil {
		return nil, err
	}
	view := viewsync.New(viewsync.Filters{Period: model.MonthOf(now())})
	view.SetShowArchived(c.cfg.ShowArchived)
	return engine.New(svc, view, userID), nil
}

// loadReference fetches the reference collections and applies those that
// loaded. It fails only if one of the required sections failed.
func loadReference(ctx context.Context, eng *engine.Engine, required ...viewsync.Section) error {
	data := eng.FetchReference(ctx)
	_ = eng.ApplyReference(data)

	errs := map[viewsync.Section]error{
		viewsync.SectionCategories: data.CategoriesErr,
		viewsync.SectionAccounts:   data.AccountsErr,
		viewsync.SectionMembers:    data.MembersErr,
		viewsync.SectionSettings:   data.SettingsErr,
	}
	for _, section := range required {
		if err := errs[section]; err != nil {
			return fmt.Errorf("failed to load %s: %w", section, err)
		}
	}
	for section, err := range errs {
		if err != nil {
			common.LogWarn(err, "section failed to load", common.Fields{"section": string(section)})
		}
	}
	return nil
}

// parsePeriod turns --from/--to into a period. Both empty means the
// current month.
func parsePeriod(from, to string) (model.Period, error) {
	if from == "" && to == "" {
		return model.MonthOf(now()), nil
	}
	var p model.Period
	if from != "" {
		t, err := model.ParseDate(from)
		if err != nil {
			return p, common.NewValidationError("from", "must be YYYY-MM-DD")
		}
		p.Start = t
	}
	if to != "" {
		t, err := model.ParseDate(to)
		if err != nil {
			return p, common.NewValidationError("to", "must be YYYY-MM-DD")
		}
		p.End = t
	}
	if err := p.Validate(); err != nil {
		return p, common.NewValidationError("period", err.Error())
	}
	return p, nil
}

// parseAmount parses a positive user-typed amount into minor units.
func parseAmount(s string) (int64, error) {
	minor, err := model.ParseMinor(s)
	if err != nil {
		return 0, common.NewValidationError("amount", fmt.Sprintf("%q is not a positive amount", s))
	}
	return minor, nil
}

// parseBalance parses an account balance, which may be zero or negative.
func parseBalance(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.Trim(s, "0.,") == "" {
		return 0, nil
	}
	negative := strings.HasPrefix(s, "-")
	minor, err := model.ParseMinor(strings.TrimPrefix(s, "-"))
	if err != nil {
		return 0, common.NewValidationError("balance", fmt.Sprintf("%q is not an amount", s))
	}
	if negative {
		minor = -minor
	}
	return minor, nil
}

// parseWhen parses an optional YYYY-MM-DD date, defaulting to now.
func parseWhen(field, s string) (model.Timestamp, error) {
	if s == "" {
		return model.NewTimestamp(now()), nil
	}
	t, err := model.ParseDate(s)
	if err != nil {
		return model.Timestamp{}, common.NewValidationError(field, "must be YYYY-MM-DD")
	}
	return model.NewTimestamp(t), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func success(format string, args ...any) string {
	return cli.FormatSuccess(fmt.Sprintf(format, args...))
}
