package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/family-budget/internal/common"
	"github.com/Veraticus/family-budget/internal/engine"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the browser on the alternate screen and blocks until the user
// quits or ctx is canceled.
func Run(ctx context.Context, eng *engine.Engine, opts ...Option) error {
	if eng == nil {
		return fmt.Errorf("tui: engine is required")
	}
	if eng.UserID() == "" {
		return common.ErrNotRegistered
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	program := tea.NewProgram(
		newModel(ctx, eng, cfg),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	common.LogDebug("starting browser", common.Fields{"user_id": eng.UserID()})

	// Log lines would corrupt the alternate screen.
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer slog.SetDefault(previous)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
