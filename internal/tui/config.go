package tui

import (
	"time"

	"github.com/Veraticus/family-budget/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme          *themes.Theme
	Width          int
	Height         int
	RequestTimeout time.Duration
	ShowHelp       bool
	Compact        bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Width:          80,
		Height:         24,
		RequestTimeout: 30 * time.Second,
	}
}

// WithTheme fixes the theme instead of following the user's settings.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = &theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithRequestTimeout bounds every backend request made by the UI.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.RequestTimeout = d
		}
	}
}

// WithHelp shows the full key help on start.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
