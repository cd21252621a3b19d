// Package config loads client configuration and the local session.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/family-budget/internal/common"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyBaseURL      = "api.base_url"
	KeyUserID       = "api.user_id"
	KeyTimeout      = "api.timeout"
	KeySessionPath  = "session.path"
	KeyShowArchived = "display.show_archived"
	KeyLogLevel     = "logging.level"
	KeyLogFormat    = "logging.format"
)

// Defaults.
const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 30 * time.Second
)

// Config is the resolved client configuration.
type Config struct {
	BaseURL      string
	UserID       string
	SessionPath  string
	LogLevel     string
	LogFormat    string
	Timeout      time.Duration
	ShowArchived bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyShowArchived, false)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		BaseURL:      strings.TrimSpace(v.GetString(KeyBaseURL)),
		UserID:       strings.TrimSpace(v.GetString(KeyUserID)),
		SessionPath:  ExpandPath(v.GetString(KeySessionPath)),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
		Timeout:      v.GetDuration(KeyTimeout),
		ShowArchived: v.GetBool(KeyShowArchived),
	}

	if cfg.SessionPath == "" {
		path, err := DefaultSessionPath()
		if err != nil {
			return nil, fmt.Errorf("resolve session path: %w", err)
		}
		cfg.SessionPath = path
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if c.BaseURL == "" {
		problems = append(problems, "api base URL cannot be empty")
	} else if parsed, err := url.Parse(c.BaseURL); err != nil {
		problems = append(problems, fmt.Sprintf("invalid api base URL '%s': %v", c.BaseURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		problems = append(problems, fmt.Sprintf("invalid api base URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	} else if parsed.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid api base URL '%s': missing host", c.BaseURL))
	}

	if c.Timeout < time.Second {
		problems = append(problems, fmt.Sprintf("invalid api timeout %v: must be at least 1 second", c.Timeout))
	} else if c.Timeout > 10*time.Minute {
		problems = append(problems, fmt.Sprintf("invalid api timeout %v: must be at most 10 minutes", c.Timeout))
	}

	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}
	switch c.LogFormat {
	case "", "console", "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be 'console' or 'json'", c.LogFormat))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w:\n- %s", common.ErrInvalidConfig, strings.Join(problems, "\n- "))
	}
	return nil
}

// DefaultSessionPath returns $XDG_DATA_HOME/budget/session.json, falling
// back to ~/.local/share.
func DefaultSessionPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "budget", "session.json"), nil
}
