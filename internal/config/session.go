package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/family-budget/internal/common"
)

// Session is the identity saved after registration.
type Session struct {
	RegisteredAt time.Time `json:"registered_at"`
	UserID       string    `json:"user_id"`
	FamilyID     string    `json:"family_id"`
	Name         string    `json:"name"`
	Currency     string    `json:"currency"`
}

// LoadSession reads the session file. A missing file yields
// common.ErrNotRegistered.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: no session at %s", common.ErrNotRegistered, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", path, err)
	}
	if session.UserID == "" {
		return nil, fmt.Errorf("%w: session at %s has no user id", common.ErrNotRegistered, path)
	}
	return &session, nil
}

// SaveSession writes the session file readable by the owner only.
func SaveSession(path string, session *Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace session: %w", err)
	}

	slog.Debug("Saved session", "path", path, "user_id", session.UserID)
	return nil
}

// ResolveUserID returns the configured user id, or the one saved in the
// session file.
func (c *Config) ResolveUserID() (string, error) {
	if c.UserID != "" {
		return c.UserID, nil
	}
	session, err := LoadSession(c.SessionPath)
	if err != nil {
		return "", err
	}
	return session.UserID, nil
}
