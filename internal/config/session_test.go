package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/family-budget/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	want := &Session{
		RegisteredAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		UserID:       "user-1",
		FamilyID:     "fam-1",
		Name:         "Ada",
		Currency:     "EUR",
	}

	require.NoError(t, SaveSession(path, want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := LoadSession(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadSession_Missing(t *testing.T) {
	_, err := LoadSession(filepath.Join(t.TempDir(), "session.json"))
	require.ErrorIs(t, err, common.ErrNotRegistered)
}

func TestLoadSession_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := LoadSession(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrNotRegistered)
}

func TestLoadSession_NoUserID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"family_id": "fam-1"}`), 0600))

	_, err := LoadSession(path)
	require.ErrorIs(t, err, common.ErrNotRegistered)
}

func TestConfig_ResolveUserID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	t.Run("override wins", func(t *testing.T) {
		cfg := &Config{UserID: "user-override", SessionPath: path}
		id, err := cfg.ResolveUserID()
		require.NoError(t, err)
		assert.Equal(t, "user-override", id)
	})

	t.Run("not registered", func(t *testing.T) {
		cfg := &Config{SessionPath: path}
		_, err := cfg.ResolveUserID()
		require.ErrorIs(t, err, common.ErrNotRegistered)
	})

	t.Run("from session", func(t *testing.T) {
		require.NoError(t, SaveSession(path, &Session{UserID: "user-1"}))
		cfg := &Config{SessionPath: path}
		id, err := cfg.ResolveUserID()
		require.NoError(t, err)
		assert.Equal(t, "user-1", id)
	})
}
