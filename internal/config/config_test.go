package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mauv0809/club-ladder/internal/rating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRating_Defaults(t *testing.T) {
	cfg, err := LoadRating("")
	require.NoError(t, err)
	assert.Equal(t, rating.DefaultConfig(), cfg)
}

func TestLoadRating_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rating.yaml")
	require.NoError(t, os.WriteFile(path, []byte("k_factor: 24\ntournament_multiplier: 3\nwin_bonus: 20\n"), 0o600))
	t.Setenv("RATING_WIN_BONUS", "18")

	cfg, err := LoadRating(path)
	require.NoError(t, err)

	assert.Equal(t, 24.0, cfg.KFactor)
	assert.Equal(t, 3.0, cfg.TournamentMultiplier)
	assert.Equal(t, 18, cfg.WinBonus, "env overrides the file")
	assert.Equal(t, rating.DefaultBaseRacePoints, cfg.BaseRacePoints)
	assert.Equal(t, rating.DefaultInitialElo, cfg.InitialElo)
}

func TestLoadRating_Invalid(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRating(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("non-positive k factor", func(t *testing.T) {
		t.Setenv("RATING_K_FACTOR", "0")
		_, err := LoadRating("")
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Setenv("DB_NAME", "ladder.db")
	t.Setenv("PORT", "8080")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_CHANNEL_ID", "C123")
	t.Setenv("RACE_RESET_CRON", "")

	cfg := Load()
	assert.Equal(t, "ladder.db", cfg.DBName)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.Slack.Enabled())
	assert.Equal(t, DefaultRaceResetCron, cfg.RaceResetCron)
	assert.Equal(t, rating.DefaultConfig(), cfg.Rating)
}
