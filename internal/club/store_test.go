package club_test

import (
	"context"
	"testing"

	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) club.ClubStore {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return club.New(db)
}

func strPtr(s string) *string { return &s }

func TestUpsertAndGetPlayers(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	err := store.UpsertPlayers(ctx, "club-a", []club.PlayerInfo{
		{ID: "p1", Name: "Player One", AvatarURL: strPtr("https://img/p1.png")},
		{ID: "p2", Name: "Player Two"},
		{ID: "p3"},
	})
	require.NoError(t, err)
	require.NoError(t, store.UpsertPlayers(ctx, "club-b", []club.PlayerInfo{{ID: "p4", Name: "Elsewhere"}}))

	assert.True(t, store.IsKnownPlayer(ctx, "club-a", "p1"))
	assert.False(t, store.IsKnownPlayer(ctx, "club-a", "p4"))
	assert.False(t, store.IsKnownPlayer(ctx, "club-b", "p1"))

	all, err := store.GetAllPlayers(ctx, "club-a")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Player One", all[0].Name)
	assert.Equal(t, "p3", all[2].Name, "a missing name falls back to the id")

	some, err := store.GetPlayers(ctx, "club-a", []string{"p1", "p2", "unknown"})
	require.NoError(t, err)
	require.Len(t, some, 2)
	require.NotNil(t, some[0].AvatarURL)
	assert.Equal(t, "https://img/p1.png", *some[0].AvatarURL)
	assert.Nil(t, some[1].AvatarURL)
}

func TestUpsertPlayers_UpdatesExisting(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertPlayers(ctx, "club-a", []club.PlayerInfo{
		{ID: "p1", Name: "Old Name", AvatarURL: strPtr("https://img/p1.png")},
	}))
	require.NoError(t, store.UpsertPlayers(ctx, "club-a", []club.PlayerInfo{
		{ID: "p1", Name: "New Name"},
	}))

	players, err := store.GetPlayers(ctx, "club-a", []string{"p1"})
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "New Name", players[0].Name)
	require.NotNil(t, players[0].AvatarURL, "avatar is kept when the update has none")
	assert.Equal(t, "https://img/p1.png", *players[0].AvatarURL)
}

func TestGetPlayers_Empty(t *testing.T) {
	store := setupTestDB(t)

	players, err := store.GetPlayers(context.Background(), "club-a", nil)
	require.NoError(t, err)
	assert.Empty(t, players)

	require.NoError(t, store.UpsertPlayers(context.Background(), "club-a", nil))
}
