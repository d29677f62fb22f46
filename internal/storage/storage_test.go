package storage

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/villagesim/npc-engine/pkg/action"
	"github.com/villagesim/npc-engine/pkg/npc"
)

func testCharacter(t *testing.T, id string) *npc.Character {
	t.Helper()
	c, err := npc.NewWithArchetype(id, "social_leader", "", 30, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	c.PerformAction(action.GatherFood, true, &npc.Outcome{FoodGained: 0.2})
	return c
}

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewRedisStore(mr.Addr(), 0, logger), mr
}

// exerciseStore runs the shared contract every backend must satisfy.
func exerciseStore(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	// Missing characters load as nil without error.
	loaded, err := store.LoadCharacter(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	c := testCharacter(t, "villager_1")
	require.NoError(t, store.SaveCharacter(ctx, c))

	loaded, err = store.LoadCharacter(ctx, "villager_1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, c.ID, loaded.ID)
	assert.Equal(t, c.Name, loaded.Name)
	assert.Equal(t, c.Personality, loaded.Personality)
	assert.Equal(t, c.Experience.Leadership, loaded.Experience.Leadership)
	assert.Equal(t, len(c.Trauma.Memories), len(loaded.Trauma.Memories))
	assert.Equal(t, c.LastAction, loaded.LastAction)

	// Saving again overwrites in place.
	c.AdvanceDay(nil)
	require.NoError(t, store.SaveCharacter(ctx, c))
	loaded, err = store.LoadCharacter(ctx, "villager_1")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.DaysAlive)

	require.NoError(t, store.SaveCharacter(ctx, testCharacter(t, "villager_2")))
	ids, err := store.ListCharacters(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"villager_1", "villager_2"}, ids)

	require.NoError(t, store.DeleteCharacter(ctx, "villager_1"))
	loaded, err = store.LoadCharacter(ctx, "villager_1")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Deleting a missing character is not an error.
	require.NoError(t, store.DeleteCharacter(ctx, "villager_1"))

	assert.Error(t, store.SaveCharacter(ctx, nil))
}

func TestMockStore(t *testing.T) {
	store := NewMockStore()
	defer store.Close()
	exerciseStore(t, store)
}

func TestRedisStore(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer mr.Close()
	defer store.Close()
	exerciseStore(t, store)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "characters.db")
	store, err := OpenSQLite(path)
	require.NoError(t, err)
	defer store.Close()
	exerciseStore(t, store)
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := OpenSQLite("  ")
	assert.Error(t, err)
}
