// Package storage persists character state. Backends share one interface:
// an in-memory mock for tests, Redis for ephemeral simulation state, and
// SQLite for durable archives. All backends store the character's full
// JSON serialization, so a load reconstructs the exact state including
// every history entry.
package storage

import (
	"context"

	"github.com/villagesim/npc-engine/pkg/npc"
)

// Store is the persistence interface for character state.
type Store interface {
	// SaveCharacter persists the full character state.
	SaveCharacter(ctx context.Context, c *npc.Character) error

	// LoadCharacter returns the character with the given id, or nil if it
	// does not exist.
	LoadCharacter(ctx context.Context, id string) (*npc.Character, error)

	// ListCharacters returns the ids of every stored character.
	ListCharacters(ctx context.Context) ([]string, error)

	// DeleteCharacter removes a character. Deleting a missing character
	// is not an error.
	DeleteCharacter(ctx context.Context, id string) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
