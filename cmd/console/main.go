// Command console is an interactive character inspector. It loads the
// settlement from the configured storage backend (creating a fresh one
// when the store is empty), renders each character's psychological state,
// and lets you step simulation days and watch the state evolve.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/villagesim/npc-engine/internal/config"
	"github.com/villagesim/npc-engine/internal/storage"
	"github.com/villagesim/npc-engine/pkg/npc"
	"github.com/villagesim/npc-engine/pkg/personality"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal; keep backend logging out of it.
	logr := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := storage.Open(cfg, logr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := store.Ping(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Storage not reachable: %v\n", err)
		os.Exit(1)
	}

	characters, err := loadOrCreateSettlement(ctx, store, cfg.SettlementSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load settlement: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(NewConsoleUI(store, characters),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

// loadOrCreateSettlement loads every stored character, or seeds one
// character per archetype when the store is empty.
func loadOrCreateSettlement(ctx context.Context, store storage.Store, size int) ([]*npc.Character, error) {
	ids, err := store.ListCharacters(ctx)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if len(ids) > 0 {
		characters := make([]*npc.Character, 0, len(ids))
		for _, id := range ids {
			c, err := store.LoadCharacter(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("load character %s: %w", id, err)
			}
			if c != nil {
				characters = append(characters, c.WithRand(rng))
			}
		}
		return characters, nil
	}

	archetypes := personality.Archetypes()
	if size > len(archetypes) {
		size = len(archetypes)
	}
	if size < 1 {
		size = 1
	}

	characters := make([]*npc.Character, 0, size)
	for i := 0; i < size; i++ {
		c, err := npc.NewWithArchetype(fmt.Sprintf("settler_%d", i+1), archetypes[i], "", 20+rng.Intn(30), rng)
		if err != nil {
			return nil, err
		}
		if err := store.SaveCharacter(ctx, c); err != nil {
			return nil, fmt.Errorf("save character %s: %w", c.ID, err)
		}
		characters = append(characters, c)
	}
	return characters, nil
}
