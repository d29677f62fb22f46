package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/villagesim/npc-engine/pkg/npc"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists characters durably in a local SQLite database. The
// full JSON state is stored as a blob alongside queryable columns.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS characters (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	age        INTEGER NOT NULL,
	days_alive INTEGER NOT NULL,
	state      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// OpenSQLite opens (creating if needed) a SQLite character store.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) SaveCharacter(ctx context.Context, c *npc.Character) error {
	if c == nil {
		return fmt.Errorf("character cannot be nil")
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO characters (id, name, age, days_alive, state, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			age = excluded.age,
			days_alive = excluded.days_alive,
			state = excluded.state,
			updated_at = excluded.updated_at`,
		c.ID, c.Name, c.Age, c.DaysAlive, string(data), time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save character: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadCharacter(ctx context.Context, id string) (*npc.Character, error) {
	var state string
	err := s.db.QueryRowContext(ctx, `SELECT state FROM characters WHERE id = ?`, id).Scan(&state)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load character: %w", err)
	}

	var c npc.Character
	if err := json.Unmarshal([]byte(state), &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", err)
	}
	return &c, nil
}

func (s *SQLiteStore) ListCharacters(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM characters ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan character id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate characters: %w", err)
	}
	return ids, nil
}

func (s *SQLiteStore) DeleteCharacter(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite ping failed: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
