package persist

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/craftedcodex/senthrix/pkg/store"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS chats (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    created_at TEXT NOT NULL,
    messages   TEXT NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS meta (
    key   TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);
`

// SQLiteGateway persists snapshots in a SQLite database. Messages are
// stored as a JSON column per chat; the chat counter lives in the meta
// table.
type SQLiteGateway struct {
	db *sql.DB
}

// NewSQLiteGateway opens (or creates) the database at dbPath and ensures
// the schema exists.
func NewSQLiteGateway(dbPath string) (*SQLiteGateway, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &SQLiteGateway{db: db}, nil
}

// Save replaces the stored snapshot in one transaction.
func (g *SQLiteGateway) Save(snap store.Snapshot) error {
	tx, err := g.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM chats"); err != nil {
		return fmt.Errorf("failed to clear chats: %w", err)
	}

	for id, chat := range snap.Chats {
		messages, err := json.Marshal(chat.Messages)
		if err != nil {
			return fmt.Errorf("failed to marshal messages: %w", err)
		}
		_, err = tx.Exec(
			"INSERT INTO chats (id, title, created_at, messages) VALUES (?, ?, ?, ?)",
			id, chat.Title, chat.CreatedAt.Format(time.RFC3339Nano), string(messages),
		)
		if err != nil {
			return fmt.Errorf("failed to insert chat %s: %w", id, err)
		}
	}

	_, err = tx.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES ('chat_counter', ?)",
		snap.ChatCounter,
	)
	if err != nil {
		return fmt.Errorf("failed to store chat counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	log.Debug().Int("chats", len(snap.Chats)).Msg("Snapshot saved to sqlite")

	return nil
}

// Load reads the stored snapshot. A database that was never saved to
// returns ErrNotFound.
func (g *SQLiteGateway) Load() (store.Snapshot, error) {
	var snap store.Snapshot

	var counter int
	err := g.db.QueryRow("SELECT value FROM meta WHERE key = 'chat_counter'").Scan(&counter)
	if err == sql.ErrNoRows {
		return snap, ErrNotFound
	}
	if err != nil {
		return snap, fmt.Errorf("failed to read chat counter: %w", err)
	}

	rows, err := g.db.Query("SELECT id, title, created_at, messages FROM chats")
	if err != nil {
		return snap, fmt.Errorf("failed to query chats: %w", err)
	}
	defer rows.Close()

	snap.ChatCounter = counter
	snap.Chats = make(map[string]store.ChatSnapshot)

	for rows.Next() {
		var id, title, createdAt, messagesJSON string
		if err := rows.Scan(&id, &title, &createdAt, &messagesJSON); err != nil {
			return snap, fmt.Errorf("failed to scan chat row: %w", err)
		}

		created, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			log.Warn().Str("chatId", id).Err(err).Msg("Invalid created_at, skipping chat")
			continue
		}

		var messages []store.Message
		if err := json.Unmarshal([]byte(messagesJSON), &messages); err != nil {
			log.Warn().Str("chatId", id).Err(err).Msg("Invalid messages column, skipping chat")
			continue
		}

		snap.Chats[id] = store.ChatSnapshot{
			Title:     title,
			Messages:  messages,
			CreatedAt: created,
		}
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("failed to read chat rows: %w", err)
	}

	return snap, nil
}

// Close closes the database.
func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}
