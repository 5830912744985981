package state

import (
	"database/sql"
	"fmt"

	"github.com/atomicstack/snek-console/internal/logging/events"
	_ "modernc.org/sqlite"
)

// HistoryDB persists submissions across console runs.
type HistoryDB struct {
	db   *sql.DB
	path string
}

// OpenHistoryDB opens (creating if needed) the history database at path.
func OpenHistoryDB(path string) (*HistoryDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		entry TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history table: %w", err)
	}
	return &HistoryDB{db: db, path: path}, nil
}

// Load returns up to limit entries, most recent first.
func (h *HistoryDB) Load(limit int) ([]string, error) {
	rows, err := h.db.Query(`SELECT entry FROM history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()
	var entries []string
	for rows.Next() {
		var entry string
		if err := rows.Scan(&entry); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	events.History.Load(len(entries), h.path)
	return entries, nil
}

// Append records one submission.
func (h *HistoryDB) Append(entry string) error {
	if _, err := h.db.Exec(`INSERT INTO history (entry) VALUES (?)`, entry); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// Trim deletes everything but the newest keep entries.
func (h *HistoryDB) Trim(keep int) error {
	_, err := h.db.Exec(`DELETE FROM history WHERE id NOT IN (SELECT id FROM history ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return fmt.Errorf("trim history: %w", err)
	}
	return nil
}

func (h *HistoryDB) Close() error {
	return h.db.Close()
}
