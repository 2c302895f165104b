package history

import (
	"database/sql"
	"fmt"

	// SQLite driver, registered as "sqlite3".
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS history (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	entry      TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLite is a History backed by a SQLite database, suitable for sharing one
// history across processes.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) a SQLite-backed history at path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history table: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Entries returns all stored entries, oldest first.
func (s *SQLite) Entries() ([]string, error) {
	rows, err := s.db.Query(`SELECT entry FROM history ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []string
	for rows.Next() {
		var entry string
		if err := rows.Scan(&entry); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history rows: %w", err)
	}
	return entries, nil
}

// Append stores a new entry.
func (s *SQLite) Append(entry string) error {
	if _, err := s.db.Exec(`INSERT INTO history (entry) VALUES (?)`, entry); err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
