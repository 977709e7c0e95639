package prefs

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS preferences (
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (user_id, name)
);`

// Store persists flat per-user preference records. Values are kept as raw
// JSON so booleans and numbers round-trip unchanged.
type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Get returns the stored record for a user. Unknown users yield an empty
// record, never an error about absence.
func (s *Store) Get(userID string) (map[string]json.RawMessage, error) {
	rows, err := s.db.Query(`
        SELECT name, value
        FROM preferences
        WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("query preferences: %w", err)
	}
	defer rows.Close()

	record := make(map[string]json.RawMessage)
	for rows.Next() {
		var name string
		var value []byte
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scan preference: %w", err)
		}
		record[name] = json.RawMessage(value)
	}
	return record, rows.Err()
}

// Merge upserts the given settings into the user's record. Settings not
// named in values are left untouched.
func (s *Store) Merge(userID string, values map[string]json.RawMessage) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for name, value := range values {
		_, err := tx.Exec(`
            INSERT INTO preferences (user_id, name, value, updated_at)
            VALUES (?, ?, ?, CURRENT_TIMESTAMP)
            ON CONFLICT (user_id, name) DO UPDATE SET
                value = excluded.value,
                updated_at = CURRENT_TIMESTAMP`, userID, name, string(value))
		if err != nil {
			return fmt.Errorf("upsert preference %q: %w", name, err)
		}
	}

	return tx.Commit()
}

func (s *Store) Close() error {
	return s.db.Close()
}
