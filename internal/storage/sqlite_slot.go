package storage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteSlot keeps slot values in a kv table inside a local sqlite database.
// One database file can carry several named slots.
type SQLiteSlot struct {
	db  *sql.DB
	key string
}

func NewSQLiteSlot(path, key string) (*SQLiteSlot, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open slot database: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS slots (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init slots table: %w", err)
	}
	return &SQLiteSlot{db: db, key: key}, nil
}

func (s *SQLiteSlot) Get() (string, bool, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, s.key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *SQLiteSlot) Set(value string) error {
	_, err := s.db.Exec(`INSERT INTO slots (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, s.key, value)
	return err
}

func (s *SQLiteSlot) Remove() error {
	_, err := s.db.Exec(`DELETE FROM slots WHERE key = ?`, s.key)
	return err
}

func (s *SQLiteSlot) Close() error {
	return s.db.Close()
}
