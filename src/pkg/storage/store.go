package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Store is a flat key/value store holding one JSON document per key.
type Store interface {
	// Read returns the raw value of key, or ErrNotFound.
	Read(key Key) ([]byte, error)
	Write(key Key, value []byte) error
	// WriteAll replaces several keys in one unit; either all or none are written.
	WriteAll(values map[Key][]byte) error
	// Flush makes previous writes durable.
	Flush() error
	Close() error
}

// sqlStore keeps the key/value pairs in the kv table of a Database.
type sqlStore struct {
	db Database
}

func newSQLStore(db Database) *sqlStore {
	return &sqlStore{db: db}
}

func (s *sqlStore) Read(key Key) ([]byte, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", string(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return []byte(value), nil
}

const upsertQuery = `
	INSERT INTO kv (key, value, updated) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated = excluded.updated`

func (s *sqlStore) Write(key Key, value []byte) error {
	if _, err := s.db.Exec(upsertQuery, string(key), string(value), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *sqlStore) WriteAll(values map[Key][]byte) error {
	if err := s.db.Begin(); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	now := time.Now().UTC()
	for key, value := range values {
		if _, err := s.db.Exec(upsertQuery, string(key), string(value), now); err != nil {
			_ = s.db.Rollback()
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
	}
	if err := s.db.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Flush checkpoints the write-ahead log into the main database file.
func (s *sqlStore) Flush() error {
	var busy, logFrames, checkpointed int
	if err := s.db.QueryRow("PRAGMA wal_checkpoint(PASSIVE)").Scan(&busy, &logFrames, &checkpointed); err != nil {
		return fmt.Errorf("failed to checkpoint: %w", err)
	}
	return nil
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}
