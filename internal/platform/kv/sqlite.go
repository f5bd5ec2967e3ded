package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (creating if needed) the database file at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating sqlite dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps :memory: databases shared and serialises writes.
	db.SetMaxOpenConns(1)

	s := NewSQLiteStore(db)
	if err := s.InitTable(ctx); err != nil {
		db.Close()
		return nil, err
	}
	log.Printf("INFO: SQLite store ready at %s", path)
	return s, nil
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

func (s *SQLiteStore) InitTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS kv_entries (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			expires_at INTEGER NOT NULL DEFAULT 0
		)
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

func (s *SQLiteStore) expiry(ttl time.Duration) int64 {
	if ttl <= 0 {
		return 0
	}
	return s.now().Add(ttl).UnixMilli()
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value, expires_at FROM kv_entries WHERE key = ?`
	var value []byte
	var expiresAt int64
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(key)
	}
	if err != nil {
		return nil, err
	}
	if expiresAt != 0 && expiresAt <= s.now().UnixMilli() {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ? AND expires_at = ?`, key, expiresAt); err != nil {
			log.Printf("WARN: purging expired key %s: %v", key, err)
		}
		return nil, notFound(key)
	}
	return value, nil
}

// GetMany skips expired rows without purging them; Get purges on access.
func (s *SQLiteStore) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	found := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return found, nil
	}
	args := make([]interface{}, 0, len(keys)+1)
	for _, key := range keys {
		args = append(args, key)
	}
	args = append(args, s.now().UnixMilli())
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	query := `SELECT key, value FROM kv_entries WHERE key IN (` + placeholders + `) AND (expires_at = 0 OR expires_at > ?)`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		found[key] = value
	}
	return found, rows.Err()
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	query := `
		INSERT INTO kv_entries (key, value, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at
	`
	_, err := s.db.ExecContext(ctx, query, key, value, s.expiry(ttl))
	return err
}

// SetNX writes only when the key is absent or expired.
func (s *SQLiteStore) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	query := `
		INSERT INTO kv_entries (key, value, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at
		WHERE kv_entries.expires_at != 0 AND kv_entries.expires_at <= ?
	`
	res, err := s.db.ExecContext(ctx, query, key, value, s.expiry(ttl), s.now().UnixMilli())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
