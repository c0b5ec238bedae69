// Package sqlitestore persists access tokens in a SQLite database.
package sqlitestore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jrsteele09/go-rider-auth/token"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

var _ token.Repo = (*Store)(nil)

// Store keeps one row per token key. The whole record is written by a
// single UPSERT statement.
type Store struct {
	sqlDB   *sql.DB
	nowFunc func() time.Time
}

// Open opens the database at path and creates the table if needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB, nowFunc: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) Upsert(ctx context.Context, key string, record token.StoredRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO access_tokens (token_key, expiration_ms, token, scopes, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(token_key) DO UPDATE SET
    expiration_ms = excluded.expiration_ms,
    token = excluded.token,
    scopes = excluded.scopes,
    updated_at = excluded.updated_at`,
		key, record.ExpirationMillis, record.Token, strings.Join(record.Scopes, " "), s.nowFunc().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("upsert token %s: %w", key, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (*token.StoredRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		rec    token.StoredRecord
		scopes string
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT expiration_ms, token, scopes FROM access_tokens WHERE token_key = ?`, key,
	).Scan(&rec.ExpirationMillis, &rec.Token, &scopes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, token.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get token %s: %w", key, err)
	}
	rec.Scopes = strings.Fields(scopes)
	return &rec, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM access_tokens WHERE token_key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete token %s: %w", key, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return token.ErrNotFound
	}
	return nil
}
