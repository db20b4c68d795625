package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/platform/logger"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const createKVTable = `CREATE TABLE IF NOT EXISTS local_state (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);`

type SQLiteStore struct {
	db     *sql.DB
	logger *logger.Logger
}

func NewSQLiteStore(ctx context.Context, path string, log *logger.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	// single writer
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, createKVTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create local_state table: %w", err)
	}

	log.Info("SQLite local storage ready", zap.String("path", path))
	return &SQLiteStore{db: db, logger: log.Named("SQLiteStore")}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM local_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		s.logger.Error("failed to read key", zap.String("key", key), zap.Error(err))
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO local_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		s.logger.Error("failed to write key", zap.String("key", key), zap.Error(err))
	}
	return err
}

func (s *SQLiteStore) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM local_state WHERE key = ?`, key); err != nil {
			s.logger.Error("failed to delete key", zap.String("key", key), zap.Error(err))
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
