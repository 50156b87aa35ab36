package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"verkskra/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository stores the serialized collection in a single row keyed by
// storage key, last-writer-wins. The document model is kept on purpose: the
// ledger always reads and writes the whole collection.
type SQLiteRepository struct {
	db  *sql.DB
	key string
}

func NewSQLiteRepository(dbPath, key string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, key: key}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Load(ctx context.Context) ([]core.Project, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM ledger_state WHERE key = ?`, r.key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger state: %w", err)
	}

	var projects []core.Project
	if err := json.Unmarshal([]byte(payload), &projects); err != nil {
		return nil, fmt.Errorf("parse ledger state: %w", err)
	}
	return projects, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, projects []core.Project) error {
	payload, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("marshal projects: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO ledger_state (key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		r.key, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write ledger state: %w", err)
	}
	return nil
}
