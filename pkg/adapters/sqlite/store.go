// Package sqlite stores bot identities in a SQLite database, so one file
// can remember many bots.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/brush/pkg/domain"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// IdentityStore implements ports.IdentityStore using SQLite in WAL mode.
type IdentityStore struct {
	db *sql.DB
}

// Open creates or opens the database at path and applies the schema.
// Safe to call on an existing database.
func Open(path string) (*IdentityStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &IdentityStore{db: db}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *IdentityStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save upserts the identity.
func (s *IdentityStore) Save(ctx context.Context, identity domain.Identity) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO identities (name, id, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET id = excluded.id, updated_at = excluded.updated_at
	`, identity.Name, identity.ID, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save identity: %w", err)
	}
	return nil
}

// Load returns the identity stored under name.
func (s *IdentityStore) Load(ctx context.Context, name string) (domain.Identity, error) {
	identity := domain.Identity{Name: name}
	err := s.db.QueryRowContext(ctx, `SELECT id FROM identities WHERE name = ?`, name).Scan(&identity.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Identity{}, domain.ErrIdentityNotFound
	}
	if err != nil {
		return domain.Identity{}, fmt.Errorf("failed to load identity: %w", err)
	}
	return identity, nil
}

// Delete removes the identity stored under name.
func (s *IdentityStore) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM identities WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete identity: %w", err)
	}
	return nil
}

// List returns every stored identity ordered by name.
func (s *IdentityStore) List(ctx context.Context) ([]domain.Identity, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, id FROM identities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list identities: %w", err)
	}
	defer rows.Close()

	var out []domain.Identity
	for rows.Next() {
		var identity domain.Identity
		if err := rows.Scan(&identity.Name, &identity.ID); err != nil {
			return nil, fmt.Errorf("failed to scan identity: %w", err)
		}
		out = append(out, identity)
	}
	return out, rows.Err()
}
