// Package store persists uploaded templates: the binary bodies on disk, the
// configuration documents and their version history in SQLite. It also
// resolves stored body paths for the compiler's path fallback.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound reports an unknown template code.
var ErrNotFound = errors.New("store: template not found")

// Record is one stored template.
type Record struct {
	ID        string
	Code      string
	Name      string
	Version   int
	BodyPath  string
	Config    []byte
	UpdatedAt time.Time
}

// Store keeps template metadata in SQLite and bodies under a storage root.
type Store struct {
	db     *sql.DB
	files  *Files
	logger *slog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS templates (
	id         TEXT PRIMARY KEY,
	code       TEXT NOT NULL UNIQUE,
	name       TEXT NOT NULL DEFAULT '',
	version    INTEGER NOT NULL DEFAULT 1,
	body_path  TEXT NOT NULL DEFAULT '',
	config     TEXT NOT NULL DEFAULT '{}',
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS template_config_history (
	template_id TEXT NOT NULL,
	version     INTEGER NOT NULL,
	config      TEXT NOT NULL,
	saved_at    TEXT NOT NULL,
	PRIMARY KEY (template_id, version)
);`

// Open opens (creating if needed) the store database at dbPath with template
// bodies kept under root.
func Open(dbPath, root string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	files, err := NewFiles(root)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}

	logger.Info("template store opened", "db", dbPath, "root", root)
	return &Store{db: db, files: files, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Files exposes the body storage for path resolution.
func (s *Store) Files() *Files {
	return s.files
}

// SaveBody stores a freshly uploaded template body and records it against
// the template code, creating the record when the code is new and bumping
// the version otherwise. It returns the stored relative path.
func (s *Store) SaveBody(ctx context.Context, code, name string, data []byte) (string, error) {
	relPath, err := s.files.WriteBody(code, data)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	result, err := s.db.ExecContext(ctx,
		`UPDATE templates SET name = ?, body_path = ?, version = version + 1, updated_at = ? WHERE code = ?`,
		name, relPath, now, code)
	if err != nil {
		return "", fmt.Errorf("store: update template %s: %w", code, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("store: update template %s: %w", code, err)
	}
	if affected == 0 {
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO templates (id, code, name, body_path, updated_at) VALUES (?, ?, ?, ?, ?)`,
			uuid.NewString(), code, name, relPath, now)
		if err != nil {
			return "", fmt.Errorf("store: insert template %s: %w", code, err)
		}
	}

	s.logger.Info("template body stored", "code", code, "path", relPath)
	return relPath, nil
}

// SaveConfig persists the raw configuration document for a template and
// appends it to the version history.
func (s *Store) SaveConfig(ctx context.Context, code string, raw []byte) error {
	record, err := s.Template(ctx, code)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.ExecContext(ctx,
		`UPDATE templates SET config = ?, updated_at = ? WHERE code = ?`,
		string(raw), now, code); err != nil {
		return fmt.Errorf("store: save config for %s: %w", code, err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO template_config_history (template_id, version, config, saved_at) VALUES (?, ?, ?, ?)`,
		record.ID, record.Version, string(raw), now); err != nil {
		return fmt.Errorf("store: save config history for %s: %w", code, err)
	}
	return nil
}

// Template loads one record by code.
func (s *Store) Template(ctx context.Context, code string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, code, name, version, body_path, config, updated_at FROM templates WHERE code = ?`, code)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	if err != nil {
		return Record{}, fmt.Errorf("store: load template %s: %w", code, err)
	}
	return record, nil
}

// List returns all stored templates ordered by code.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, code, name, version, body_path, config, updated_at FROM templates ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("store: list templates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("store: list templates: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list templates: %w", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var record Record
	var configText, updatedAt string
	if err := row.Scan(&record.ID, &record.Code, &record.Name, &record.Version,
		&record.BodyPath, &configText, &updatedAt); err != nil {
		return Record{}, err
	}
	record.Config = []byte(configText)
	if parsed, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		record.UpdatedAt = parsed
	}
	return record, nil
}
