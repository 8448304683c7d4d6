package variant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/goliatone/go-formguard/pkg/snapshot"
)

const memoryDSN = ":memory:"

// SQLiteStore implements Store on a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens or creates the variant database at dbPath. The path
// ":memory:" opens a private in-memory database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, errors.New("variant: sqlite path is required")
	}

	dsn := memoryDSN
	if dbPath != memoryDSN {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("variant: create db dir: %w", err)
		}
		dsn = dbPath + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("variant: open db: %w", err)
	}
	if dbPath == memoryDSN {
		db.SetMaxOpenConns(1)
	}

	s := &SQLiteStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("variant: migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS variants (
		id          TEXT PRIMARY KEY,
		key         TEXT NOT NULL,
		name        TEXT NOT NULL,
		snapshot    TEXT NOT NULL,
		is_default  INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_variants_key_name ON variants(key, name);
	CREATE INDEX IF NOT EXISTS idx_variants_key_default ON variants(key, is_default);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Save(ctx context.Context, v Variant) (Variant, error) {
	v, err := normalise(v)
	if err != nil {
		return Variant{}, err
	}
	payload, err := snapshot.Marshal(v.Snapshot)
	if err != nil {
		return Variant{}, err
	}
	now := s.now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Variant{}, fmt.Errorf("variant: begin: %w", err)
	}
	defer tx.Rollback()

	existing, err := scanVariant(tx.QueryRowContext(ctx,
		`SELECT id, key, name, snapshot, is_default, created_at, updated_at
		 FROM variants WHERE key = ? AND (name = ? OR id = ?)
		 ORDER BY CASE WHEN id = ? THEN 0 ELSE 1 END LIMIT 1`,
		v.Key, v.Name, v.ID, v.ID))
	switch {
	case err == nil:
		v.ID = existing.ID
		v.CreatedAt = existing.CreatedAt
		v.Default = v.Default || existing.Default
	case errors.Is(err, sql.ErrNoRows):
		if v.ID == "" {
			v.ID = NewID()
		}
		v.CreatedAt = now
	default:
		return Variant{}, fmt.Errorf("variant: lookup: %w", err)
	}
	v.UpdatedAt = now

	if v.Default {
		if _, err := tx.ExecContext(ctx, `UPDATE variants SET is_default = 0 WHERE key = ?`, v.Key); err != nil {
			return Variant{}, fmt.Errorf("variant: clear default: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO variants (id, key, name, snapshot, is_default, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   snapshot = excluded.snapshot,
		   is_default = excluded.is_default,
		   updated_at = excluded.updated_at`,
		v.ID, v.Key, v.Name, string(payload), boolToInt(v.Default),
		v.CreatedAt.Format(time.RFC3339Nano), v.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return Variant{}, fmt.Errorf("variant: save: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Variant{}, fmt.Errorf("variant: commit: %w", err)
	}
	return v, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key, id string) (Variant, error) {
	key, id = strings.TrimSpace(key), strings.TrimSpace(id)
	v, err := scanVariant(s.db.QueryRowContext(ctx,
		`SELECT id, key, name, snapshot, is_default, created_at, updated_at
		 FROM variants WHERE key = ? AND id = ?`, key, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Variant{}, notFound(key, id)
	}
	if err != nil {
		return Variant{}, fmt.Errorf("variant: get: %w", err)
	}
	return v, nil
}

func (s *SQLiteStore) List(ctx context.Context, key string) ([]Variant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, key, name, snapshot, is_default, created_at, updated_at
		 FROM variants WHERE key = ? ORDER BY name`, strings.TrimSpace(key))
	if err != nil {
		return nil, fmt.Errorf("variant: list: %w", err)
	}
	defer rows.Close()

	out := []Variant{}
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("variant: scan: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, key, id string) error {
	key, id = strings.TrimSpace(key), strings.TrimSpace(id)
	res, err := s.db.ExecContext(ctx, `DELETE FROM variants WHERE key = ? AND id = ?`, key, id)
	if err != nil {
		return fmt.Errorf("variant: delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound(key, id)
	}
	return nil
}

func (s *SQLiteStore) SetDefault(ctx context.Context, key, id string) error {
	key, id = strings.TrimSpace(key), strings.TrimSpace(id)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("variant: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE variants SET is_default = 0 WHERE key = ?`, key); err != nil {
		return fmt.Errorf("variant: clear default: %w", err)
	}
	if id != "" {
		res, err := tx.ExecContext(ctx, `UPDATE variants SET is_default = 1 WHERE key = ? AND id = ?`, key, id)
		if err != nil {
			return fmt.Errorf("variant: set default: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return notFound(key, id)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("variant: commit: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVariant(row scanner) (Variant, error) {
	var (
		v                    Variant
		payload              string
		isDefault            int
		createdAt, updatedAt string
	)
	if err := row.Scan(&v.ID, &v.Key, &v.Name, &payload, &isDefault, &createdAt, &updatedAt); err != nil {
		return Variant{}, err
	}
	snap, err := snapshot.Unmarshal([]byte(payload))
	if err != nil {
		return Variant{}, err
	}
	v.Snapshot = snap
	v.Default = isDefault == 1
	v.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	v.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return v, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
