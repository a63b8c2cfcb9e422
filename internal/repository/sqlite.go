package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ============================================================
// SQLite Repository
// ============================================================

//go:embed migrations/*.sql
var migrations embed.FS

// ErrNotFound is returned when no layout is stored under a name.
var ErrNotFound = errors.New("layout not found")

// Layout is one stored document.
type Layout struct {
	Name      string
	Data      []byte
	UpdatedAt time.Time
}

type Repository struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Init applies the embedded migrations in file name order.
func (r *Repository) Init(ctx context.Context) error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)
	for _, name := range names {
		data, err := migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// Save replaces the layout stored under name. The last writer wins.
func (r *Repository) Save(ctx context.Context, name string, data []byte) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT OR REPLACE INTO layouts (name, data, updated_at)
        VALUES (?, ?, ?)
    `, name, string(data), r.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save layout %q: %w", name, err)
	}
	return nil
}

// Load returns the layout stored under name, or ErrNotFound.
func (r *Repository) Load(ctx context.Context, name string) (*Layout, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT name, data, updated_at
        FROM layouts
        WHERE name = ?
    `, name)

	var (
		l       Layout
		data    string
		updated string
	)
	if err := row.Scan(&l.Name, &data, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load layout %q: %w", name, err)
	}
	l.Data = []byte(data)
	if t, err := time.Parse(time.RFC3339Nano, updated); err == nil {
		l.UpdatedAt = t
	}
	return &l, nil
}

// Ping checks that the database answers.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// OpenSQLite opens the database at dbPath, creating its directory.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
