package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Kind classifies a journal entry.
type Kind string

const (
	KindBackup  Kind = "backup"
	KindInstall Kind = "install"
	KindRestore Kind = "restore"
	KindBorder  Kind = "border"
)

// Entry is one recorded operation.
type Entry struct {
	ID        string
	Kind      Kind
	Source    string
	Target    string
	SizeBytes int64
	SHA256    string
	Detail    string
	CreatedAt time.Time
}

// Recorder accepts journal entries. *Store implements it; Discard drops them.
type Recorder interface {
	Record(ctx context.Context, entry Entry) (Entry, error)
}

type discard struct{}

func (discard) Record(_ context.Context, entry Entry) (Entry, error) { return entry, nil }

// Discard is a Recorder that keeps nothing.
var Discard Recorder = discard{}

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FileName is the database file created inside the log directory.
const FileName = "journal.db"

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open initializes or connects to the journal database in dir and applies migrations.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal directory: %w", err)
	}

	dbPath := filepath.Join(dir, FileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, now: time.Now}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts entry, assigning an ID and timestamp when absent.
func (s *Store) Record(ctx context.Context, entry Entry) (Entry, error) {
	if strings.TrimSpace(string(entry.Kind)) == "" {
		return Entry{}, errors.New("journal entry kind is required")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	entry.CreatedAt = entry.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, kind, source, target, size_bytes, sha256, detail, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		string(entry.Kind),
		entry.Source,
		entry.Target,
		entry.SizeBytes,
		entry.SHA256,
		entry.Detail,
		entry.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert journal entry: %w", err)
	}
	return entry, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, source, target, size_bytes, sha256, detail, created_at
         FROM events ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return entries, nil
}

// Latest returns the newest entry of the given kind.
func (s *Store) Latest(ctx context.Context, kind Kind) (Entry, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, source, target, size_bytes, sha256, detail, created_at
         FROM events WHERE kind = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`, string(kind))
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return entry, true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		entry   Entry
		kind    string
		created string
	)
	if err := row.Scan(&entry.ID, &kind, &entry.Source, &entry.Target, &entry.SizeBytes, &entry.SHA256, &entry.Detail, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("scan journal entry: %w", err)
	}
	entry.Kind = Kind(kind)
	ts, err := time.Parse(timeLayout, created)
	if err != nil {
		return Entry{}, fmt.Errorf("parse journal timestamp %q: %w", created, err)
	}
	entry.CreatedAt = ts
	return entry, nil
}
