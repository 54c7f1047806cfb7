package quotestore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/chatbot/foundation/core/error"
)

// SQLiteStore is a SQLite-based quotation store
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// SQLiteConfig holds SQLite store configuration
type SQLiteConfig struct {
	Path string
}

// DefaultSQLiteConfig returns default SQLite configuration
func DefaultSQLiteConfig() SQLiteConfig {
	return SQLiteConfig{
		Path: "./data/quotes.db",
	}
}

// NewSQLiteStore opens (and if necessary creates) the quotation database
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, dbError(err, "failed to create directory").WithDetail("path", dir)
	}

	// WAL mode lets dispatch read while quote-add writes
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, dbError(err, "failed to open database").WithDetail("path", cfg.Path)
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "failed to initialize schema").WithDetail("path", cfg.Path)
	}

	return store, nil
}

func dbError(err error, message string) *mdwerror.Error {
	return mdwerror.Wrap(err, message).WithCode(mdwerror.CodeDatabaseError)
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS quotes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		text TEXT NOT NULL,
		added_by TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Add stores a new quotation
func (s *SQLiteStore) Add(ctx context.Context, text, addedBy string) (*Quote, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO quotes (text, added_by, created_at) VALUES (?, ?, ?)
	`, text, addedBy, created)
	if err != nil {
		return nil, dbError(err, "failed to insert quotation")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, dbError(err, "failed to read quotation id")
	}

	return &Quote{ID: id, Text: text, AddedBy: addedBy, CreatedAt: created}, nil
}

// All returns every quotation in insertion order
func (s *SQLiteStore) All(ctx context.Context) ([]*Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var quotes []*Quote
	err := s.scan(ctx, func(q *Quote) {
		quotes = append(quotes, q)
	})
	return quotes, err
}

// Count returns the number of stored quotations
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quotes`).Scan(&count); err != nil {
		return 0, dbError(err, "failed to count quotations")
	}
	return count, nil
}

// Random returns a pseudo-random quotation that satisfies the filter. The
// filter runs in Go because its regexes use Go syntax.
func (s *SQLiteStore) Random(ctx context.Context, filter Filter) (*Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var r reservoir
	err := s.scan(ctx, func(q *Quote) {
		if filter.Matches(q.Text) {
			r.offer(q)
		}
	})
	if err != nil {
		return nil, err
	}
	if r.chosen == nil {
		return nil, ErrNoQuote
	}
	return r.chosen, nil
}

func (s *SQLiteStore) scan(ctx context.Context, fn func(*Quote)) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, added_by, created_at FROM quotes ORDER BY id
	`)
	if err != nil {
		return dbError(err, "failed to query quotations")
	}
	defer rows.Close()

	for rows.Next() {
		q := &Quote{}
		if err := rows.Scan(&q.ID, &q.Text, &q.AddedBy, &q.CreatedAt); err != nil {
			return dbError(err, "failed to scan quotation")
		}
		fn(q)
	}
	if err := rows.Err(); err != nil {
		return dbError(err, "failed to iterate quotations")
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
