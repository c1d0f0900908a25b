// Package history persists past queries and their results locally: a SQLite
// store of record plus a Bleve full-text index for searching old answers.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/kaisetsu/internal/models"
)

// Entry is one recorded query with its full result.
type Entry struct {
	ID              string              `json:"id"`
	Query           string              `json:"query"`
	Answer          string              `json:"answer"`
	ConfidenceScore float64             `json:"confidence_score"`
	Result          *models.QueryResult `json:"result,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

// Store is the SQLite store of record for history entries.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates a SQLite database at dbPath and initializes the
// schema. Parent directories are created if they do not exist.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		query TEXT NOT NULL,
		answer TEXT NOT NULL,
		confidence_score REAL NOT NULL DEFAULT 0,
		result TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_history_created_at ON history(created_at);
	`
	_, err := db.Exec(schema)
	return err
}

// Create inserts a history entry.
func (s *Store) Create(ctx context.Context, entry *Entry) error {
	resultJSON, err := json.Marshal(entry.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO history (id, query, answer, confidence_score, result, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Query, entry.Answer, entry.ConfidenceScore, string(resultJSON), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	return nil
}

// Get returns the entry with the given id.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, query, answer, confidence_score, result, created_at FROM history WHERE id = ?`, id)
	return scanEntry(row)
}

// List returns up to limit entries, most recent first.
func (s *Store) List(ctx context.Context, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, answer, confidence_score, result, created_at
		 FROM history ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	entries := []*Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`).Scan(&count)
	return count, err
}

// Clear deletes all entries.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM history`)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var entry Entry
	var resultJSON string
	if err := row.Scan(&entry.ID, &entry.Query, &entry.Answer,
		&entry.ConfidenceScore, &resultJSON, &entry.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("history entry not found")
		}
		return nil, fmt.Errorf("failed to scan history entry: %w", err)
	}
	if resultJSON != "" && resultJSON != "null" {
		var result models.QueryResult
		if err := json.Unmarshal([]byte(resultJSON), &result); err == nil {
			result.Normalize()
			entry.Result = &result
		}
	}
	return &entry, nil
}
