// Package qastore persists trained question/answer records in SQLite and
// serves them through an in-memory embedding index.
package qastore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/digiraksha/mitra/internal/models"
)

// SQLiteStore is the durable record backend.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and
// initializes the schema. Parent directories are created if needed.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
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

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS qa_records (
		id TEXT PRIMARY KEY,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT 'general',
		keywords TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_qa_records_category ON qa_records(category);
	CREATE INDEX IF NOT EXISTS idx_qa_records_created_at ON qa_records(created_at);
	`
	_, err := db.Exec(schema)
	return err
}

// InsertRecord stores one QA record.
func (s *SQLiteStore) InsertRecord(ctx context.Context, rec *models.QARecord) error {
	keywordsJSON, err := json.Marshal(rec.Keywords)
	if err != nil {
		return fmt.Errorf("failed to marshal keywords: %w", err)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO qa_records (id, question, answer, category, keywords, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Question, rec.Answer, rec.Category, string(keywordsJSON), rec.CreatedAt,
	)
	return err
}

// ListRecords returns all records in insertion order.
func (s *SQLiteStore) ListRecords(ctx context.Context) ([]*models.QARecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, question, answer, category, keywords, created_at
		 FROM qa_records ORDER BY rowid`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.QARecord
	for rows.Next() {
		var rec models.QARecord
		var keywordsJSON string
		if err := rows.Scan(&rec.ID, &rec.Question, &rec.Answer, &rec.Category, &keywordsJSON, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if keywordsJSON != "" {
			if err := json.Unmarshal([]byte(keywordsJSON), &rec.Keywords); err != nil {
				return nil, fmt.Errorf("failed to unmarshal keywords: %w", err)
			}
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// CountRecords returns the total number of stored records.
func (s *SQLiteStore) CountRecords(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM qa_records`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
