package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lotr-ingest/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DefaultHistoryLimit bounds List when the caller passes a non-positive limit.
const DefaultHistoryLimit = 20

// Journal is an append-only record of published summary reports. It is an audit
// of outcomes; datasets are never written here.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// JournalEntry is one recorded report.
type JournalEntry struct {
	ID         string              `json:"id"`
	OpID       string              `json:"opId,omitempty"`
	RecordedAt time.Time           `json:"recordedAt"`
	Report     model.SummaryReport `json:"report"`
}

func OpenJournal(ctx context.Context, path string) (*Journal, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("journal: missing path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the CLI read history while a TUI session is writing.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateJournal(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Journal{db: db, now: time.Now}, nil
}

func migrateJournal(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			report_id TEXT PRIMARY KEY,
			op_id TEXT NOT NULL DEFAULT '',
			kind TEXT NOT NULL,
			status TEXT NOT NULL,
			remote_timestamp TEXT NOT NULL DEFAULT '',
			recorded_at_unixms INTEGER NOT NULL,
			report_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS reports_recorded_at ON reports(recorded_at_unixms);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("journal: migrate: %w", err)
		}
	}
	return nil
}

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record appends a report and returns the new entry's ID.
func (j *Journal) Record(ctx context.Context, opID string, r model.SummaryReport) (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err = j.db.ExecContext(ctx,
		`INSERT INTO reports(report_id, op_id, kind, status, remote_timestamp, recorded_at_unixms, report_json)
		 VALUES(?, ?, ?, ?, ?, ?, ?)`,
		id, opID, string(r.Kind), string(r.Status), r.Timestamp, j.now().UnixMilli(), string(b),
	)
	if err != nil {
		return "", fmt.Errorf("journal: record: %w", err)
	}
	return id, nil
}

// List returns the most recent entries, newest first.
func (j *Journal) List(ctx context.Context, limit int) ([]JournalEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT report_id, op_id, recorded_at_unixms, report_json
		 FROM reports ORDER BY recorded_at_unixms DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: list: %w", err)
	}
	defer rows.Close()

	var out []JournalEntry
	for rows.Next() {
		var (
			e    JournalEntry
			ms   int64
			body string
		)
		if err := rows.Scan(&e.ID, &e.OpID, &ms, &body); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(body), &e.Report); err != nil {
			return nil, fmt.Errorf("journal: decode %s: %w", e.ID, err)
		}
		e.RecordedAt = time.UnixMilli(ms).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
