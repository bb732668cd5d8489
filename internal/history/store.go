// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite ledger of multi-file runs so earlier
// packaging results can be listed and compared.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/qtipack/pkg/types"
)

// DefaultListLimit bounds List when no limit is given.
const DefaultListLimit = 20

// Run is one recorded run.
type Run struct {
	ID          int64                      `json:"id" yaml:"id"`
	Title       string                     `json:"title" yaml:"title"`
	Root        string                     `json:"root,omitempty" yaml:"root,omitempty"`
	Archive     string                     `json:"archive,omitempty" yaml:"archive,omitempty"`
	GeneratedAt time.Time                  `json:"generated_at" yaml:"generated_at"`
	RecordedAt  time.Time                  `json:"recorded_at" yaml:"recorded_at"`
	TotalFiles  int                        `json:"total_files" yaml:"total_files"`
	FailedFiles int                        `json:"failed_files" yaml:"failed_files"`
	Accepted    int                        `json:"accepted" yaml:"accepted"`
	Rejected    int                        `json:"rejected" yaml:"rejected"`
	Types       map[types.QuestionType]int `json:"types,omitempty" yaml:"types,omitempty"`
	Reasons     map[types.ReasonCode]int   `json:"reasons,omitempty" yaml:"reasons,omitempty"`
}

// Store manages the run ledger database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the ledger at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			root TEXT,
			archive TEXT,
			generated_at TEXT NOT NULL,
			recorded_at TEXT NOT NULL,
			total_files INTEGER NOT NULL,
			failed_files INTEGER NOT NULL,
			gap_files INTEGER NOT NULL,
			recognized INTEGER NOT NULL,
			accepted INTEGER NOT NULL,
			rejected INTEGER NOT NULL,
			types TEXT,
			reasons TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS run_files (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			path TEXT NOT NULL,
			format TEXT,
			recognized INTEGER NOT NULL,
			accepted INTEGER NOT NULL,
			rejected INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			gap INTEGER NOT NULL,
			error TEXT,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_files_path ON run_files(path)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a run report and its per-file rows in one transaction and
// returns the new run ID.
func (s *Store) Record(ctx context.Context, r types.RunReport) (int64, error) {
	typesJSON, err := json.Marshal(r.Types)
	if err != nil {
		return 0, fmt.Errorf("encoding type counts: %w", err)
	}
	reasonsJSON, err := json.Marshal(r.Reasons)
	if err != nil {
		return 0, fmt.Errorf("encoding reason counts: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (title, root, archive, generated_at, recorded_at,
			total_files, failed_files, gap_files, recognized, accepted, rejected, types, reasons)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Title, r.Root, r.Archive,
		r.GeneratedAt.UTC().Format(time.RFC3339Nano),
		s.now().UTC().Format(time.RFC3339Nano),
		r.TotalFiles, r.FailedFiles, r.GapFiles, r.Recognized, r.Accepted, r.Rejected,
		string(typesJSON), string(reasonsJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_files (run_id, position, path, format, recognized, accepted, rejected, failed, gap, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range r.Files {
		_, err := stmt.ExecContext(ctx,
			runID, i, f.Path, string(f.Format),
			f.Recognized, f.Accepted, f.Rejected, f.Failed, f.Gap, f.Error,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting file %s: %w", f.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// List returns the most recent runs, newest first. A limit of zero or less
// uses DefaultListLimit.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, root, archive, generated_at, recorded_at,
			total_files, failed_files, accepted, rejected, types, reasons
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                     Run
			root, archive         sql.NullString
			generated, recorded   string
			typesJSON, reasonJSON sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Title, &root, &archive, &generated, &recorded,
			&r.TotalFiles, &r.FailedFiles, &r.Accepted, &r.Rejected, &typesJSON, &reasonJSON); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Root = root.String
		r.Archive = archive.String
		r.GeneratedAt, _ = time.Parse(time.RFC3339Nano, generated)
		r.RecordedAt, _ = time.Parse(time.RFC3339Nano, recorded)
		if typesJSON.Valid && typesJSON.String != "" {
			if err := json.Unmarshal([]byte(typesJSON.String), &r.Types); err != nil {
				return nil, fmt.Errorf("decoding type counts of run %d: %w", r.ID, err)
			}
		}
		if reasonJSON.Valid && reasonJSON.String != "" {
			if err := json.Unmarshal([]byte(reasonJSON.String), &r.Reasons); err != nil {
				return nil, fmt.Errorf("decoding reason counts of run %d: %w", r.ID, err)
			}
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Files returns the per-file rows of a run in traversal order.
func (s *Store) Files(ctx context.Context, runID int64) ([]types.FileReport, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, format, recognized, accepted, rejected, failed, gap, error
		 FROM run_files WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying run files: %w", err)
	}
	defer rows.Close()

	var files []types.FileReport
	for rows.Next() {
		var (
			f         types.FileReport
			format    sql.NullString
			errString sql.NullString
		)
		if err := rows.Scan(&f.Path, &format, &f.Recognized, &f.Accepted, &f.Rejected,
			&f.Failed, &f.Gap, &errString); err != nil {
			return nil, fmt.Errorf("scanning run file: %w", err)
		}
		f.Format = types.Format(format.String)
		f.Error = errString.String
		files = append(files, f)
	}
	return files, rows.Err()
}

// ExportYAML writes the most recent runs to w as a YAML list.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer, limit int) error {
	runs, err := s.List(ctx, limit)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(runs); err != nil {
		return fmt.Errorf("encoding runs: %w", err)
	}
	return enc.Close()
}
