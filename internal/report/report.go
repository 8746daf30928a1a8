// Package report keeps a SQLite ledger of translation runs, one row per run
// and one row per translation unit, so failed files and languages can be
// looked up after the console output is gone.
package report

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is the stored outcome of one translation unit
type Entry struct {
	SourcePath string
	Language   string
	OutputPath string
	Cached     bool
	Tokens     int
	Error      string // empty on success
}

// Run is one invocation of the tool
type Run struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time
	Succeeded  int
	Failed     int
	Tokens     int
	Entries    []Entry
}

// Store is an open report database
type Store struct {
	db *sql.DB
}

// Open opens or creates the report database at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return s, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id integer PRIMARY KEY AUTOINCREMENT,
			started_at text NOT NULL,
			finished_at text NOT NULL,
			succeeded integer NOT NULL,
			failed integer NOT NULL,
			tokens integer NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS unit_results (
			run_id integer NOT NULL REFERENCES runs (id),
			source_path text NOT NULL,
			language text NOT NULL,
			output_path text NOT NULL,
			cached integer NOT NULL,
			tokens integer NOT NULL,
			error text NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS ix_unit_results_run ON unit_results (run_id)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// Record stores run and its entries in one transaction and returns the run id
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, finished_at, succeeded, failed, tokens) VALUES (?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339), run.FinishedAt.UTC().Format(time.RFC3339),
		run.Succeeded, run.Failed, run.Tokens,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO unit_results (run_id, source_path, language, output_path, cached, tokens, error) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range run.Entries {
		if _, err := stmt.ExecContext(ctx, runID, e.SourcePath, e.Language, e.OutputPath, e.Cached, e.Tokens, e.Error); err != nil {
			return 0, fmt.Errorf("failed to insert result for %s (%s): %w", e.SourcePath, e.Language, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

const entryQuery = `SELECT source_path, language, output_path, cached, tokens, error FROM unit_results`

// Failures returns the failed entries of run runID
func (s *Store) Failures(ctx context.Context, runID int64) ([]Entry, error) {
	return s.entries(ctx, entryQuery+` WHERE run_id = ? AND error != '' ORDER BY source_path, language`, runID)
}

// LastRun returns the most recent run without its entries
func (s *Store) LastRun(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, succeeded, failed, tokens FROM runs ORDER BY id DESC LIMIT 1`)

	var run Run
	var started, finished string
	if err := row.Scan(&run.ID, &started, &finished, &run.Succeeded, &run.Failed, &run.Tokens); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read last run: %w", err)
	}
	run.StartedAt, _ = time.Parse(time.RFC3339, started)
	run.FinishedAt, _ = time.Parse(time.RFC3339, finished)
	return &run, nil
}

func (s *Store) entries(ctx context.Context, query string, runID int64) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.SourcePath, &e.Language, &e.OutputPath, &e.Cached, &e.Tokens, &e.Error); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// WriteLastRun prints the most recent run and its failures to w
func (s *Store) WriteLastRun(ctx context.Context, w io.Writer) error {
	run, err := s.LastRun(ctx)
	if err != nil {
		return err
	}
	if run == nil {
		fmt.Fprintln(w, "No runs recorded")
		return nil
	}

	failures, err := s.Failures(ctx, run.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Run %d started %s, took %s\n",
		run.ID, run.StartedAt.Local().Format(time.DateTime), run.FinishedAt.Sub(run.StartedAt))
	fmt.Fprintf(w, "Succeeded: %d\n", run.Succeeded)
	fmt.Fprintf(w, "Failed: %d\n", run.Failed)
	fmt.Fprintf(w, "Tokens: %d\n", run.Tokens)
	if len(failures) == 0 {
		return nil
	}

	fmt.Fprintln(w, "\nFailures:")
	for _, f := range failures {
		fmt.Fprintf(w, "  %s -> %s: %s\n", f.SourcePath, f.Language, f.Error)
	}
	return nil
}
