// Package journal persists a per-directive run log in SQLite. One row is
// written for every directive the engine considered, including dry runs,
// so a run's history can be inspected afterwards with `genrun history`.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/genrun-dev/genrun/pkg/runner"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	ts          TIMESTAMP NOT NULL,
	module      TEXT NOT NULL,
	line        INTEGER NOT NULL,
	character   INTEGER NOT NULL,
	command     TEXT NOT NULL,
	dry_run     BOOLEAN NOT NULL,
	exit_code   INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	error       TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(ts);
`

// Entry is one recorded directive run.
type Entry struct {
	ID         int64
	Time       time.Time
	Module     string
	Line       int
	Character  int
	Command    string
	DryRun     bool
	ExitCode   int
	DurationMS int64
	Error      string
}

// Journal is an open run log. It satisfies runner.Recorder.
type Journal struct {
	db *sql.DB
}

// Open opens the journal database at path, creating the file and schema as
// needed.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize journal: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close releases the underlying database handle.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record writes one entry for a considered directive.
func (j *Journal) Record(r runner.Record) error {
	command := r.Program
	if len(r.Args) > 0 {
		command += " " + strings.Join(r.Args, " ")
	}
	_, err := j.db.Exec(
		`INSERT INTO runs (ts, module, line, character, command, dry_run, exit_code, duration_ms, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Time, r.Module, r.Line, r.Character, command, r.DryRun,
		r.ExitCode, r.Duration.Milliseconds(), r.Err,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	rows, err := j.db.Query(
		`SELECT id, ts, module, line, character, command, dry_run, exit_code, duration_ms, error
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Time, &e.Module, &e.Line, &e.Character,
			&e.Command, &e.DryRun, &e.ExitCode, &e.DurationMS, &e.Error); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
