// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger keeps a SQLite history of answering runs: one row per run
// and one row per emitted answer with the rule or engine that produced it.
// The pipeline only writes to the ledger; nothing is read back while a run
// is in progress.
package ledger

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scholarqa/pkg/types"
)

const (
	// DefaultDir holds runs.db when LedgerConfig.Dir is empty.
	DefaultDir = ".scholarqa"
	dbFile     = "runs.db"
)

// ErrRunNotFound is returned when a run id has no row.
var ErrRunNotFound = errors.New("run not found")

// Store manages the run ledger database.
type Store struct {
	db  *sql.DB
	dir string
	now func() time.Time
}

// Open opens or creates dir/runs.db and its schema.
func Open(cfg types.LedgerConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating ledger directory")
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, errors.Wrap(err, "opening ledger")
	}

	s := newStore(db, dir)
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating ledger schema")
	}
	return s, nil
}

func newStore(db *sql.DB, dir string) *Store {
	return &Store{db: db, dir: dir, now: time.Now}
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the directory holding the database.
func (s *Store) Dir() string { return s.dir }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			uuid TEXT NOT NULL UNIQUE,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			input_path TEXT,
			engine TEXT,
			match_mode TEXT,
			answered INTEGER NOT NULL DEFAULT 0,
			null_answers INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS answers (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			record_id TEXT NOT NULL,
			question TEXT,
			answer_text TEXT,
			answer_num REAL,
			is_numeric INTEGER NOT NULL DEFAULT 0,
			source TEXT NOT NULL,
			rule TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_answers_run_id ON answers(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_answers_source ON answers(source)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return errors.Wrap(err, "executing schema statement")
		}
	}
	return nil
}

// RunInfo describes a run when it starts.
type RunInfo struct {
	InputPath string
	Engine    string
	MatchMode string
}

// Run is an open ledger run. It satisfies the pipeline's recorder.
type Run struct {
	ID int64
	// UUID identifies the run across ledgers, for example in exports
	// copied between machines.
	UUID string
	s    *Store
}

// BeginRun inserts a runs row and returns its handle.
func (s *Store) BeginRun(ctx context.Context, info RunInfo) (*Run, error) {
	id := uuid.NewString()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (uuid, started_at, input_path, engine, match_mode) VALUES (?, ?, ?, ?, ?)`,
		id, s.timestamp(), info.InputPath, info.Engine, info.MatchMode,
	)
	if err != nil {
		return nil, errors.Wrap(err, "inserting run")
	}
	rowID, err := res.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "reading run id")
	}
	return &Run{ID: rowID, UUID: id, s: s}, nil
}

// Record stores one emitted answer.
func (r *Run) Record(ctx context.Context, t types.Trace) error {
	num, numeric := t.Answer.Float()
	var text sql.NullString
	var value sql.NullFloat64
	if numeric {
		value = sql.NullFloat64{Float64: num, Valid: true}
	} else {
		text = sql.NullString{String: t.Answer.String(), Valid: true}
	}

	_, err := r.s.db.ExecContext(ctx,
		`INSERT INTO answers (run_id, record_id, question, answer_text, answer_num, is_numeric, source, rule)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, t.ID, t.Question, text, value, numeric, string(t.Source), t.Rule,
	)
	if err != nil {
		return errors.Wrapf(err, "inserting answer %s", t.ID)
	}
	return nil
}

// Counts are the totals written when a run finishes.
type Counts struct {
	Answered    int
	NullAnswers int
	Failed      int
}

// Finish stamps the run's end time and totals.
func (r *Run) Finish(ctx context.Context, c Counts) error {
	_, err := r.s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, answered = ?, null_answers = ?, failed = ? WHERE id = ?`,
		r.s.timestamp(), c.Answered, c.NullAnswers, c.Failed, r.ID,
	)
	if err != nil {
		return errors.Wrapf(err, "finishing run %d", r.ID)
	}
	return nil
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}
