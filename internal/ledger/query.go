// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/pdiddy/scholarqa/pkg/types"
)

// RunSummary is one row of the runs table.
type RunSummary struct {
	ID          int64     `json:"id" yaml:"id"`
	UUID        string    `json:"uuid" yaml:"uuid"`
	StartedAt   time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt  time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
	InputPath   string    `json:"input_path" yaml:"input_path"`
	Engine      string    `json:"engine" yaml:"engine"`
	MatchMode   string    `json:"match_mode" yaml:"match_mode"`
	Answered    int       `json:"answered" yaml:"answered"`
	NullAnswers int       `json:"null_answers" yaml:"null_answers"`
	Failed      int       `json:"failed" yaml:"failed"`
}

// Finished reports whether the run completed.
func (r RunSummary) Finished() bool { return !r.FinishedAt.IsZero() }

const runColumns = `id, uuid, started_at, finished_at, input_path, engine, match_mode, answered, null_answers, failed`

// Runs returns the most recent runs first. A limit of zero or less returns
// every run.
func (s *Store) Runs(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying runs")
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetRun returns a single run.
func (s *Store) GetRun(ctx context.Context, id int64) (RunSummary, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunSummary{}, errors.Mark(errors.Newf("run %d", id), ErrRunNotFound)
	}
	return r, err
}

// Answers returns the answers of a run in insertion order.
func (s *Store) Answers(ctx context.Context, runID int64) ([]types.Trace, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record_id, question, answer_text, answer_num, is_numeric, source, rule
		 FROM answers WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, errors.Wrap(err, "querying answers")
	}
	defer rows.Close()

	var out []types.Trace
	for rows.Next() {
		var (
			t        types.Trace
			question sql.NullString
			text     sql.NullString
			num      sql.NullFloat64
			numeric  bool
			source   string
			rule     sql.NullString
		)
		if err := rows.Scan(&t.ID, &question, &text, &num, &numeric, &source, &rule); err != nil {
			return nil, errors.Wrap(err, "scanning answer")
		}
		t.Question = question.String
		t.Source = types.Source(source)
		t.Rule = rule.String
		if numeric {
			t.Answer = types.NumberAnswer(num.Float64)
		} else {
			t.Answer = types.TextAnswer(text.String)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (RunSummary, error) {
	var (
		r        RunSummary
		started  string
		finished sql.NullString
		input    sql.NullString
		engine   sql.NullString
		mode     sql.NullString
	)
	if err := sc.Scan(&r.ID, &r.UUID, &started, &finished, &input, &engine, &mode, &r.Answered, &r.NullAnswers, &r.Failed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, err
		}
		return r, errors.Wrap(err, "scanning run")
	}
	r.InputPath, r.Engine, r.MatchMode = input.String, engine.String, mode.String

	var err error
	if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return r, errors.Wrapf(err, "parsing start time of run %d", r.ID)
	}
	if finished.Valid && finished.String != "" {
		if r.FinishedAt, err = time.Parse(time.RFC3339Nano, finished.String); err != nil {
			return r, errors.Wrapf(err, "parsing finish time of run %d", r.ID)
		}
	}
	return r, nil
}
