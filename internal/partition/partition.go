// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package partition splits a question collection into records whose author
// reference is a list and all other records. Records are copied byte for
// byte; only the array layout is re-indented.
package partition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/pdiddy/scholarqa/internal/logging"
	"github.com/pdiddy/scholarqa/internal/pipeline"
	"github.com/pdiddy/scholarqa/pkg/types"
)

// DefaultField is the key inspected when FilterConfig.Field is empty.
const DefaultField = "author_dblp_uri"

var (
	// ErrInputNotFound is returned when the input file does not exist.
	ErrInputNotFound = errors.New("input file not found")
	// ErrMalformedInput is returned when the input is not a JSON array.
	ErrMalformedInput = errors.New("malformed input")
)

// Result holds the outcome of a Run.
type Result struct {
	Listed    int
	Remaining int
}

// Total returns the number of records read.
func (r Result) Total() int { return r.Listed + r.Remaining }

// IsList reports whether record is a JSON object whose field holds an array.
func IsList(record json.RawMessage, field string) bool {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(record, &obj); err != nil {
		return false
	}
	v := bytes.TrimSpace(obj[field])
	return len(v) > 0 && v[0] == '['
}

// Split partitions records, preserving order within each side.
func Split(records []json.RawMessage, field string) (listed, remaining []json.RawMessage) {
	if field == "" {
		field = DefaultField
	}
	listed = []json.RawMessage{}
	remaining = []json.RawMessage{}
	for _, r := range records {
		if IsList(r, field) {
			listed = append(listed, r)
		} else {
			remaining = append(remaining, r)
		}
	}
	return listed, remaining
}

// Run reads cfg.InputPath, splits it, and writes both outputs. Status lines
// go to w.
func Run(cfg types.FilterConfig, w io.Writer, log *zap.SugaredLogger) (Result, error) {
	log = logging.OrNop(log)

	data, err := os.ReadFile(cfg.InputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, errors.Mark(errors.Wrapf(err, "the file %s was not found", cfg.InputPath), ErrInputNotFound)
		}
		return Result{}, errors.Wrapf(err, "reading %s", cfg.InputPath)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return Result{}, errors.Mark(errors.Wrapf(err, "decoding JSON from %s", cfg.InputPath), ErrMalformedInput)
	}
	if records == nil {
		return Result{}, errors.Mark(errors.Newf("%s does not hold a JSON array", cfg.InputPath), ErrMalformedInput)
	}

	listed, remaining := Split(records, cfg.Field)
	log.Infow("partitioned", logging.FieldFile, cfg.InputPath, logging.FieldCount, len(records),
		"listed", len(listed), "remaining", len(remaining))

	if err := writeArray(cfg.FilteredPath, listed); err != nil {
		return Result{}, err
	}
	fmt.Fprintf(w, "Filtered questions have been written to %s.\n", cfg.FilteredPath)

	if err := writeArray(cfg.RemainingPath, remaining); err != nil {
		return Result{}, err
	}
	fmt.Fprintf(w, "Remaining questions have been written to %s.\n", cfg.RemainingPath)

	return Result{Listed: len(listed), Remaining: len(remaining)}, nil
}

// writeArray writes records as a four-space indented JSON array. Each record
// keeps its keys, key order, and string contents.
func writeArray(path string, records []json.RawMessage) error {
	var buf bytes.Buffer
	buf.WriteString("[")
	for i, r := range records {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n    ")
		if err := json.Indent(&buf, r, "    ", "    "); err != nil {
			return errors.Wrapf(err, "indenting record %d", i)
		}
	}
	if len(records) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("]")

	if err := pipeline.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
