// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// ReadQuestions reads a JSON array of question records. Records are kept
// raw so a malformed record fails on its own rather than failing the file.
func ReadQuestions(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	// null decodes without error and leaves the slice nil.
	if records == nil {
		return nil, errors.Newf("parsing %s: expected a JSON array", path)
	}
	return records, nil
}

// EncodeJSON renders v with four-space indentation and without escaping
// HTML or non-ASCII characters.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WriteJSON writes v to path through a temporary file in the same
// directory, renaming it into place on success.
func WriteJSON(path string, v any) error {
	data, err := EncodeJSON(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}
	return WriteFileAtomic(path, data)
}

// WriteFileAtomic writes data to path via a temp file and rename.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".scholarqa-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(writeErr, "writing %s", path)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return errors.Wrap(closeErr, "closing temp file")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "renaming temp file")
	}
	return nil
}
