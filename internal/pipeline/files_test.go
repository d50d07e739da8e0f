// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadQuestions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"q1"}, "x"]`), 0o644))

	records, err := ReadQuestions(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.JSONEq(t, `{"id":"q1"}`, string(records[0]))
}

func TestReadQuestions_EmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	records, err := ReadQuestions(path)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestReadQuestions_NotAnArray(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"null":      `null`,
		"object":    `{"id":"q1"}`,
		"truncated": `[{"id":`,
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			records, err := ReadQuestions(path)
			require.Error(t, err)
			assert.Nil(t, records)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestReadQuestions_Missing(t *testing.T) {
	_, err := ReadQuestions(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
