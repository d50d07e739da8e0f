// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholarqa/pkg/types"
)

// Export is the document written by ExportYAML.
type Export struct {
	Run     RunSummary    `yaml:"run"`
	Answers []types.Trace `yaml:"answers"`
}

// ExportPath returns the default export location for a run.
func (s *Store) ExportPath(runID int64) string {
	return filepath.Join(s.dir, "exports", "run-"+strconv.FormatInt(runID, 10)+".yaml")
}

// ExportYAML writes a run and its answers to path. An empty path uses
// ExportPath.
func (s *Store) ExportYAML(ctx context.Context, runID int64, path string) (string, error) {
	run, err := s.GetRun(ctx, runID)
	if err != nil {
		return "", err
	}
	answers, err := s.Answers(ctx, runID)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(Export{Run: run, Answers: answers})
	if err != nil {
		return "", errors.Wrap(err, "marshaling YAML")
	}

	if path == "" {
		path = s.ExportPath(runID)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrap(err, "creating export directory")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "writing %s", path)
	}
	return path, nil
}
