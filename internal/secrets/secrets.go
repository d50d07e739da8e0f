// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file holds one secret: the filename is the key and the trimmed
// contents are the value. An environment variable SCHOLARQA_<KEY>, with the
// key upper-cased and dashes turned into underscores, overrides the file.
//
// Known keys: genai-api-key, qa-endpoint-token.
package secrets

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/pdiddy/scholarqa/internal/logging"
)

// DefaultDir is the secrets directory relative to the working directory.
const DefaultDir = ".secrets"

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "SCHOLARQA_"

// Known secret keys.
const (
	GenAIAPIKey     = "genai-api-key"
	QAEndpointToken = "qa-endpoint-token"
)

var knownKeys = []string{GenAIAPIKey, QAEndpointToken}

// Secrets maps key names to values.
type Secrets map[string]string

// Keys returns the loaded key names in sorted order, for logging without
// values.
func (s Secrets) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// Load reads every regular, non-hidden file in dir, then applies
// environment overrides for the known keys. A missing directory yields an
// empty (or environment-only) set. Unreadable files are logged and skipped.
func Load(dir string, log *zap.SugaredLogger) (Secrets, error) {
	log = logging.OrNop(log)
	out := make(Secrets)

	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "reading secrets directory %s", dir)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warnw("could not read secret", "key", name, logging.FieldError, err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			out[name] = value
		}
	}

	for _, key := range knownKeys {
		if v := strings.TrimSpace(os.Getenv(EnvName(key))); v != "" {
			out[key] = v
		}
	}

	log.Debugw("secrets loaded", "keys", out.Keys())
	return out, nil
}
