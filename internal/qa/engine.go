// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package qa provides the extractive question-answering engines used when
// the knowledge graph cannot answer a question. An Engine is built once per
// run and reused for every record.
package qa

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"github.com/pdiddy/scholarqa/internal/secrets"
	"github.com/pdiddy/scholarqa/pkg/types"
)

// Engine extracts an answer span for question from context. An empty
// Result.Answer means the engine found nothing.
type Engine interface {
	Name() string
	Answer(ctx context.Context, question, context string) (Result, error)
}

// Result is an extracted span. Start and End are character (rune) offsets
// into the context, matching the hosted inference response, or -1 when the
// engine does not report them.
type Result struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
}

func emptyResult() Result { return Result{Start: -1, End: -1} }

// spanResult converts the byte range [start, end) of passage to rune offsets.
func spanResult(passage string, start, end int, score float64) Result {
	rs := utf8.RuneCountInString(passage[:start])
	return Result{
		Answer: passage[start:end],
		Score:  score,
		Start:  rs,
		End:    rs + utf8.RuneCountInString(passage[start:end]),
	}
}

// ErrUnknownBackend is returned by New for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown QA backend")

// Secret key names read from the secrets directory.
const (
	SecretEndpointToken = secrets.QAEndpointToken
	SecretGenAIKey      = secrets.GenAIAPIKey
)

// New builds the engine selected by cfg.Backend. An empty backend selects
// the lexical engine. Missing API keys fall back to secrets.
func New(ctx context.Context, cfg types.QAConfig, keys map[string]string) (Engine, error) {
	switch types.QABackend(strings.ToLower(string(cfg.Backend))) {
	case "", types.QABackendLexical:
		return NewLexicalEngine(), nil
	case types.QABackendHTTP:
		if cfg.APIKey == "" {
			cfg.APIKey = keys[SecretEndpointToken]
		}
		return NewHTTPEngine(cfg), nil
	case types.QABackendGenAI:
		if cfg.APIKey == "" {
			cfg.APIKey = keys[SecretGenAIKey]
		}
		return NewGenAIEngine(ctx, cfg)
	default:
		return nil, errors.Wrapf(ErrUnknownBackend, "%q (use lexical, http, or genai)", cfg.Backend)
	}
}
