// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package qa

import (
	"context"
	"strings"
	"unicode"
)

// stopwords are ignored when matching question terms against the context.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "did": true, "do": true, "does": true, "for": true,
	"from": true, "has": true, "have": true, "how": true, "in": true, "is": true,
	"it": true, "its": true, "of": true, "on": true, "or": true, "the": true,
	"their": true, "this": true, "to": true, "was": true, "were": true,
	"what": true, "when": true, "where": true, "which": true, "who": true,
	"whom": true, "whose": true, "why": true, "with": true,
}

// LexicalEngine is an offline extractive baseline: it returns the context
// sentence sharing the most content words with the question.
type LexicalEngine struct{}

// NewLexicalEngine returns a LexicalEngine.
func NewLexicalEngine() *LexicalEngine { return &LexicalEngine{} }

// Name returns the engine identifier.
func (e *LexicalEngine) Name() string { return "lexical" }

// Answer scores each sentence by the fraction of question terms it
// contains. Ties keep the earliest sentence. No overlap yields an empty
// answer.
func (e *LexicalEngine) Answer(ctx context.Context, question, passage string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return emptyResult(), err
	}

	terms := contentTerms(question)
	if len(terms) == 0 || strings.TrimSpace(passage) == "" {
		return emptyResult(), nil
	}

	best := emptyResult()
	bestHits := 0
	for _, s := range sentences(passage) {
		words := make(map[string]bool)
		for _, w := range tokenize(passage[s.start:s.end]) {
			words[w] = true
		}
		hits := 0
		for t := range terms {
			if words[t] {
				hits++
			}
		}
		if hits > bestHits {
			bestHits = hits
			best = spanResult(passage, s.start, s.end, float64(hits)/float64(len(terms)))
		}
	}
	return best, nil
}

func contentTerms(question string) map[string]bool {
	terms := make(map[string]bool)
	for _, w := range tokenize(question) {
		if len(w) < 2 || stopwords[w] {
			continue
		}
		terms[w] = true
	}
	return terms
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

type span struct{ start, end int }

// sentences splits on '.', '!', '?' or newline followed by whitespace,
// trimming surrounding space from each span.
func sentences(s string) []span {
	var out []span
	start := 0
	emit := func(end int) {
		a, b := start, end
		for a < b && isSpaceByte(s[a]) {
			a++
		}
		for b > a && isSpaceByte(s[b-1]) {
			b--
		}
		if a < b {
			out = append(out, span{a, b})
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\n' {
			emit(i)
			start = i + 1
			continue
		}
		if (c == '.' || c == '!' || c == '?') && (i+1 == len(s) || s[i+1] == ' ' || s[i+1] == '\n' || s[i+1] == '\t') {
			emit(i + 1)
			start = i + 1
		}
	}
	emit(len(s))
	return out
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
