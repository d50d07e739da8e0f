// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package route maps a question to a resolved attribute using ordered,
// first-match keyword rules over the lowercased question text.
package route

import (
	"strings"

	"github.com/pdiddy/scholarqa/pkg/types"
)

// Lookup reads a named field, returning types.Unavailable when unbound.
// resolve.Attributes satisfies it.
type Lookup interface {
	Field(name string) string
}

// MatchMode selects how two-keyword rules are evaluated.
type MatchMode int

const (
	// MatchStrict requires both keywords of a two-keyword rule.
	MatchStrict MatchMode = iota
	// MatchLegacy tests only the second keyword of the rules written as
	// `"a" and "b" in text`, reproducing the answers of the first release.
	MatchLegacy
)

func (m MatchMode) String() string {
	if m == MatchLegacy {
		return "legacy"
	}
	return "strict"
}

// Target names the entity a rule reads from.
type Target string

const (
	TargetNone        Target = ""
	TargetAuthor      Target = "author"
	TargetInstitution Target = "institution"
	TargetCompare     Target = "compare"
)

// Decision is the router's answer plus the rule that produced it.
type Decision struct {
	Answer types.Answer
	Rule   string
	Target Target
}

// Matched reports whether a rule fired.
func (d Decision) Matched() bool { return d.Rule != "" }

// Router applies the keyword tables.
type Router struct {
	Mode MatchMode
}

// New returns a Router. legacy selects MatchLegacy.
func New(legacy bool) *Router {
	if legacy {
		return &Router{Mode: MatchLegacy}
	}
	return &Router{Mode: MatchStrict}
}

// rule fires when the text contains any of anyOf and, when set, also
// requires. A loose rule drops the anyOf test in legacy mode.
type rule struct {
	name     string
	anyOf    []string
	requires string
	loose    bool
	target   Target
	field    string
}

func (r rule) matches(text string, mode MatchMode) bool {
	if r.requires != "" && !strings.Contains(text, r.requires) {
		return false
	}
	if r.loose && mode == MatchLegacy {
		return true
	}
	for _, kw := range r.anyOf {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return len(r.anyOf) == 0
}

func field(l Lookup, name string) string {
	if l == nil {
		return types.Unavailable
	}
	return l.Field(name)
}

// Single routes a question about one author. Institution attributes are
// those of the author's memberOf institution.
func (r *Router) Single(question string, author, institution Lookup) Decision {
	text := strings.ToLower(question)
	for _, ru := range singleRules {
		if !ru.matches(text, r.Mode) {
			continue
		}
		src := author
		if ru.target == TargetInstitution {
			src = institution
		}
		return Decision{
			Answer: types.TextAnswer(field(src, ru.field)),
			Rule:   ru.name,
			Target: ru.target,
		}
	}
	return Decision{Answer: types.UnavailableAnswer()}
}

// Compare routes a comparative question about two authors and returns the
// greater of their values for the matched metric.
func (r *Router) Compare(question string, a, b Lookup) Decision {
	text := strings.ToLower(question)
	for _, ru := range compareRules {
		if !ru.matches(text, r.Mode) {
			continue
		}
		return Decision{
			Answer: CompareValues(field(a, ru.field), field(b, ru.field), Higher),
			Rule:   ru.name,
			Target: TargetCompare,
		}
	}
	return Decision{Answer: types.UnavailableAnswer()}
}
