// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	// Unavailable stands in for a value the knowledge graph could not supply.
	// It propagates through field extraction and comparisons and triggers the
	// model fallback.
	Unavailable = "Information not available"

	// NoAnswer replaces an empty answer after the model fallback.
	NoAnswer = "No answer found"

	// InvalidComparison is returned for an unknown comparison mode.
	InvalidComparison = "Invalid comparison type"
)

// Answer is either a text span or a number. Field lookups produce text;
// comparisons produce numbers.
type Answer struct {
	text    string
	num     float64
	numeric bool
}

// TextAnswer returns a text answer.
func TextAnswer(s string) Answer { return Answer{text: s} }

// NumberAnswer returns a numeric answer.
func NumberAnswer(f float64) Answer { return Answer{num: f, numeric: true} }

// UnavailableAnswer returns the unavailable sentinel.
func UnavailableAnswer() Answer { return Answer{text: Unavailable} }

// IsNumber reports whether the answer is numeric.
func (a Answer) IsNumber() bool { return a.numeric }

// Float returns the numeric value and whether the answer is numeric.
func (a Answer) Float() (float64, bool) { return a.num, a.numeric }

// IsUnavailable reports whether the answer is the unavailable sentinel.
func (a Answer) IsUnavailable() bool { return !a.numeric && a.text == Unavailable }

// IsEmpty reports whether the answer counts as no answer at all: an empty
// span, or a numeric zero.
func (a Answer) IsEmpty() bool {
	if a.numeric {
		return a.num == 0
	}
	return a.text == ""
}

// String formats the answer the way it is written to the output files.
func (a Answer) String() string {
	if a.numeric {
		return formatFloat(a.num)
	}
	return a.text
}

// formatFloat renders whole numbers with a trailing ".0" so a compared
// h-index of 42 reads 42.0 rather than an integer.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// MarshalJSON writes numbers as JSON numbers and text as JSON strings.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.numeric {
		if math.IsInf(a.num, 0) || math.IsNaN(a.num) {
			return nil, errors.Newf("answer %v is not a finite number", a.num)
		}
		return []byte(formatFloat(a.num)), nil
	}
	return json.Marshal(a.text)
}

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = TextAnswer(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return errors.Wrap(err, "answer must be a string or a number")
	}
	*a = NumberAnswer(f)
	return nil
}

// MarshalYAML mirrors MarshalJSON for ledger exports.
func (a Answer) MarshalYAML() (any, error) {
	if a.numeric {
		return a.num, nil
	}
	return a.text, nil
}

// AnswerRecord is one row of the answers-only output.
type AnswerRecord struct {
	ID     string `json:"id"`
	Answer Answer `json:"answer"`
}

// ContextAnswerRecord is one row of the answers-with-context output.
type ContextAnswerRecord struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   Answer `json:"answer"`
	Context  string `json:"context"`
}
