// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package route

import (
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/scholarqa/pkg/types"
)

// Mode selects which of two values CompareValues returns.
type Mode string

const (
	Higher Mode = "higher"
	Lower  Mode = "lower"
)

// CompareValues parses a and b as numbers and returns the larger (Higher)
// or smaller (Lower). Either input being the unavailable sentinel, or not
// parsing to a finite number, yields the sentinel. An unknown mode yields
// types.InvalidComparison.
func CompareValues(a, b string, mode Mode) types.Answer {
	if a == types.Unavailable || b == types.Unavailable {
		return types.UnavailableAnswer()
	}

	x, okA := parseNumber(a)
	y, okB := parseNumber(b)
	if !okA || !okB {
		return types.UnavailableAnswer()
	}

	switch mode {
	case Higher:
		return types.NumberAnswer(math.Max(x, y))
	case Lower:
		return types.NumberAnswer(math.Min(x, y))
	default:
		return types.TextAnswer(types.InvalidComparison)
	}
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
