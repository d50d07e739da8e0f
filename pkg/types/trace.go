// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Source records where an emitted answer came from.
type Source string

const (
	// SourceGraph is a single-author field read from the knowledge graph.
	SourceGraph Source = "graph"
	// SourceCompare is the result of comparing two authors' metrics.
	SourceCompare Source = "compare"
	// SourceModel is a span extracted by the QA engine.
	SourceModel Source = "model"
	// SourceNone means nothing answered and NoAnswer was substituted.
	SourceNone Source = "none"
)

// Trace describes how one record was answered. The pipeline hands a Trace
// to its recorder for every emitted answer.
type Trace struct {
	ID       string `json:"id" yaml:"id"`
	Question string `json:"question" yaml:"question"`
	Answer   Answer `json:"answer" yaml:"answer"`
	Source   Source `json:"source" yaml:"source"`
	Rule     string `json:"rule,omitempty" yaml:"rule,omitempty"`
}
