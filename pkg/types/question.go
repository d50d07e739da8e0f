// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the scholarqa pipeline:
// question records read from the input collection, the answer value that
// flows through routing and fallback, the two output record shapes, and
// per-stage configuration.
package types

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// RefShape classifies the JSON shape of a record's author reference.
type RefShape int

const (
	// RefAbsent means the key is missing or null.
	RefAbsent RefShape = iota
	// RefSingle is a single author URI string.
	RefSingle
	// RefList is a JSON array of author URI strings, of any length.
	RefList
	// RefOther is any other JSON value, including a list of non-strings
	// that is not a pair.
	RefOther
)

// String returns a short label for logs.
func (s RefShape) String() string {
	switch s {
	case RefAbsent:
		return "absent"
	case RefSingle:
		return "single"
	case RefList:
		return "list"
	default:
		return "other"
	}
}

// AuthorRef is the decoded author_dblp_uri value. Decoding keeps the shape
// so the router can decide between the single-author and comparative cases
// and return the unavailable sentinel for everything else.
type AuthorRef struct {
	Shape RefShape
	URIs  []string
	raw   json.RawMessage
}

// SingleRef returns an AuthorRef for one author URI.
func SingleRef(uri string) AuthorRef {
	return AuthorRef{Shape: RefSingle, URIs: []string{uri}}
}

// ListRef returns an AuthorRef for a list of author URIs.
func ListRef(uris ...string) AuthorRef {
	return AuthorRef{Shape: RefList, URIs: uris}
}

// IsPair reports whether the reference names exactly two authors.
func (r AuthorRef) IsPair() bool {
	return r.Shape == RefList && len(r.URIs) == 2
}

// UnmarshalJSON records the shape of the value. A list that is not a pair
// decodes as RefOther when it holds non-strings, since no lookup uses it.
// A pair containing anything other than strings is rejected so the record
// fails at its own boundary.
func (r *AuthorRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	*r = AuthorRef{raw: append(json.RawMessage(nil), trimmed...)}

	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		r.Shape = RefAbsent
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return errors.Wrap(err, "decoding author_dblp_uri string")
		}
		r.Shape = RefSingle
		r.URIs = []string{s}
	case trimmed[0] == '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return errors.Wrap(err, "decoding author_dblp_uri list")
		}
		var uris []string
		if err := json.Unmarshal(trimmed, &uris); err != nil {
			if len(elems) != 2 {
				r.Shape = RefOther
				return nil
			}
			return errors.Wrap(err, "author_dblp_uri pair must contain only strings")
		}
		r.Shape = RefList
		r.URIs = uris
	default:
		r.Shape = RefOther
	}
	return nil
}

// MarshalJSON writes the reference back in the shape it was read.
func (r AuthorRef) MarshalJSON() ([]byte, error) {
	switch r.Shape {
	case RefAbsent:
		return []byte("null"), nil
	case RefSingle:
		if len(r.URIs) == 0 {
			return []byte(`""`), nil
		}
		return json.Marshal(r.URIs[0])
	case RefList:
		if r.URIs == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(r.URIs)
	default:
		if len(r.raw) > 0 {
			return r.raw, nil
		}
		return []byte("null"), nil
	}
}

// QuestionRecord is one row of the input collection.
type QuestionRecord struct {
	// ID identifies the question in both output collections.
	ID string `json:"id"`

	// Question is the natural-language question text.
	Question string `json:"question"`

	// Context is optional free text the fallback model extracts answers from.
	Context string `json:"context,omitempty"`

	// AuthorRef references one or two authors in the bibliographic database.
	AuthorRef AuthorRef `json:"author_dblp_uri"`
}

// ErrMalformedRecord marks a record that cannot be decoded into a QuestionRecord.
var ErrMalformedRecord = errors.New("malformed question record")

// wireQuestion mirrors QuestionRecord with loosely typed id and context so
// numeric ids and null contexts decode the way the input files use them.
type wireQuestion struct {
	ID        json.RawMessage `json:"id"`
	Question  *string         `json:"question"`
	Context   *string         `json:"context"`
	AuthorRef AuthorRef       `json:"author_dblp_uri"`
}

// DecodeQuestion decodes one raw input record. The id must be a string or a
// number and the question must be a string; context defaults to "".
func DecodeQuestion(raw json.RawMessage) (QuestionRecord, error) {
	var w wireQuestion
	if err := json.Unmarshal(raw, &w); err != nil {
		return QuestionRecord{}, errors.Mark(errors.Wrap(err, "decoding question record"), ErrMalformedRecord)
	}

	id, err := decodeID(w.ID)
	if err != nil {
		return QuestionRecord{}, errors.Mark(err, ErrMalformedRecord)
	}
	if w.Question == nil {
		return QuestionRecord{}, errors.Mark(errors.Newf("record %s: missing question", id), ErrMalformedRecord)
	}

	q := QuestionRecord{
		ID:        id,
		Question:  *w.Question,
		AuthorRef: w.AuthorRef,
	}
	if w.Context != nil {
		q.Context = *w.Context
	}
	return q, nil
}

// PeekID returns the record id if one can be read, for error logging.
func PeekID(raw json.RawMessage) string {
	var w struct {
		ID json.RawMessage `json:"id"`
	}
	if json.Unmarshal(raw, &w) != nil {
		return ""
	}
	id, _ := decodeID(w.ID)
	return id
}

func decodeID(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", errors.New("missing id")
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", errors.Wrap(err, "decoding id")
		}
		return s, nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return string(trimmed), nil
	default:
		return "", errors.Newf("id must be a string or number, got %s", trimmed)
	}
}
