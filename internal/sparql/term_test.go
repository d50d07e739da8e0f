// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sparql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteLiteral(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Ada Lovelace", `"Ada Lovelace"`},
		{`O"Brien`, `"O\"Brien"`},
		{`back\slash`, `"back\\slash"`},
		{"two\nlines", `"two\nlines"`},
		{"José Müller", `"José Müller"`},
		{"", `""`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, QuoteLiteral(tt.in), "input %q", tt.in)
	}
}

func TestIRI(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"<https://dblp.org/pid/00/1>", "<https://dblp.org/pid/00/1>"},
		{"https://dblp.org/pid/00/1", "<https://dblp.org/pid/00/1>"},
		{"http://example.org/x", "<http://example.org/x>"},
		{"dblp:x1", "dblp:x1"},
		{"  <https://semopenalex.org/institution/I1>  ", "<https://semopenalex.org/institution/I1>"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IRI(tt.in), "input %q", tt.in)
	}
}

func TestBindingHas(t *testing.T) {
	b := Binding{
		"name":   {Type: "literal", Value: "x"},
		"hindex": {Type: "literal", Value: "3"},
	}
	assert.True(t, b.Has("name", "hindex"))
	assert.False(t, b.Has("name", "i10Index"))
	assert.True(t, b.Has())

	var r *Result
	assert.Empty(t, r.Rows())
	_, ok := r.First()
	assert.False(t, ok)
}
