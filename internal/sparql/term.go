// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sparql

import "strings"

// QuoteLiteral returns s as a double-quoted SPARQL string literal.
func QuoteLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// IRI renders a resource reference for a query pattern. Values already in
// angle brackets or in prefixed form (dblp:x) pass through; bare http(s)
// IRIs are wrapped in angle brackets.
func IRI(ref string) string {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "<") && strings.HasSuffix(ref, ">") {
		return ref
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return "<" + ref + ">"
	}
	return ref
}
