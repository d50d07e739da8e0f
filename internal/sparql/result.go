// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sparql

// Result is a decoded SPARQL JSON results document.
type Result struct {
	Head    Head    `json:"head"`
	Results Results `json:"results"`

	// Body is the raw response, kept for logging.
	Body []byte `json:"-"`
}

// Head lists the projected variables.
type Head struct {
	Vars []string `json:"vars"`
}

// Results holds the solution rows.
type Results struct {
	Bindings []Binding `json:"bindings"`
}

// Binding is one solution row: variable name to bound term.
type Binding map[string]Term

// Term is an RDF term in a result row.
type Term struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"xml:lang,omitempty"`
}

// Rows returns the solution rows.
func (r *Result) Rows() []Binding {
	if r == nil {
		return nil
	}
	return r.Results.Bindings
}

// First returns the first row, or false when there are none.
func (r *Result) First() (Binding, bool) {
	rows := r.Rows()
	if len(rows) == 0 {
		return nil, false
	}
	return rows[0], true
}

// Value returns the lexical value bound to name.
func (b Binding) Value(name string) (string, bool) {
	t, ok := b[name]
	if !ok {
		return "", false
	}
	return t.Value, true
}

// Has reports whether every name is bound in the row.
func (b Binding) Has(names ...string) bool {
	for _, n := range names {
		if _, ok := b[n]; !ok {
			return false
		}
	}
	return true
}
