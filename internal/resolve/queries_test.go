// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorAttributesQuery_ProjectsAllFields(t *testing.T) {
	q := AuthorAttributesQuery(`O"Brien`)
	for _, f := range AuthorFields {
		assert.Contains(t, q, "?"+f)
	}
	assert.Contains(t, q, `FILTER(lcase(str(?name)) = lcase("O\"Brien"))`)
}

func TestInstitutionAttributesQuery_ProjectsAllFields(t *testing.T) {
	q := InstitutionAttributesQuery("https://semopenalex.org/institution/I1")
	for _, f := range InstitutionFields {
		assert.Contains(t, q, "?"+f)
	}
	assert.Contains(t, q, "dbp:acronym ?acronym")
}

func TestAuthorNameQuery_KeepsPrefixedRef(t *testing.T) {
	assert.Contains(t, AuthorNameQuery("dblp:x1"), "dblp:x1 dblp:creatorName ?name")
}
