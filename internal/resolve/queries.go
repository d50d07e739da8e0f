// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"fmt"
	"strings"

	"github.com/pdiddy/scholarqa/internal/sparql"
)

// Author attribute names.
const (
	FieldName                 = "name"
	FieldMemberOf             = "memberOf"
	FieldCitedByCount         = "citedByCount"
	FieldWorksCount           = "worksCount"
	FieldHIndex               = "hIndex"
	FieldI10Index             = "i10Index"
	FieldTwoYearMeanCitedness = "twoYearMeanCitedness"
)

// Institution attribute names not shared with authors.
const (
	FieldHomepage    = "homepage"
	FieldCountryCode = "countryCode"
	FieldAcronym     = "acronym"
	FieldRorType     = "rorType"
)

// AuthorFields are the variables every author row must bind.
var AuthorFields = []string{
	FieldName, FieldMemberOf, FieldCitedByCount, FieldWorksCount,
	FieldHIndex, FieldI10Index, FieldTwoYearMeanCitedness,
}

// InstitutionFields are the variables every institution row must bind.
var InstitutionFields = []string{
	FieldCitedByCount, FieldWorksCount, FieldHomepage, FieldName,
	FieldCountryCode, FieldAcronym, FieldRorType,
}

const authorNameQuery = `PREFIX dblp: <https://dblp.org/rdf/schema#>

SELECT ?name
WHERE {
    %s dblp:creatorName ?name .
}`

const authorAttributesQuery = `PREFIX foaf: <http://xmlns.com/foaf/0.1/>
PREFIX org: <http://www.w3.org/ns/org#>
PREFIX soa: <https://semopenalex.org/ontology/>
PREFIX bido: <http://purl.org/spar/bido/>

SELECT ?author %s
WHERE {
    ?author foaf:name ?name ;
        org:memberOf ?memberOf ;
        soa:citedByCount ?citedByCount ;
        soa:worksCount ?worksCount ;
        bido:h-index ?hIndex ;
        soa:2YrMeanCitedness ?twoYearMeanCitedness ;
        soa:i10Index ?i10Index .

    FILTER(lcase(str(?name)) = lcase(%s))
}`

const institutionAttributesQuery = `PREFIX foaf: <http://xmlns.com/foaf/0.1/>
PREFIX soa: <https://semopenalex.org/ontology/>
PREFIX dbp: <https://dbpedia.org/property/>

SELECT %s
WHERE {
    %s a soa:Institution ;
        soa:citedByCount ?citedByCount ;
        soa:worksCount ?worksCount ;
        foaf:homepage ?homepage ;
        foaf:name ?name ;
        dbp:countryCode ?countryCode ;
        dbp:acronym ?acronym ;
        soa:rorType ?rorType .
}`

// AuthorNameQuery selects the DBLP creator name bound to an author reference.
func AuthorNameQuery(ref string) string {
	return fmt.Sprintf(authorNameQuery, sparql.IRI(ref))
}

// AuthorAttributesQuery selects the seven author attributes for a display
// name, matched case-insensitively.
func AuthorAttributesQuery(name string) string {
	return fmt.Sprintf(authorAttributesQuery, projection(AuthorFields), sparql.QuoteLiteral(name))
}

// InstitutionAttributesQuery selects the institution attributes for a
// reference taken from an author's memberOf value.
func InstitutionAttributesQuery(ref string) string {
	return fmt.Sprintf(institutionAttributesQuery, projection(InstitutionFields), sparql.IRI(ref))
}

func projection(fields []string) string {
	vars := make([]string, len(fields))
	for i, f := range fields {
		vars[i] = "?" + f
	}
	return strings.Join(vars, " ")
}
