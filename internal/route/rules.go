// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package route

import "github.com/pdiddy/scholarqa/internal/resolve"

// singleRules is evaluated in order; the first match wins. Under
// MatchStrict, the "cited by count" rules on the institution are shadowed
// by author-cited-by-count.
var singleRules = []rule{
	{name: "author-citedness", anyOf: []string{"citedness"}, target: TargetAuthor, field: resolve.FieldTwoYearMeanCitedness},
	{name: "author-hindex", anyOf: []string{"hindex"}, target: TargetAuthor, field: resolve.FieldHIndex},
	{name: "author-i10index", anyOf: []string{"i10index"}, target: TargetAuthor, field: resolve.FieldI10Index},
	{name: "author-cited-by-count", anyOf: []string{"cited by count", "citedbycount", "citedby count"}, target: TargetAuthor, field: resolve.FieldCitedByCount},
	{name: "author-works-count", anyOf: []string{"works count", "workscount"}, target: TargetAuthor, field: resolve.FieldWorksCount},
	{name: "institution-cited-by-count-where", anyOf: []string{"cited by count"}, requires: "where", loose: true, target: TargetInstitution, field: resolve.FieldCitedByCount},
	{name: "institution-cited-by-count", anyOf: []string{"cited by count"}, requires: "institution", loose: true, target: TargetInstitution, field: resolve.FieldCitedByCount},
	{name: "institution-kind", anyOf: []string{"kind"}, requires: "institution", loose: true, target: TargetInstitution, field: resolve.FieldRorType},
	{name: "institution-type", anyOf: []string{"type"}, target: TargetInstitution, field: resolve.FieldRorType},
	{name: "institution-publications", anyOf: []string{"number of publications"}, requires: "institution", target: TargetInstitution, field: resolve.FieldWorksCount},
	{name: "affiliation-publications", anyOf: []string{"number of publications"}, requires: "affiliation", target: TargetInstitution, field: resolve.FieldWorksCount},
	{name: "institution-publications-cited", anyOf: []string{"number of publications"}, requires: "cited", target: TargetInstitution, field: resolve.FieldCitedByCount},
	{name: "institution-how-many-publications", anyOf: []string{"how many publications"}, requires: "institution", target: TargetInstitution, field: resolve.FieldWorksCount},
	{name: "affiliation-how-many-publications", anyOf: []string{"how many publications"}, requires: "affiliation", target: TargetInstitution, field: resolve.FieldWorksCount},
	{name: "author-books", anyOf: []string{"how many books has"}, target: TargetAuthor, field: resolve.FieldWorksCount},
	{name: "institution-acronym", anyOf: []string{"short name"}, target: TargetInstitution, field: resolve.FieldAcronym},
}

// compareRules all require "higher". The last two were written with the
// literal-and pattern and are loose in legacy mode.
var compareRules = []rule{
	{name: "higher-hindex", anyOf: []string{"hindex"}, requires: "higher", field: resolve.FieldHIndex},
	{name: "higher-i10index", anyOf: []string{"i10index"}, requires: "higher", field: resolve.FieldI10Index},
	{name: "higher-citedbycount", anyOf: []string{"citedbycount"}, requires: "higher", field: resolve.FieldCitedByCount},
	{name: "higher-works-count", anyOf: []string{"higher"}, requires: "works count", loose: true, field: resolve.FieldWorksCount},
	{name: "higher-twoyearscitedness", anyOf: []string{"higher"}, requires: "twoyearscitedness", loose: true, field: resolve.FieldTwoYearMeanCitedness},
}
