// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve turns author references into attribute maps by chaining
// lookups against the DBLP and SemOpenAlex SPARQL endpoints. Lookup failures
// never surface as errors: they are logged and the caller gets an absent
// (nil) Attributes, which reads as the unavailable sentinel.
package resolve

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/pdiddy/scholarqa/internal/logging"
	"github.com/pdiddy/scholarqa/internal/sparql"
	"github.com/pdiddy/scholarqa/pkg/types"
)

// Default public endpoints.
const (
	DefaultDBLPEndpoint  = "https://dblp-april24.skynet.coypu.org/sparql"
	DefaultGraphEndpoint = "https://semoa.skynet.coypu.org/sparql"
)

// Attributes maps field names to lexical values. A nil Attributes means the
// entity could not be resolved.
type Attributes map[string]string

// Field returns the value bound to name, or types.Unavailable when the
// attributes are absent or the field is unbound.
func (a Attributes) Field(name string) string {
	if a == nil {
		return types.Unavailable
	}
	v, ok := a[name]
	if !ok {
		return types.Unavailable
	}
	return v
}

// Resolver performs the entity lookups for one pipeline run.
type Resolver struct {
	Querier       sparql.Querier
	DBLPEndpoint  string
	GraphEndpoint string
	Logger        *zap.SugaredLogger
}

// New returns a Resolver with default endpoints filled in.
func New(q sparql.Querier, cfg types.SPARQLConfig, log *zap.SugaredLogger) *Resolver {
	r := &Resolver{
		Querier:       q,
		DBLPEndpoint:  cfg.DBLPEndpoint,
		GraphEndpoint: cfg.GraphEndpoint,
		Logger:        logging.OrNop(log),
	}
	if r.DBLPEndpoint == "" {
		r.DBLPEndpoint = DefaultDBLPEndpoint
	}
	if r.GraphEndpoint == "" {
		r.GraphEndpoint = DefaultGraphEndpoint
	}
	return r
}

// AuthorName returns the first DBLP creator name bound to ref.
func (r *Resolver) AuthorName(ctx context.Context, ref string) (string, bool) {
	log := logging.OrNop(r.Logger)

	res, err := r.Querier.Select(ctx, r.DBLPEndpoint, AuthorNameQuery(ref))
	if err != nil {
		r.logFailure("DBLP name lookup failed", r.DBLPEndpoint, err)
		return "", false
	}

	for _, row := range res.Rows() {
		if name, ok := row.Value(FieldName); ok {
			return name, true
		}
	}
	log.Warnw("no DBLP name for author", "ref", ref, logging.FieldBody, string(res.Body))
	return "", false
}

// AuthorAttributes returns the attributes of the first author whose display
// name matches name case-insensitively and who has every author field bound.
func (r *Resolver) AuthorAttributes(ctx context.Context, name string) Attributes {
	if name == "" {
		return nil
	}
	res, err := r.Querier.Select(ctx, r.GraphEndpoint, AuthorAttributesQuery(name))
	if err != nil {
		r.logFailure("author attribute lookup failed", r.GraphEndpoint, err)
		return nil
	}
	attrs := firstComplete(res, AuthorFields)
	if attrs == nil {
		logging.OrNop(r.Logger).Debugw("no complete author row", "name", name)
	}
	return attrs
}

// InstitutionAttributes returns the attributes of the institution ref. An
// empty or unavailable ref returns nil without a query.
func (r *Resolver) InstitutionAttributes(ctx context.Context, ref string) Attributes {
	if ref == "" || ref == types.Unavailable {
		return nil
	}
	res, err := r.Querier.Select(ctx, r.GraphEndpoint, InstitutionAttributesQuery(ref))
	if err != nil {
		r.logFailure("institution attribute lookup failed", r.GraphEndpoint, err)
		return nil
	}
	attrs := firstComplete(res, InstitutionFields)
	if attrs == nil {
		logging.OrNop(r.Logger).Debugw("no complete institution row", "ref", ref)
	}
	return attrs
}

// Author resolves a DBLP reference to the author's attributes.
func (r *Resolver) Author(ctx context.Context, ref string) Attributes {
	name, ok := r.AuthorName(ctx, ref)
	if !ok {
		return nil
	}
	return r.AuthorAttributes(ctx, name)
}

// firstComplete returns the first row binding every field, or nil.
func firstComplete(res *sparql.Result, fields []string) Attributes {
	for _, row := range res.Rows() {
		if !row.Has(fields...) {
			continue
		}
		attrs := make(Attributes, len(fields))
		for _, f := range fields {
			attrs[f], _ = row.Value(f)
		}
		return attrs
	}
	return nil
}

func (r *Resolver) logFailure(msg, endpoint string, err error) {
	log := logging.OrNop(r.Logger)
	var se *sparql.StatusError
	if errors.As(err, &se) {
		log.Warnw(msg,
			logging.FieldEndpoint, endpoint,
			logging.FieldStatus, se.StatusCode,
			logging.FieldBody, se.Body,
		)
		return
	}
	log.Warnw(msg, logging.FieldEndpoint, endpoint, logging.FieldError, err)
}
