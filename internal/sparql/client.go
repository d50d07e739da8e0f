// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sparql issues SELECT queries to SPARQL endpoints over the
// standard HTTP protocol and decodes application/sparql-results+json.
package sparql

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/pdiddy/scholarqa/internal/httputil"
	"github.com/pdiddy/scholarqa/pkg/types"
)

// ResultsMediaType is the Accept header sent with every query.
const ResultsMediaType = "application/sparql-results+json"

// maxErrorBody bounds how much of a failed response is kept for logging.
const maxErrorBody = 64 << 10

// StatusError is returned when an endpoint answers with a non-200 status.
// Body holds the raw response text.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("SPARQL endpoint %s returned HTTP %d", e.Endpoint, e.StatusCode)
}

// Querier runs a SELECT query against an endpoint.
type Querier interface {
	Select(ctx context.Context, endpoint, query string) (*Result, error)
}

// Client is the HTTP implementation of Querier.
type Client struct {
	HTTP       *http.Client
	UserAgent  string
	MaxRetries int
	limiter    *rate.Limiter
}

// NewClient builds a Client from configuration. A zero timeout leaves
// requests unbounded; a zero rate disables limiting.
func NewClient(cfg types.SPARQLConfig) *Client {
	c := &Client{
		HTTP:       &http.Client{Timeout: cfg.Timeout},
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return c
}

// Select POSTs query as a form-encoded body and decodes the bindings.
func (c *Client) Select(ctx context.Context, endpoint, query string) (*Result, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "waiting for query slot")
		}
	}

	form := url.Values{"query": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "creating SPARQL request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", ResultsMediaType)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, c.MaxRetries)
	if err != nil {
		return nil, errors.Wrapf(err, "querying %s", endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading SPARQL results from %s", endpoint)
	}
	var res Result
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, errors.Wrapf(err, "parsing SPARQL results from %s", endpoint)
	}
	res.Body = body
	return &res, nil
}
