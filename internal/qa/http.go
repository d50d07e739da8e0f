// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package qa

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/pdiddy/scholarqa/internal/httputil"
	"github.com/pdiddy/scholarqa/pkg/types"
)

// DefaultInferenceEndpoint serves deepset/bert-base-cased-squad2, the
// SQuAD2 extractive model the pipeline was tuned against.
const DefaultInferenceEndpoint = "https://router.huggingface.co/hf-inference/models/deepset/bert-base-cased-squad2"

// HTTPEngine calls a hosted question-answering inference endpoint.
type HTTPEngine struct {
	Client    *http.Client
	Endpoint  string
	Token     string
	UserAgent string
}

// NewHTTPEngine builds an HTTPEngine from configuration.
func NewHTTPEngine(cfg types.QAConfig) *HTTPEngine {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultInferenceEndpoint
	}
	return &HTTPEngine{
		Client:    &http.Client{Timeout: cfg.Timeout},
		Endpoint:  endpoint,
		Token:     cfg.APIKey,
		UserAgent: cfg.UserAgent,
	}
}

// Name returns the engine identifier.
func (e *HTTPEngine) Name() string { return "http" }

type inferenceRequest struct {
	Inputs inferenceInputs `json:"inputs"`
}

type inferenceInputs struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

// Answer posts the question and context. An empty context returns an empty
// answer without a request, since the model has nothing to extract from.
func (e *HTTPEngine) Answer(ctx context.Context, question, passage string) (Result, error) {
	if strings.TrimSpace(passage) == "" {
		return emptyResult(), nil
	}

	payload, err := json.Marshal(inferenceRequest{Inputs: inferenceInputs{Question: question, Context: passage}})
	if err != nil {
		return emptyResult(), errors.Wrap(err, "encoding inference request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return emptyResult(), errors.Wrap(err, "creating inference request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if e.Token != "" {
		req.Header.Set("Authorization", "Bearer "+e.Token)
	}
	if e.UserAgent != "" {
		req.Header.Set("User-Agent", e.UserAgent)
	}

	client := e.Client
	if client == nil {
		client = http.DefaultClient
	}

	// 503 is returned while a hosted model is loading.
	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return emptyResult(), errors.Wrap(err, "inference request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return emptyResult(), errors.Wrap(err, "reading inference response")
	}
	if resp.StatusCode != http.StatusOK {
		return emptyResult(), errors.Newf("inference endpoint returned HTTP %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	return decodeInference(body)
}

// decodeInference accepts either a single result object or a ranked list,
// taking the first element of a list.
func decodeInference(body []byte) (Result, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []Result
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return emptyResult(), errors.Wrap(err, "parsing inference response")
		}
		if len(list) == 0 {
			return emptyResult(), nil
		}
		return list[0], nil
	}
	var r Result
	if err := json.Unmarshal(trimmed, &r); err != nil {
		return emptyResult(), errors.Wrap(err, "parsing inference response")
	}
	return r, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
