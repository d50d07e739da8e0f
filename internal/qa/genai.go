// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package qa

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"google.golang.org/genai"

	"github.com/pdiddy/scholarqa/pkg/types"
)

// DefaultGenAIModel is used when QAConfig.Model is empty.
const DefaultGenAIModel = "gemini-2.5-flash"

const extractivePrompt = `Answer the question by copying the shortest span of the context that answers it.
Reply with JSON {"answer": "<span>"}. The span must appear verbatim in the context.
If the context does not contain the answer, reply {"answer": ""}.

Context:
%s

Question: %s`

// generator produces a text completion for a prompt.
type generator interface {
	generate(ctx context.Context, prompt string) (string, error)
}

// GenAIEngine asks a Gemini model for an extractive span and keeps the reply
// only if it occurs in the context.
type GenAIEngine struct {
	model string
	gen   generator
}

// NewGenAIEngine creates a Gemini-backed engine.
func NewGenAIEngine(ctx context.Context, cfg types.QAConfig) (*GenAIEngine, error) {
	if cfg.APIKey == "" {
		return nil, errors.WithHint(
			errors.New("GenAI API key is required"),
			"set qa.api_key or write the key to .secrets/"+SecretGenAIKey,
		)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGenAIModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating GenAI client")
	}

	return &GenAIEngine{
		model: model,
		gen:   &genaiGenerator{client: client, model: model},
	}, nil
}

// Name returns the engine identifier.
func (e *GenAIEngine) Name() string { return "genai:" + e.model }

// Answer prompts the model and validates the span against the context.
func (e *GenAIEngine) Answer(ctx context.Context, question, passage string) (Result, error) {
	if strings.TrimSpace(passage) == "" {
		return emptyResult(), nil
	}

	text, err := e.gen.generate(ctx, fmt.Sprintf(extractivePrompt, passage, question))
	if err != nil {
		return emptyResult(), errors.Wrap(err, "GenAI generate")
	}

	span := parseSpan(text)
	if span == "" {
		return emptyResult(), nil
	}
	start := strings.Index(passage, span)
	if start < 0 {
		return emptyResult(), nil
	}
	return spanResult(passage, start, start+len(span), 1), nil
}

// parseSpan reads {"answer": ...}, tolerating a fenced code block. Plain
// text replies are used as-is.
func parseSpan(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var reply struct {
		Answer string `json:"answer"`
	}
	if strings.HasPrefix(text, "{") {
		if err := json.Unmarshal([]byte(text), &reply); err == nil {
			return strings.TrimSpace(reply.Answer)
		}
	}
	return text
}

type genaiGenerator struct {
	client *genai.Client
	model  string
}

func (g *genaiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	temperature := float32(0)
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:      &temperature,
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
