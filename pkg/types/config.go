package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scholarqa/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SPARQLConfig holds settings for the structured-query endpoints.
type SPARQLConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// DBLPEndpoint resolves author URIs to display names.
	DBLPEndpoint string `json:"dblp_endpoint" yaml:"dblp_endpoint" mapstructure:"dblp_endpoint"`

	// GraphEndpoint serves author and institution attributes (SemOpenAlex).
	GraphEndpoint string `json:"graph_endpoint" yaml:"graph_endpoint" mapstructure:"graph_endpoint"`

	// RequestsPerSecond caps the query rate per endpoint client. Zero disables limiting.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// MaxRetries bounds retries on HTTP 429 and 503. Zero selects the
	// default of 5; a negative value disables retries.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// QABackend identifies the extractive question-answering engine.
type QABackend string

const (
	QABackendLexical QABackend = "lexical"
	QABackendHTTP    QABackend = "http"
	QABackendGenAI   QABackend = "genai"
)

// QAConfig holds settings for the model fallback.
type QAConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Backend selects the engine: lexical, http, or genai.
	Backend QABackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Endpoint is the inference URL for the http backend.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// Model is the model identifier for the genai backend
	// (e.g. "gemini-2.5-flash").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey authenticates the http (bearer token) or genai backend.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`
}

// RouteConfig holds settings for the keyword router.
type RouteConfig struct {
	// LegacyKeywords reproduces the single-keyword test of the two-keyword
	// rules instead of requiring both keywords.
	LegacyKeywords bool `json:"legacy_keywords" yaml:"legacy_keywords" mapstructure:"legacy_keywords"`
}

// AnswerConfig holds file locations for the answering stage.
type AnswerConfig struct {
	// InputPath is the JSON array of question records.
	InputPath string `json:"input" yaml:"input" mapstructure:"input"`

	// AnswersPath receives the [{id, answer}] output.
	AnswersPath string `json:"answers" yaml:"answers" mapstructure:"answers"`

	// ContextPath receives the [{id, question, answer, context}] output.
	ContextPath string `json:"answers_context" yaml:"answers_context" mapstructure:"answers_context"`
}

// FilterConfig holds settings for the list-filter utility.
type FilterConfig struct {
	// InputPath is the JSON array to partition.
	InputPath string `json:"input" yaml:"input" mapstructure:"input"`

	// FilteredPath receives records whose Field is a list.
	FilteredPath string `json:"filtered" yaml:"filtered" mapstructure:"filtered"`

	// RemainingPath receives all other records.
	RemainingPath string `json:"remaining" yaml:"remaining" mapstructure:"remaining"`

	// Field is the key inspected on each record (default "author_dblp_uri").
	Field string `json:"field" yaml:"field" mapstructure:"field"`
}

// LedgerConfig holds settings for the run ledger.
type LedgerConfig struct {
	// Dir is the directory holding runs.db.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Disabled skips recording runs.
	Disabled bool `json:"disabled" yaml:"disabled" mapstructure:"disabled"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	SPARQL SPARQLConfig `json:"sparql" yaml:"sparql" mapstructure:"sparql"`
	QA     QAConfig     `json:"qa" yaml:"qa" mapstructure:"qa"`
	Route  RouteConfig  `json:"route" yaml:"route" mapstructure:"route"`
	Answer AnswerConfig `json:"answer" yaml:"answer" mapstructure:"answer"`
	Filter FilterConfig `json:"filter" yaml:"filter" mapstructure:"filter"`
	Ledger LedgerConfig `json:"ledger" yaml:"ledger" mapstructure:"ledger"`
}
