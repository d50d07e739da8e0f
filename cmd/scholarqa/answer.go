// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pdiddy/scholarqa/internal/ledger"
	"github.com/pdiddy/scholarqa/internal/logging"
	"github.com/pdiddy/scholarqa/internal/pipeline"
	"github.com/pdiddy/scholarqa/internal/qa"
	"github.com/pdiddy/scholarqa/internal/resolve"
	"github.com/pdiddy/scholarqa/internal/route"
	"github.com/pdiddy/scholarqa/internal/sparql"
	"github.com/pdiddy/scholarqa/pkg/types"
)

var answerCmd = &cobra.Command{
	Use:   "answer",
	Short: "Answer a batch of question records",
	Long: `Answer reads a JSON array of question records and writes two JSON
arrays: {id, answer} and {id, question, answer, context}.

Questions naming one DBLP author are answered from that author's or their
institution's SemOpenAlex attributes; questions naming two authors compare a
metric. When no rule matches or the graph has no value, the QA engine
extracts an answer from the record's context. Empty answers become
"No answer found" and are counted.

The default lexical engine runs offline and returns the whole context
sentence that best overlaps the question, not a span from a trained model.
Pass --backend http to query the hosted extractive model
(deepset/bert-base-cased-squad2), or --backend genai to prompt Gemini.

Records that fail are logged and left out of both outputs. Each run is
recorded in the ledger unless --no-ledger is set.`,
	RunE: runAnswer,
}

func runAnswer(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, map[string]string{
		"input":           "answer.input",
		"answers":         "answer.answers",
		"answers-context": "answer.answers_context",
		"backend":         "qa.backend",
		"legacy-keywords": "route.legacy_keywords",
		"no-ledger":       "ledger.disabled",
	}); err != nil {
		return err
	}
	logConfigUsed(logger)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	records, err := pipeline.ReadQuestions(cfg.Answer.InputPath)
	if err != nil {
		return errors.WithHint(err, "pass --input or set answer.input in scholarqa.yaml")
	}
	logger.Infow("read questions", logging.FieldFile, cfg.Answer.InputPath, logging.FieldCount, len(records))

	engine, err := qa.New(ctx, cfg.QA, loadedSecrets)
	if err != nil {
		return err
	}
	router := route.New(cfg.Route.LegacyKeywords)

	p := &pipeline.Pipeline{
		Resolver: resolve.New(sparql.NewClient(cfg.SPARQL), cfg.SPARQL, logger.Named("resolve")),
		Engine:   engine,
		Router:   router,
		Logger:   logger.Named("pipeline"),
	}

	run, closeLedger := openLedgerRun(ctx, cfg, engine.Name(), router.Mode.String())
	defer closeLedger()
	if run != nil {
		p.Recorder = run
	}

	out, runErr := p.Run(ctx, records)

	if err := pipeline.WriteJSON(cfg.Answer.AnswersPath, nonNil(out.Answers)); err != nil {
		return err
	}
	if err := pipeline.WriteJSON(cfg.Answer.ContextPath, nonNil(out.WithContext)); err != nil {
		return err
	}

	if run != nil {
		counts := ledger.Counts{Answered: len(out.Answers), NullAnswers: out.NullAnswers, Failed: len(out.Failed)}
		if err := run.Finish(context.WithoutCancel(ctx), counts); err != nil {
			logger.Warnw("finishing ledger run failed", logging.FieldError, err)
		}
		fmt.Fprintf(os.Stdout, "Ledger run: %d\n", run.ID)
	}

	fmt.Fprintf(os.Stdout, "Processing complete. Total null predictions: %d\n", out.NullAnswers)
	out.WriteSummary(os.Stdout)
	return runErr
}

// openLedgerRun starts a ledger run. The ledger is optional: failures are
// logged and the batch runs unrecorded.
func openLedgerRun(ctx context.Context, cfg types.PipelineConfig, engine, mode string) (*ledger.Run, func()) {
	noop := func() {}
	if cfg.Ledger.Disabled {
		return nil, noop
	}
	store, err := ledger.Open(cfg.Ledger)
	if err != nil {
		logger.Warnw("ledger unavailable", logging.FieldError, err)
		return nil, noop
	}
	closeStore := func() { store.Close() }

	run, err := store.BeginRun(ctx, ledger.RunInfo{
		InputPath: cfg.Answer.InputPath,
		Engine:    engine,
		MatchMode: mode,
	})
	if err != nil {
		logger.Warnw("starting ledger run failed", logging.FieldError, err)
		return nil, closeStore
	}
	logger.Infow("ledger run started", logging.FieldRunID, run.ID)
	return run, closeStore
}

// nonNil keeps empty outputs as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func init() {
	answerCmd.Flags().String("input", defaultAnswerInput, "JSON array of question records")
	answerCmd.Flags().String("answers", defaultAnswersPath, "output file for [{id, answer}]")
	answerCmd.Flags().String("answers-context", defaultContextPath, "output file for [{id, question, answer, context}]")
	answerCmd.Flags().String("backend", string(types.QABackendLexical), "QA engine: lexical (offline sentence match), http (hosted extractive model), or genai")
	answerCmd.Flags().Bool("legacy-keywords", false, "test only the second keyword of two-keyword rules")
	answerCmd.Flags().Bool("no-ledger", false, "do not record this run in the ledger")

	rootCmd.AddCommand(answerCmd)
}
