// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline answers a batch of question records. Each record is
// routed by the shape of its author reference, answered from the knowledge
// graph when a rule matches, and otherwise handed to the QA engine. Records
// are processed one at a time; a failure in one record is logged and the
// record is left out of the outputs.
package pipeline

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/pdiddy/scholarqa/internal/logging"
	"github.com/pdiddy/scholarqa/internal/qa"
	"github.com/pdiddy/scholarqa/internal/resolve"
	"github.com/pdiddy/scholarqa/internal/route"
	"github.com/pdiddy/scholarqa/pkg/types"
)

// Resolver looks up author and institution attributes. *resolve.Resolver
// satisfies it.
type Resolver interface {
	Author(ctx context.Context, ref string) resolve.Attributes
	InstitutionAttributes(ctx context.Context, ref string) resolve.Attributes
}

// Recorder receives a Trace for every emitted answer.
type Recorder interface {
	Record(ctx context.Context, t types.Trace) error
}

// Pipeline holds the collaborators shared by every record of a run.
type Pipeline struct {
	Resolver Resolver
	Engine   qa.Engine
	Router   *route.Router
	Logger   *zap.SugaredLogger
	Recorder Recorder
}

// Failure is a record left out of the outputs.
type Failure struct {
	ID  string
	Err error
}

// Output holds the results of a run.
type Output struct {
	Answers     []types.AnswerRecord
	WithContext []types.ContextAnswerRecord
	Traces      []types.Trace

	// NullAnswers counts answers replaced by types.NoAnswer.
	NullAnswers int
	Failed      []Failure
	Sources     map[types.Source]int
}

// Total returns the number of records seen.
func (o Output) Total() int { return len(o.Answers) + len(o.Failed) }

// Run answers records in order. It returns early only when ctx is done,
// with the output gathered so far.
func (p *Pipeline) Run(ctx context.Context, records []json.RawMessage) (Output, error) {
	log := logging.OrNop(p.Logger)
	out := Output{Sources: make(map[types.Source]int)}

	for _, raw := range records {
		if err := ctx.Err(); err != nil {
			return out, errors.Wrap(err, "answering interrupted")
		}

		rec, trace, err := p.process(ctx, raw)
		if err != nil {
			id := rec.ID
			if id == "" {
				id = types.PeekID(raw)
			}
			log.Errorw("record failed", logging.FieldRecordID, id, logging.FieldError, err)
			out.Failed = append(out.Failed, Failure{ID: id, Err: err})
			continue
		}

		if trace.Source == types.SourceNone {
			out.NullAnswers++
		}
		out.Sources[trace.Source]++
		out.Answers = append(out.Answers, types.AnswerRecord{ID: rec.ID, Answer: trace.Answer})
		out.WithContext = append(out.WithContext, types.ContextAnswerRecord{
			ID:       rec.ID,
			Question: rec.Question,
			Answer:   trace.Answer,
			Context:  rec.Context,
		})
		out.Traces = append(out.Traces, trace)

		if p.Recorder != nil {
			if err := p.Recorder.Record(ctx, trace); err != nil {
				log.Warnw("recording answer failed", logging.FieldRecordID, rec.ID, logging.FieldError, err)
			}
		}
		log.Debugw("answered", logging.FieldRecordID, rec.ID, logging.FieldSource, trace.Source, logging.FieldRule, trace.Rule)
	}
	return out, nil
}

// process decodes and answers one record. Panics are turned into errors so
// a bad record cannot stop the batch.
func (p *Pipeline) process(ctx context.Context, raw json.RawMessage) (rec types.QuestionRecord, trace types.Trace, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("panic: %v", r)
		}
	}()

	rec, err = types.DecodeQuestion(raw)
	if err != nil {
		return rec, trace, err
	}
	logging.OrNop(p.Logger).Infow("processing", logging.FieldRecordID, rec.ID)
	trace, err = p.Answer(ctx, rec)
	return rec, trace, err
}

// Answer produces the answer for one decoded record.
func (p *Pipeline) Answer(ctx context.Context, rec types.QuestionRecord) (types.Trace, error) {
	trace := types.Trace{ID: rec.ID, Question: rec.Question}

	d := p.route(ctx, rec)
	trace.Answer = d.Answer
	trace.Rule = d.Rule
	trace.Source = types.SourceGraph
	if d.Target == route.TargetCompare {
		trace.Source = types.SourceCompare
	}

	if d.Answer.IsUnavailable() {
		if p.Engine == nil {
			return trace, errors.New("no QA engine configured")
		}
		res, err := p.Engine.Answer(ctx, rec.Question, rec.Context)
		if err != nil {
			return trace, errors.Wrapf(err, "%s engine", p.Engine.Name())
		}
		trace.Answer = types.TextAnswer(res.Answer)
		trace.Source = types.SourceModel
	}

	if trace.Answer.IsEmpty() {
		trace.Answer = types.TextAnswer(types.NoAnswer)
		trace.Source = types.SourceNone
	}
	return trace, nil
}

func (p *Pipeline) route(ctx context.Context, rec types.QuestionRecord) route.Decision {
	router := p.Router
	if router == nil {
		router = route.New(false)
	}
	ref := rec.AuthorRef

	switch {
	case ref.Shape == types.RefSingle:
		author := p.Resolver.Author(ctx, ref.URIs[0])
		institution := p.Resolver.InstitutionAttributes(ctx, author.Field(resolve.FieldMemberOf))
		return router.Single(rec.Question, author, institution)
	case ref.IsPair():
		a := p.Resolver.Author(ctx, ref.URIs[0])
		b := p.Resolver.Author(ctx, ref.URIs[1])
		return router.Compare(rec.Question, a, b)
	default:
		return route.Decision{Answer: types.UnavailableAnswer()}
	}
}
