// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholarqa/internal/qa"
	"github.com/pdiddy/scholarqa/internal/resolve"
	"github.com/pdiddy/scholarqa/internal/route"
	"github.com/pdiddy/scholarqa/pkg/types"
)

type fakeResolver struct {
	authors      map[string]resolve.Attributes
	institutions map[string]resolve.Attributes
	calls        []string
}

func (f *fakeResolver) Author(_ context.Context, ref string) resolve.Attributes {
	f.calls = append(f.calls, "author:"+ref)
	return f.authors[ref]
}

func (f *fakeResolver) InstitutionAttributes(_ context.Context, ref string) resolve.Attributes {
	f.calls = append(f.calls, "institution:"+ref)
	return f.institutions[ref]
}

type fakeEngine struct {
	answer string
	err    error
	calls  int
	panic  bool
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Answer(_ context.Context, question, passage string) (qa.Result, error) {
	f.calls++
	if f.panic {
		panic("engine exploded")
	}
	if f.err != nil {
		return qa.Result{}, f.err
	}
	if passage == "" {
		return qa.Result{}, nil
	}
	return qa.Result{Answer: f.answer}, nil
}

type memRecorder struct{ traces []types.Trace }

func (m *memRecorder) Record(_ context.Context, t types.Trace) error {
	m.traces = append(m.traces, t)
	return nil
}

func rawRecords(t *testing.T, s string) []json.RawMessage {
	t.Helper()
	var out []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(s), &out))
	return out
}

func newTestPipeline(res *fakeResolver, eng *fakeEngine) *Pipeline {
	return &Pipeline{Resolver: res, Engine: eng, Router: route.New(false)}
}

func TestRun_EndToEndGraphAnswer(t *testing.T) {
	res := &fakeResolver{authors: map[string]resolve.Attributes{
		"<dblp:x1>": {"name": "A", "memberOf": "https://semopenalex.org/institution/i1", "hIndex": "42"},
	}}
	eng := &fakeEngine{}
	p := newTestPipeline(res, eng)

	out, err := p.Run(context.Background(), rawRecords(t,
		`[{"id":"q1","question":"What is the hindex of the author?","author_dblp_uri":"<dblp:x1>"}]`))
	require.NoError(t, err)

	got, err := json.Marshal(out.Answers)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"q1","answer":"42"}]`, string(got))
	assert.Zero(t, eng.calls)
	assert.Equal(t, []string{"author:<dblp:x1>", "institution:https://semopenalex.org/institution/i1"}, res.calls)
	assert.Equal(t, 1, out.Sources[types.SourceGraph])
}

func TestRun_InstitutionField(t *testing.T) {
	res := &fakeResolver{
		authors: map[string]resolve.Attributes{
			"a1": {"memberOf": "inst1"},
		},
		institutions: map[string]resolve.Attributes{
			"inst1": {"acronym": "MIT"},
		},
	}
	out, err := newTestPipeline(res, &fakeEngine{}).Run(context.Background(), rawRecords(t,
		`[{"id":"q","question":"What is the short name of the author's institution?","author_dblp_uri":"a1"}]`))
	require.NoError(t, err)
	require.Len(t, out.Answers, 1)
	assert.Equal(t, "MIT", out.Answers[0].Answer.String())
	assert.Equal(t, "institution-acronym", out.Traces[0].Rule)
}

func TestRun_Comparison(t *testing.T) {
	res := &fakeResolver{authors: map[string]resolve.Attributes{
		"a": {"hIndex": "5"},
		"b": {"hIndex": "3"},
	}}
	out, err := newTestPipeline(res, &fakeEngine{}).Run(context.Background(), rawRecords(t,
		`[{"id":"c1","question":"Which author has the higher hindex?","author_dblp_uri":["a","b"]}]`))
	require.NoError(t, err)

	got, err := json.Marshal(out.Answers)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"c1","answer":5.0}]`, string(got))
	assert.Equal(t, types.SourceCompare, out.Traces[0].Source)
}

func TestRun_FallbackToEngine(t *testing.T) {
	res := &fakeResolver{}
	eng := &fakeEngine{answer: "Leipzig"}
	out, err := newTestPipeline(res, eng).Run(context.Background(), rawRecords(t, `[
		{"id":"q1","question":"Where is it?","context":"It is in Leipzig."},
		{"id":"q2","question":"What is the hindex?","context":"x","author_dblp_uri":"unknown"},
		{"id":"q3","question":"What is the hindex?","context":"x","author_dblp_uri":["a","b","c"]},
		{"id":"q4","question":"Where?","context":"It is in Leipzig.","author_dblp_uri":[1,2,3]}
	]`))
	require.NoError(t, err)

	require.Empty(t, out.Failed)
	require.Len(t, out.Answers, 4)
	for _, a := range out.Answers {
		assert.Equal(t, "Leipzig", a.Answer.String(), a.ID)
	}
	assert.Equal(t, 4, eng.calls)
	assert.Equal(t, 4, out.Sources[types.SourceModel])
	assert.Equal(t, []string{"author:unknown", "institution:" + types.Unavailable}, res.calls,
		"absent and three-author references perform no lookups")
}

func TestRun_EmptyAnswersCounted(t *testing.T) {
	eng := &fakeEngine{answer: ""}
	out, err := newTestPipeline(&fakeResolver{}, eng).Run(context.Background(), rawRecords(t, `[
		{"id":"q1","question":"anything"},
		{"id":"q2","question":"anything","context":"some text"}
	]`))
	require.NoError(t, err)

	require.Len(t, out.Answers, 2)
	assert.Equal(t, types.NoAnswer, out.Answers[0].Answer.String())
	assert.Equal(t, types.NoAnswer, out.Answers[1].Answer.String())
	assert.Equal(t, 2, out.NullAnswers)
	assert.Equal(t, 2, out.Sources[types.SourceNone])
}

func TestRun_ZeroComparisonCountsAsEmpty(t *testing.T) {
	res := &fakeResolver{authors: map[string]resolve.Attributes{
		"a": {"hIndex": "0"},
		"b": {"hIndex": "0"},
	}}
	out, err := newTestPipeline(res, &fakeEngine{}).Run(context.Background(), rawRecords(t,
		`[{"id":"c","question":"higher hindex?","author_dblp_uri":["a","b"]}]`))
	require.NoError(t, err)
	assert.Equal(t, types.NoAnswer, out.Answers[0].Answer.String())
	assert.Equal(t, 1, out.NullAnswers)
}

func TestRun_FailedRecordsAreSkipped(t *testing.T) {
	eng := &fakeEngine{answer: "ok"}
	out, err := newTestPipeline(&fakeResolver{}, eng).Run(context.Background(), rawRecords(t, `[
		{"id":"good1","question":"q","context":"c"},
		{"id":"bad1","question":"q","author_dblp_uri":[1,2]},
		{"id":"bad2"},
		"not an object",
		{"id":"good2","question":"q","context":"c"}
	]`))
	require.NoError(t, err)

	var ids []string
	for _, a := range out.Answers {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"good1", "good2"}, ids)
	require.Len(t, out.Failed, 3)
	assert.Equal(t, "bad1", out.Failed[0].ID)
	assert.Equal(t, "bad2", out.Failed[1].ID)
	assert.True(t, errors.Is(out.Failed[1].Err, types.ErrMalformedRecord))
	assert.Equal(t, 5, out.Total())
	assert.Len(t, out.WithContext, 2)
}

func TestRun_EngineErrorAndPanic(t *testing.T) {
	records := rawRecords(t, `[{"id":"q1","question":"q","context":"c"}]`)

	out, err := newTestPipeline(&fakeResolver{}, &fakeEngine{err: errors.New("model offline")}).Run(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, out.Failed, 1)
	assert.Contains(t, out.Failed[0].Err.Error(), "model offline")

	out, err = newTestPipeline(&fakeResolver{}, &fakeEngine{panic: true}).Run(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, out.Failed, 1)
	assert.Contains(t, out.Failed[0].Err.Error(), "engine exploded")
	assert.Empty(t, out.Answers)
}

func TestRun_RecordsTraces(t *testing.T) {
	rec := &memRecorder{}
	p := newTestPipeline(&fakeResolver{}, &fakeEngine{answer: "span"})
	p.Recorder = rec

	_, err := p.Run(context.Background(), rawRecords(t, `[{"id":7,"question":"q","context":"c"}]`))
	require.NoError(t, err)
	require.Len(t, rec.traces, 1)
	assert.Equal(t, "7", rec.traces[0].ID)
	assert.Equal(t, types.SourceModel, rec.traces[0].Source)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out, err := newTestPipeline(&fakeResolver{}, &fakeEngine{}).Run(ctx, rawRecords(t, `[{"id":"q","question":"q"}]`))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.Answers)
}

func TestWriteSummary(t *testing.T) {
	out := Output{
		Answers:     make([]types.AnswerRecord, 3),
		NullAnswers: 1,
		Sources:     map[types.Source]int{types.SourceGraph: 2, types.SourceNone: 1},
		Failed:      []Failure{{ID: "问题-1", Err: errors.New("boom")}},
	}
	var sb strings.Builder
	out.WriteSummary(&sb)
	s := sb.String()

	assert.Contains(t, s, "graph      2")
	assert.Contains(t, s, "total      4")
	assert.Contains(t, s, "问题-1  boom")
}
