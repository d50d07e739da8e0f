// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package qa

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleContext = `Ada Lovelace was an English mathematician. She is chiefly known for her work on Charles Babbage's Analytical Engine.
Her notes contain what is considered the first computer program! She died in London in 1852.`

func TestLexicalEngine_PicksBestSentence(t *testing.T) {
	e := NewLexicalEngine()

	tests := []struct {
		question string
		want     string
	}{
		{"What is she chiefly known for?", "She is chiefly known for her work on Charles Babbage's Analytical Engine."},
		{"Where has she died?", "She died in London in 1852."},
		{"What did her notes contain?", "Her notes contain what is considered the first computer program!"},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			res, err := e.Answer(context.Background(), tt.question, sampleContext)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Answer)
			assert.Equal(t, tt.want, string([]rune(sampleContext)[res.Start:res.End]))
			assert.Greater(t, res.Score, 0.0)
			assert.LessOrEqual(t, res.Score, 1.0)
		})
	}
}

func TestLexicalEngine_EmptyAnswers(t *testing.T) {
	e := NewLexicalEngine()

	res, err := e.Answer(context.Background(), "What is the hindex?", "")
	require.NoError(t, err)
	assert.Empty(t, res.Answer)
	assert.Equal(t, -1, res.Start)

	res, err = e.Answer(context.Background(), "What is the hindex?", "Nothing relevant here.")
	require.NoError(t, err)
	assert.Empty(t, res.Answer)

	res, err = e.Answer(context.Background(), "what is the", sampleContext)
	require.NoError(t, err)
	assert.Empty(t, res.Answer, "stopword-only questions have no terms")
}

func TestLexicalEngine_KeepsMultibyteText(t *testing.T) {
	passage := "Die Universität liegt in Leipzig. Sie wurde 1409 gegründet à"
	res, err := NewLexicalEngine().Answer(context.Background(), "Wann wurde sie gegründet?", passage)
	require.NoError(t, err)
	assert.Equal(t, "Sie wurde 1409 gegründet à", res.Answer)
	assert.Equal(t, 34, res.Start, "offsets count characters, not bytes")
	assert.Equal(t, res.Answer, string([]rune(passage)[res.Start:res.End]))
}

func TestLexicalEngine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLexicalEngine().Answer(ctx, "q", sampleContext)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSentences(t *testing.T) {
	s := "First one. Second? Third!\nFourth line\n\n  Fifth v1.2 stays."
	var got []string
	for _, sp := range sentences(s) {
		got = append(got, s[sp.start:sp.end])
	}
	assert.Equal(t, []string{"First one.", "Second?", "Third!", "Fourth line", "Fifth v1.2 stays."}, got)
}
