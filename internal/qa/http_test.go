// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package qa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholarqa/internal/httputil"
	"github.com/pdiddy/scholarqa/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

func TestHTTPEngine_Answer(t *testing.T) {
	var got inferenceRequest
	var auth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"score":0.91,"start":10,"end":15,"answer":"Paris"}`)
	}))
	defer ts.Close()

	e := NewHTTPEngine(types.QAConfig{Endpoint: ts.URL, APIKey: "hf_token"})
	res, err := e.Answer(context.Background(), "Where?", "It is in Paris.")
	require.NoError(t, err)

	assert.Equal(t, "Paris", res.Answer)
	assert.InDelta(t, 0.91, res.Score, 1e-9)
	assert.Equal(t, 10, res.Start)
	assert.Equal(t, "Bearer hf_token", auth)
	assert.Equal(t, "Where?", got.Inputs.Question)
	assert.Equal(t, "It is in Paris.", got.Inputs.Context)
}

func TestHTTPEngine_ListResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"score":0.5,"start":0,"end":3,"answer":"top"},{"score":0.1,"start":4,"end":7,"answer":"low"}]`)
	}))
	defer ts.Close()

	res, err := NewHTTPEngine(types.QAConfig{Endpoint: ts.URL}).Answer(context.Background(), "q", "top low")
	require.NoError(t, err)
	assert.Equal(t, "top", res.Answer)
}

func TestHTTPEngine_RetriesWhileModelLoads(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req inferenceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ctx", req.Inputs.Context)
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"error":"Model is currently loading"}`)
			return
		}
		fmt.Fprint(w, `{"answer":"ok","score":1,"start":0,"end":2}`)
	}))
	defer ts.Close()

	res, err := NewHTTPEngine(types.QAConfig{Endpoint: ts.URL}).Answer(context.Background(), "q", "ctx")
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Answer)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestHTTPEngine_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"Invalid token"}`)
	}))
	defer ts.Close()

	_, err := NewHTTPEngine(types.QAConfig{Endpoint: ts.URL}).Answer(context.Background(), "q", "c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 401")
	assert.Contains(t, err.Error(), "Invalid token")
}

func TestHTTPEngine_EmptyContextSkipsRequest(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("unexpected request")
	}))
	defer ts.Close()

	res, err := NewHTTPEngine(types.QAConfig{Endpoint: ts.URL}).Answer(context.Background(), "q", "  ")
	require.NoError(t, err)
	assert.Empty(t, res.Answer)
}

func TestNewHTTPEngine_DefaultEndpoint(t *testing.T) {
	e := NewHTTPEngine(types.QAConfig{})
	assert.Equal(t, DefaultInferenceEndpoint, e.Endpoint)
	assert.True(t, strings.HasPrefix(e.Endpoint, "https://router.huggingface.co/hf-inference/models/"))
	assert.Equal(t, "http", e.Name())
}
