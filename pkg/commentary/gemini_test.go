package commentary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/footballmoneyball/moneyball/pkg/predict"
)

func analysisFixture() predict.AnalysisRequest {
	return predict.AnalysisRequest{
		HomeTeam: &predict.Team{ID: "arsenal", Name: "Arsenal"},
		AwayTeam: &predict.Team{ID: "spurs", Name: "Spurs"},
		HomeForm: predict.TeamForm{AvgXg: 2.1, FormPoints: 22},
		AwayForm: predict.TeamForm{AvgXg: 1.4, FormPoints: 11},
		HomeXg:   2.45,
		AwayXg:   1.10,
		Probabilities: predict.OutcomeProbabilities{
			HomeWin: 0.58, Draw: 0.24, AwayWin: 0.18,
		},
	}
}

func geminiReply(text string) string {
	quoted, _ := json.Marshal(text)
	return `{"candidates":[{"content":{"parts":[{"text":` + string(quoted) + `}]}}]}`
}

func TestMatchAnalysisSuccess(t *testing.T) {
	var gotBody geminiRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(geminiReply("Arsenal hold the edge through superior chance creation.")))
	}))
	defer server.Close()

	client := NewGeminiClientWithURL("test-key", server.URL)

	text, err := client.MatchAnalysis(context.Background(), analysisFixture())
	require.NoError(t, err)
	assert.Equal(t, "Arsenal hold the edge through superior chance creation.", text)

	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	prompt := gotBody.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "Arsenal")
	assert.Contains(t, prompt, "Spurs")
	assert.True(t, strings.Contains(prompt, "58.0%"), "prompt carries percentages: %s", prompt)
	assert.Equal(t, 2048, gotBody.GenerationConfig.MaxOutputTokens)
}

func TestMatchAnalysisRetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(geminiReply("Second attempt succeeds.")))
	}))
	defer server.Close()

	client := NewGeminiClientWithURL("test-key", server.URL)

	text, err := client.MatchAnalysis(context.Background(), analysisFixture())
	require.NoError(t, err)
	assert.Equal(t, "Second attempt succeeds.", text)
	assert.Equal(t, int32(2), calls.Load())
}

func TestMatchAnalysisPersistentFailure(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewGeminiClientWithURL("test-key", server.URL)

	_, err := client.MatchAnalysis(context.Background(), analysisFixture())
	assert.ErrorIs(t, err, predict.ErrCommentaryUnavailable)
	assert.Equal(t, int32(2), calls.Load(), "transient failures are retried exactly once")
}

func TestMatchAnalysisClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewGeminiClientWithURL("test-key", server.URL)

	_, err := client.MatchAnalysis(context.Background(), analysisFixture())
	assert.ErrorIs(t, err, predict.ErrCommentaryUnavailable)
	assert.Equal(t, int32(1), calls.Load())
}

func TestMatchAnalysisEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := NewGeminiClientWithURL("test-key", server.URL)

	_, err := client.MatchAnalysis(context.Background(), analysisFixture())
	assert.ErrorIs(t, err, predict.ErrCommentaryUnavailable)
}

func TestMatchAnalysisContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewGeminiClientWithURL("test-key", server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.MatchAnalysis(ctx, analysisFixture())
	assert.Error(t, err)
}
