// Package commentary integrates with Google's Gemini API to generate
// free-text match analysis for a computed prediction. It is the optional,
// highest-latency collaborator in the prediction flow: every call is bounded
// by the caller's context and a failure here never affects the numbers.
package commentary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/footballmoneyball/moneyball/internal/logger"
	"github.com/footballmoneyball/moneyball/pkg/predict"
)

const defaultGeminiURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"

// GeminiClient implements predict.CommentaryProvider against the Gemini
// generateContent endpoint.
type GeminiClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

var _ predict.CommentaryProvider = (*GeminiClient)(nil)

func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		baseURL: defaultGeminiURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewGeminiClientWithURL overrides the endpoint; used by tests.
func NewGeminiClientWithURL(apiKey, baseURL string) *GeminiClient {
	c := NewGeminiClient(apiKey)
	c.baseURL = baseURL
	return c
}

// Request/response shapes for the generateContent call

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// MatchAnalysis asks Gemini for a short expert write-up of the prediction.
// Transient upstream failures are retried once; all failures come back
// wrapped in predict.ErrCommentaryUnavailable so the orchestrator can
// substitute its fallback string.
func (g *GeminiClient) MatchAnalysis(ctx context.Context, req predict.AnalysisRequest) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: buildPrompt(req)}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 2048,
			TopP:            0.95,
			TopK:            40,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", predict.ErrCommentaryUnavailable, err)
	}

	logger.Info("Calling Gemini API for match:", req.HomeTeam.Name, "vs", req.AwayTeam.Name)

	text, err := g.generate(ctx, payload)
	if err != nil && isTransient(err) {
		logger.Warn("Gemini call failed, retrying once", err)
		text, err = g.generate(ctx, payload)
	}
	if err != nil {
		return "", err
	}
	return text, nil
}

func (g *GeminiClient) generate(ctx context.Context, payload []byte) (string, error) {
	url := g.baseURL + "?key=" + g.apiKey

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", predict.ErrCommentaryUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", predict.ErrCommentaryUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &statusError{code: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", predict.ErrCommentaryUnavailable, err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: malformed response: %v", predict.ErrCommentaryUnavailable, err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: response carried no candidates", predict.ErrCommentaryUnavailable)
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// statusError marks non-200 upstream responses so the retry logic can tell
// transient server trouble apart from everything else.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("commentary unavailable: gemini returned status %d", e.code)
}

func (e *statusError) Unwrap() error {
	return predict.ErrCommentaryUnavailable
}

func isTransient(err error) bool {
	if se, ok := err.(*statusError); ok {
		return se.code == http.StatusTooManyRequests || se.code >= 500
	}
	return false
}

// buildPrompt renders the prediction data into the analysis prompt.
func buildPrompt(req predict.AnalysisRequest) string {
	return fmt.Sprintf(
		"You are a football analyst. Write EXACTLY 4 complete sentences analyzing this match. "+
			"Do NOT stop mid-sentence.\n\n"+
			"%s (Home, Form: %.1f pts, xG: %.2f) vs %s (Away, Form: %.1f pts, xG: %.2f)\n"+
			"Prediction: Home %.1f%%, Draw %.1f%%, Away %.1f%%\n"+
			"Expected: %.2f-%.2f\n\n"+
			"Write 4 complete sentences covering: 1) main advantage, 2) key stats, 3) risks, 4) likely outcome.",
		req.HomeTeam.Name,
		req.HomeForm.FormPoints,
		req.HomeForm.AvgXg,
		req.AwayTeam.Name,
		req.AwayForm.FormPoints,
		req.AwayForm.AvgXg,
		req.Probabilities.HomeWin*100,
		req.Probabilities.Draw*100,
		req.Probabilities.AwayWin*100,
		req.HomeXg,
		req.AwayXg,
	)
}
