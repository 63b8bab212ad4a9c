package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// EvaluationRequest is the payload handed to the evaluation delegate for a
// free-text answer.
type EvaluationRequest struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	TestType   string `json:"testType"`
	Difficulty string `json:"difficulty"`
}

type EvaluationResult struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// EvaluatorService scores a free-text answer. Implementations: the remote HTTP
// delegate, the Gemini-backed evaluator, and a disabled stub used when neither
// is configured.
type EvaluatorService interface {
	Evaluate(ctx context.Context, req EvaluationRequest) (*EvaluationResult, error)
}

type httpEvaluator struct {
	baseURL string
	client  *http.Client
}

// NewHTTPEvaluator talks to the external evaluation service at
// POST {baseURL}/evaluate.
func NewHTTPEvaluator(baseURL string) EvaluatorService {
	return &httpEvaluator{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (e *httpEvaluator) Evaluate(ctx context.Context, req EvaluationRequest) (*EvaluationResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode evaluation payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/evaluate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build evaluation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("evaluation delegate call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("evaluation delegate returned status %d", resp.StatusCode)
	}

	var result EvaluationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode evaluation response: %w", err)
	}
	return &result, nil
}

type disabledEvaluator struct{}

// NewDisabledEvaluator is used when no delegate URL and no Gemini key are
// configured. Every evaluation fails, which marks responses FAILED rather than
// leaving them PENDING forever.
func NewDisabledEvaluator() EvaluatorService {
	log.Warn().Msg("No evaluator configured. Descriptive answers will be marked FAILED.")
	return &disabledEvaluator{}
}

func (e *disabledEvaluator) Evaluate(ctx context.Context, req EvaluationRequest) (*EvaluationResult, error) {
	return nil, ErrEvaluatorUnavailable
}
