package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// geminiMaxScore is the upper bound of the score range the Gemini evaluator is
// asked to produce. The remote delegate defines its own range; this one is
// fixed so results are comparable within a session.
const geminiMaxScore = 10.0

type geminiEvaluator struct {
	model *genai.GenerativeModel
}

// NewGeminiEvaluator scores descriptive answers directly with Gemini instead
// of the remote delegate. Used when EVALUATOR_BASE_URL is unset but a
// GEMINI_API_KEY is available.
func NewGeminiEvaluator(apiKey string) (EvaluatorService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiEvaluator{model: client.GenerativeModel("gemini-1.5-flash")}, nil
}

func (e *geminiEvaluator) Evaluate(ctx context.Context, req EvaluationRequest) (*EvaluationResult, error) {
	var prompt strings.Builder
	prompt.WriteString("You are a strict examiner grading a candidate's written answer in a technical assessment.\n\n")
	prompt.WriteString(fmt.Sprintf("Test type: %s\nDifficulty: %s\n\n", req.TestType, req.Difficulty))
	prompt.WriteString("Question:\n---\n")
	prompt.WriteString(req.Question)
	prompt.WriteString("\n---\n\nCandidate's answer:\n---\n")
	prompt.WriteString(req.Answer)
	prompt.WriteString("\n---\n\n")
	prompt.WriteString(fmt.Sprintf(`Grade the answer for correctness, completeness and clarity.

Format your response strictly as:
Score: [a number from 0.0 to %.1f]
Feedback:
[concise feedback explaining the score, naming concrete mistakes or gaps]
`, geminiMaxScore))

	resp, err := e.model.GenerateContent(ctx, genai.Text(prompt.String()))
	if err != nil {
		log.Error().Err(err).Str("testType", req.TestType).Msg("Gemini API error during evaluation")
		return nil, fmt.Errorf("gemini evaluation failed: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no content")
	}

	var raw strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			raw.WriteString(string(txt))
		}
	}
	if raw.Len() == 0 {
		return nil, fmt.Errorf("gemini returned no text content")
	}

	score, feedback, err := parseScoreAndFeedback(raw.String())
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw.String()).Msg("Failed to parse Gemini evaluation response")
		return nil, err
	}

	if score > geminiMaxScore {
		score = geminiMaxScore
	}
	if score < 0 {
		score = 0
	}
	return &EvaluationResult{Score: score, Feedback: feedback}, nil
}

// parseScoreAndFeedback extracts the "Score:" line and the "Feedback:" block
// from the model's response.
func parseScoreAndFeedback(raw string) (float64, string, error) {
	const scorePrefix = "Score:"
	const feedbackPrefix = "Feedback:"

	scoreIdx := strings.Index(raw, scorePrefix)
	if scoreIdx == -1 {
		return 0, "", fmt.Errorf("response does not contain a 'Score:' line")
	}

	rest := raw[scoreIdx+len(scorePrefix):]
	scoreLine := rest
	if nl := strings.Index(rest, "\n"); nl != -1 {
		scoreLine = rest[:nl]
	}
	fields := strings.Fields(scoreLine)
	if len(fields) == 0 {
		return 0, "", fmt.Errorf("empty score value in response")
	}
	score, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, "", fmt.Errorf("could not parse score value %q: %w", fields[0], err)
	}

	feedback := ""
	if fbIdx := strings.Index(raw, feedbackPrefix); fbIdx != -1 && fbIdx > scoreIdx {
		feedback = strings.TrimSpace(raw[fbIdx+len(feedbackPrefix):])
	}
	return score, feedback, nil
}
