package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// evaluateWindow caps how many results are shown to the judge.
const evaluateWindow = 10

// Evaluator implements ai.Evaluator using an OpenAI-compatible chat API.
type Evaluator struct {
	client llms.Model
	logger *slog.Logger
}

// newEvaluator is an internal constructor that returns the concrete type.
func newEvaluator(config *ai.Config) (*Evaluator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &Evaluator{
		client: client,
		logger: slog.Default().With("component", "openai-evaluator"),
	}, nil
}

// NewEvaluator creates a new evaluator using the provided configuration.
//
// Returns ai.Evaluator interface to enforce abstraction.
func NewEvaluator(config *ai.Config) (ai.Evaluator, error) {
	return newEvaluator(config)
}

// Evaluate submits the final results to the quality judge and returns its
// structured report. Advisory only: the caller logs and moves on when
// this fails.
func (e *Evaluator) Evaluate(ctx context.Context, query string, results []*core.Candidate, intent core.Intent) (*ai.Evaluation, error) {
	if len(results) == 0 {
		return &ai.Evaluation{
			Feedback: "No results returned",
			Issues:   []string{"empty_results"},
		}, nil
	}
	if len(results) > evaluateWindow {
		results = results[:evaluateWindow]
	}

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(evaluateSystemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(buildEvaluatePrompt(query, intent, results))},
		},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.1), llms.WithJSONMode())
	if err != nil {
		e.logger.Error("evaluate call failed", "err", err)
		return nil, err
	}
	if len(response.Choices) < 1 {
		return nil, fmt.Errorf("evaluator returned no choices")
	}

	responseText := cleanResponse(response.Choices[0].Content)

	var evaluation ai.Evaluation
	if err := json.Unmarshal([]byte(responseText), &evaluation); err != nil {
		e.logger.Warn("error parsing evaluation response", "response", responseText, "err", err)
		return nil, err
	}

	return &evaluation, nil
}
