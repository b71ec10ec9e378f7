package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/CodeCary80/obviousplan/internal/types"
)

// GeminiProvider implements TipDrafter using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Gemini 2.0 Flash for low latency and cost efficiency.
	model := client.GenerativeModel("gemini-2.0-flash")

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"

	// Tips should read naturally, so allow a little creativity.
	model.SetTemperature(0.7)

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// DraftTips asks the model for tip candidates covering the tag combination.
func (p *GeminiProvider) DraftTips(ctx context.Context, activityType string, budget types.BudgetTag, energy types.EnergyLevel, count int) ([]DraftedTip, error) {
	if count <= 0 {
		count = 3
	}

	prompt := buildTipPrompt(activityType, budget, energy, count)

	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini")
	}

	// Extract text from the response parts.
	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	cleanJSON := cleanJSONString(responseText.String())

	var drafts []DraftedTip
	if err := json.Unmarshal([]byte(cleanJSON), &drafts); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleanJSON)
	}
	if len(drafts) > count {
		drafts = drafts[:count]
	}
	return drafts, nil
}

// buildTipPrompt constructs the instructions for the AI.
func buildTipPrompt(activityType string, budget types.BudgetTag, energy types.EnergyLevel, count int) string {
	return fmt.Sprintf(`Role: You write short practical tips for an evening-planning app.
A plan pairs one restaurant with one activity; each tip is shown alongside the plan.

Write %d tip candidates for plans with:
- Activity type: %s
- Budget band: %s (more $ means pricier)
- Energy level: %s

RULES:
1. One or two sentences each, friendly but concrete (logistics, timing, what to bring).
2. No emojis, no exclamation spam, no venue names.
3. Tips must make sense for the budget band and energy level.

Respond with a JSON array of objects: [{"text": "...", "rationale": "..."}].`,
		count, activityType, string(budget), string(energy))
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
