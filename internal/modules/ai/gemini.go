package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"homeservices/internal/domain"
)

type GeminiSuggester struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiSuggester(ctx context.Context, apiKey, model string) (*GeminiSuggester, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	m := client.GenerativeModel(model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.2)

	return &GeminiSuggester{client: client, model: m}, nil
}

func (g *GeminiSuggester) Close() error {
	return g.client.Close()
}

func (g *GeminiSuggester) Suggest(ctx context.Context, text, lang string, categories []domain.CategoryItem) (*Suggestion, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(buildPrompt(text, lang, categories)))
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return parseSuggestion(sb.String())
}

func buildPrompt(text, lang string, categories []domain.CategoryItem) string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, fmt.Sprintf("%s (base price %d)", c.Name, c.BasePrice))
	}
	if lang == "" {
		lang = "en"
	}

	return fmt.Sprintf(`You classify home-service requests.
Categories: %s.
Pick exactly one category name from the list for the request below and estimate a price range in the same
minor currency units as the base prices. Write the reasoning in language %q.
Reply with JSON only: {"category": string, "reasoning": string, "estimatedPriceRange": {"min": int, "max": int}}

Request: %s`, strings.Join(names, "; "), lang, text)
}

// parseSuggestion accepts raw JSON, optionally wrapped in a markdown code fence.
func parseSuggestion(raw string) (*Suggestion, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var s Suggestion
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &s); err != nil {
		return nil, fmt.Errorf("decode suggestion: %w", err)
	}
	if s.Category == "" {
		return nil, fmt.Errorf("suggestion has no category")
	}
	return &s, nil
}
