package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/productivity-app/backend/internal/application/adapter"
	"github.com/productivity-app/backend/internal/domain/valueobject"
)

const defaultGeminiModel = "gemini-1.5-flash"

// GeminiService implements adapter.CheckpointSuggestionService using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
	timeout   time.Duration
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey, modelName string, timeout time.Duration) *GeminiService {
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
		timeout:   timeout,
	}
}

// IsAvailable checks if the Gemini service is properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Suggest asks Gemini for checkpoint proposals for the goal.
func (s *GeminiService) Suggest(ctx context.Context, request *adapter.SuggestionRequest) ([]*adapter.CheckpointSuggestion, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.4)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildSuggestionPrompt(request)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	suggestions, err := parseSuggestions(text, request.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return suggestions, nil
}

func buildSuggestionPrompt(request *adapter.SuggestionRequest) string {
	var sb strings.Builder
	g := request.Goal

	sb.WriteString("You help people break personal goals into concrete checkpoints.\n\n")
	sb.WriteString("GOAL:\n")
	sb.WriteString(fmt.Sprintf("- Title: %q\n", g.Title))
	if g.Description != "" {
		sb.WriteString(fmt.Sprintf("- Description: %q\n", g.Description))
	}
	if !g.StartDate.IsZero() {
		sb.WriteString(fmt.Sprintf("- Start date: %s\n", g.StartDate))
	}
	if !g.EndDate.IsZero() {
		sb.WriteString(fmt.Sprintf("- End date: %s\n", g.EndDate))
	}

	sb.WriteString("\nEXISTING CHECKPOINTS:\n")
	if len(request.Existing) == 0 {
		sb.WriteString("(none)\n")
	}
	for _, cp := range request.Existing {
		sb.WriteString(fmt.Sprintf("- %q due %s (%s)\n", cp.Title, cp.DueDate, cp.Status))
	}

	sb.WriteString(fmt.Sprintf(`
Propose at most %d new checkpoints that do not repeat the existing ones.
Every dueDate must fall between the goal's start and end dates and use the format YYYY-MM-DD.

Respond with a JSON array only, no additional text:
[{"title": "short imperative title", "description": "one sentence", "dueDate": "YYYY-MM-DD"}]
`, request.Limit))

	return sb.String()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			return string(text), nil
		}
	}
	return "", fmt.Errorf("no text content in response")
}

// geminiSuggestion represents one raw proposal from Gemini.
type geminiSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
}

// parseSuggestions decodes the model output, skipping proposals without a title
// or with an unparseable date.
func parseSuggestions(text string, limit int) ([]*adapter.CheckpointSuggestion, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var raw []geminiSuggestion
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}

	results := make([]*adapter.CheckpointSuggestion, 0, len(raw))
	for _, r := range raw {
		if limit > 0 && len(results) == limit {
			break
		}
		title := strings.TrimSpace(r.Title)
		if title == "" {
			continue
		}
		due, err := valueobject.ParseDate(strings.TrimSpace(r.DueDate))
		if err != nil {
			continue
		}
		results = append(results, &adapter.CheckpointSuggestion{
			Title:       title,
			Description: strings.TrimSpace(r.Description),
			DueDate:     due,
		})
	}
	return results, nil
}
