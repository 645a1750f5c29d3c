package adapters

import (
	"context"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"

	"github.com/productivity-app/backend/internal/application/adapter"
	"github.com/productivity-app/backend/internal/domain/entity"
	"github.com/productivity-app/backend/internal/domain/valueobject"
)

func TestParseSuggestions(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		limit     int
		wantCount int
		wantErr   bool
	}{
		{
			name:      "plain array",
			text:      `[{"title":"Run 10k","description":"Easy pace","dueDate":"2026-02-01"}]`,
			wantCount: 1,
		},
		{
			name:      "markdown fenced",
			text:      "```json\n[{\"title\":\"Run 10k\",\"dueDate\":\"2026-02-01\"}]\n```",
			wantCount: 1,
		},
		{
			name:      "skips blank titles and bad dates",
			text:      `[{"title":" ","dueDate":"2026-02-01"},{"title":"Run","dueDate":"next week"},{"title":"Rest","dueDate":"2026-02-02"}]`,
			wantCount: 1,
		},
		{
			name:      "respects limit",
			text:      `[{"title":"a","dueDate":"2026-02-01"},{"title":"b","dueDate":"2026-02-02"},{"title":"c","dueDate":"2026-02-03"}]`,
			limit:     2,
			wantCount: 2,
		},
		{
			name:    "invalid json",
			text:    "I think you should run more",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSuggestions(tt.text, tt.limit)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSuggestions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != tt.wantCount {
				t.Errorf("expected %d suggestions, got %d", tt.wantCount, len(got))
			}
		})
	}
}

func TestBuildSuggestionPrompt(t *testing.T) {
	g := entity.NewGoal(entity.NewUser("ana", "ana@example.com", "h").ID, "Marathon", "First 42k",
		valueobject.MustParseDate("2026-01-01"), valueobject.MustParseDate("2026-06-30"))
	existing := entity.NewCheckpoint(g.ID, "Buy shoes", "", valueobject.MustParseDate("2026-01-05"))

	prompt := buildSuggestionPrompt(&adapter.SuggestionRequest{
		Goal:     g,
		Existing: []*entity.Checkpoint{existing},
		Limit:    5,
	})

	for _, want := range []string{`"Marathon"`, "2026-01-01", "2026-06-30", `"Buy shoes"`, "at most 5"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestResponseText(t *testing.T) {
	if _, err := responseText(nil); err == nil {
		t.Error("expected error for nil response")
	}

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("[]")}},
		}},
	}
	text, err := responseText(resp)
	if err != nil || text != "[]" {
		t.Errorf("responseText() = %q, %v", text, err)
	}
}

func TestGeminiService_Unconfigured(t *testing.T) {
	svc := NewGeminiService("", "", 0)
	if svc.IsAvailable() {
		t.Fatal("expected service to be unavailable without api key")
	}
	if _, err := svc.Suggest(context.Background(), &adapter.SuggestionRequest{}); err == nil {
		t.Error("expected error when unconfigured")
	}
}
