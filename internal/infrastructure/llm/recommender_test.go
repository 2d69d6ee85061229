package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ReviewInsights/internal/config"
	"ReviewInsights/internal/domain"
)

func sampleInsights() []domain.BankInsight {
	return []domain.BankInsight{
		{
			Bank:          "CBE",
			TopDrivers:    []domain.ThemeCount{{Theme: "User Experience", Count: 12}},
			TopPainPoints: []domain.ThemeCount{{Theme: "Account Access Issues", Count: 30}},
		},
	}
}

func TestRecommend(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "gpt-4o-mini" {
			t.Errorf("unexpected model: %s", req.Model)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
		if !strings.Contains(req.Messages[1].Content, "Account Access Issues (30 mentions)") {
			t.Errorf("prompt missing pain point:\n%s", req.Messages[1].Content)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "Fix the login flow first."}},
			},
		})
	}))
	defer server.Close()

	rec := NewRecommender(config.OpenAIConfig{
		BaseURL: server.URL + "/v1",
		Model:   "gpt-4o-mini",
		APIKey:  "test-key",
	})

	got, err := rec.Recommend(context.Background(), sampleInsights())
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	if got != "Fix the login flow first." {
		t.Fatalf("unexpected recommendation: %q", got)
	}
}

func TestRecommendRejectsEmptyInsights(t *testing.T) {
	t.Parallel()

	rec := NewRecommender(config.OpenAIConfig{Model: "gpt-4o-mini", APIKey: "k"})
	if _, err := rec.Recommend(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty insights")
	}
}

func TestBuildPromptMentionsEveryBank(t *testing.T) {
	t.Parallel()

	insights := append(sampleInsights(), domain.BankInsight{Bank: "BOA"})
	prompt := buildPrompt(insights)

	for _, bank := range []string{"CBE", "BOA"} {
		if !strings.Contains(prompt, "Bank: "+bank) {
			t.Fatalf("prompt missing bank %s:\n%s", bank, prompt)
		}
	}
}
