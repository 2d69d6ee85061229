package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"ReviewInsights/internal/config"
	"ReviewInsights/internal/domain"
	"ReviewInsights/internal/ports"
)

// Recommender turns per-bank insights into improvement recommendations
// via an OpenAI-compatible chat API.
type Recommender struct {
	client       *openai.Client
	model        string
	systemPrompt string
}

var _ ports.Recommender = (*Recommender)(nil)

// NewRecommender builds a client from configuration.
func NewRecommender(cfg config.OpenAIConfig) *Recommender {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Recommender{
		client:       openai.NewClientWithConfig(clientCfg),
		model:        cfg.Model,
		systemPrompt: safePrompt(cfg.SystemPrompt),
	}
}

// Recommend posts the insight summary as a user message and returns the
// model's recommendations.
func (r *Recommender) Recommend(ctx context.Context, insights []domain.BankInsight) (string, error) {
	if r == nil || r.client == nil {
		return "", fmt.Errorf("recommender is not configured")
	}
	if r.model == "" {
		return "", fmt.Errorf("recommender model is not configured")
	}
	if len(insights) == 0 {
		return "", fmt.Errorf("no insights to recommend on")
	}

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: r.systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(insights)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("chat completion returned empty content")
	}
	return content, nil
}

func buildPrompt(insights []domain.BankInsight) string {
	var b strings.Builder
	b.WriteString("Suggest concrete app improvements for each bank based on these review insights.\n\n")
	for _, ins := range insights {
		fmt.Fprintf(&b, "Bank: %s\n", ins.Bank)
		b.WriteString("Satisfaction drivers:\n")
		for _, tc := range ins.TopDrivers {
			fmt.Fprintf(&b, "- %s (%d mentions)\n", tc.Theme, tc.Count)
		}
		b.WriteString("Pain points:\n")
		for _, tc := range ins.TopPainPoints {
			fmt.Fprintf(&b, "- %s (%d mentions)\n", tc.Theme, tc.Count)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func safePrompt(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "You turn mobile banking review insights into concrete product recommendations."
	}
	return prompt
}
