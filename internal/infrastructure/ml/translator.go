package ml

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ReviewInsights/internal/ports"
)

// Translator calls an external machine-translation service.
type Translator struct {
	client Client
}

var _ ports.Translator = (*Translator)(nil)

// NewTranslator creates a reusable HTTP translator client.
func NewTranslator(endpoint, apiKey string) *Translator {
	return &Translator{
		client: Client{
			endpoint: endpoint,
			apiKey:   apiKey,
			http:     &http.Client{Timeout: 30 * time.Second},
		},
	}
}

// Translate requests a translation of text into the target language.
func (t *Translator) Translate(ctx context.Context, text, target string) (string, error) {
	payload := map[string]any{
		"text":   text,
		"target": target,
	}

	var resp struct {
		Translation string `json:"translation"`
	}

	if err := t.client.post(ctx, "/translate", payload, &resp); err != nil {
		return "", err
	}
	if resp.Translation == "" {
		return "", fmt.Errorf("translation service returned empty text")
	}

	return resp.Translation, nil
}
