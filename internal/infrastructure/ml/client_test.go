package ml

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/classify" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected auth header: %s", got)
		}

		var payload struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if payload.Text != "slow transactions" {
			t.Errorf("unexpected text: %q", payload.Text)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{"label": "NEGATIVE", "score": 0.97})
	}))
	defer server.Close()

	c := NewClient(server.URL, "secret")
	label, score, err := c.Classify(context.Background(), "slow transactions")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if label != "NEGATIVE" || score != 0.97 {
		t.Fatalf("unexpected result: %s %f", label, score)
	}
}

func TestClassifyRejectsMissingLabel(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "")
	if _, _, err := c.Classify(context.Background(), "fine"); err == nil {
		t.Fatalf("expected error for response without label")
	}
}

func TestClassifyNonOKStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewClient(server.URL, "")
	if _, _, err := c.Classify(context.Background(), "fine"); err == nil {
		t.Fatalf("expected error for 503 response")
	}
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var payload struct {
			Text   string `json:"text"`
			Target string `json:"target"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if payload.Target != "en" {
			t.Errorf("unexpected target: %q", payload.Target)
		}

		_ = json.NewEncoder(w).Encode(map[string]string{"translation": "the app is broken"})
	}))
	defer server.Close()

	tr := NewTranslator(server.URL, "")
	got, err := tr.Translate(context.Background(), "приложение сломано", "en")
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if got != "the app is broken" {
		t.Fatalf("unexpected translation: %q", got)
	}
}

func TestTranslateRejectsEmptyResult(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"translation": ""}`))
	}))
	defer server.Close()

	tr := NewTranslator(server.URL, "")
	if _, err := tr.Translate(context.Background(), "bonjour", "en"); err == nil {
		t.Fatalf("expected error for empty translation")
	}
}
