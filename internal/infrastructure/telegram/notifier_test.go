package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPublishDigest(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/bottoken123/sendMessage") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.PostForm.Get("chat_id") != "42" {
			t.Errorf("unexpected chat_id: %s", r.PostForm.Get("chat_id"))
		}
		if !strings.Contains(r.PostForm.Get("text"), "Insights for CBE") {
			t.Errorf("digest text missing: %s", r.PostForm.Get("text"))
		}
	}))
	defer server.Close()

	n := NewNotifier("token123", "42")
	n.baseURL = server.URL

	if err := n.PublishDigest(context.Background(), "Insights for CBE\n..."); err != nil {
		t.Fatalf("PublishDigest error: %v", err)
	}
}

func TestPublishDigestNonOKStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusUnauthorized)
	}))
	defer server.Close()

	n := NewNotifier("bad", "42")
	n.baseURL = server.URL

	if err := n.PublishDigest(context.Background(), "digest"); err == nil {
		t.Fatalf("expected error for 401 response")
	}
}

func TestPublishDigestMisconfigured(t *testing.T) {
	t.Parallel()

	n := NewNotifier("", "")
	if err := n.PublishDigest(context.Background(), "digest"); err == nil {
		t.Fatalf("expected error for missing credentials")
	}
}
