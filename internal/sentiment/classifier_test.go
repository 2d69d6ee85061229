package sentiment

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"ReviewInsights/internal/domain"
	"ReviewInsights/internal/ports"
)

type recordingModel struct {
	lastInput string
	label     string
	score     float64
	err       error
}

func (m *recordingModel) Classify(_ context.Context, text string) (string, float64, error) {
	m.lastInput = text
	return m.label, m.score, m.err
}

func TestAnalyzeRejectsEmptyInput(t *testing.T) {
	t.Parallel()

	c := FromModel(&recordingModel{label: "POSITIVE", score: 0.9}, slog.Default())

	for _, input := range []string{"", "   ", "\n\t"} {
		_, _, err := c.Analyze(context.Background(), input)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Analyze(%q) error = %v, want ErrInvalidInput", input, err)
		}
	}
}

func TestAnalyzeTruncatesTo512Chars(t *testing.T) {
	t.Parallel()

	model := &recordingModel{label: "NEGATIVE", score: 0.7}
	c := FromModel(model, slog.Default())

	long := strings.Repeat("slow transactions ruin everything ", 150) // ~5100 chars
	if len(long) < 4000 {
		t.Fatalf("test input too short: %d", len(long))
	}

	label, score, err := c.Analyze(context.Background(), long)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if model.lastInput != long[:512] {
		t.Fatalf("model received %d chars, want exactly the first 512", len(model.lastInput))
	}
	if label != "negative" || score != 0.7 {
		t.Fatalf("unexpected result: %s %f", label, score)
	}
}

func TestAnalyzeModelUnavailable(t *testing.T) {
	t.Parallel()

	c := New(func(context.Context) (ports.SentimentModel, error) {
		return nil, errors.New("weights missing")
	}, slog.Default())

	_, _, err := c.Analyze(context.Background(), "fine app")
	if !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("error = %v, want ErrModelUnavailable", err)
	}
	if c.Status() != StatusFailed {
		t.Fatalf("status = %v, want failed", c.Status())
	}

	// Unavailability is permanent and distinguishable from bad input.
	_, _, err = c.Analyze(context.Background(), "still fine")
	if !errors.Is(err, ErrModelUnavailable) || errors.Is(err, ErrInvalidInput) {
		t.Fatalf("second call error = %v", err)
	}
}

func TestStatusLifecycle(t *testing.T) {
	t.Parallel()

	c := New(func(context.Context) (ports.SentimentModel, error) {
		return &recordingModel{label: "POSITIVE", score: 0.5}, nil
	}, slog.Default())

	if c.Status() != StatusUninitialized {
		t.Fatalf("status before first call = %v", c.Status())
	}
	if _, _, err := c.Analyze(context.Background(), "nice"); err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if c.Status() != StatusReady {
		t.Fatalf("status after first call = %v", c.Status())
	}
}

func TestSafeAnalyzeNeverFails(t *testing.T) {
	t.Parallel()

	failing := FromModel(&recordingModel{err: errors.New("inference timeout")}, slog.Default())
	unavailable := New(func(context.Context) (ports.SentimentModel, error) {
		return nil, errors.New("no model")
	}, slog.Default())

	cases := []struct {
		name string
		c    *Classifier
		text string
	}{
		{"empty input", failing, ""},
		{"whitespace input", failing, "   "},
		{"model error", failing, "some review"},
		{"model unavailable", unavailable, "some review"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			label, score := tc.c.SafeAnalyze(context.Background(), tc.text)
			if label != domain.SentimentNeutral || score != 0.0 {
				t.Fatalf("SafeAnalyze = (%s, %f), want (neutral, 0.0)", label, score)
			}
		})
	}
}

func TestTruncateRuneSafe(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("é", 600)
	got := Truncate(text)
	if n := len([]rune(got)); n != 512 {
		t.Fatalf("truncated to %d runes, want 512", n)
	}
}
