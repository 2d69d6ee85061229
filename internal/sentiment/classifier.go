// Package sentiment wraps a pre-trained binary sentiment model behind
// input validation, deterministic truncation, and a fail-safe variant.
package sentiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"ReviewInsights/internal/domain"
	"ReviewInsights/internal/ports"
)

// MaxInputChars is the hard input ceiling of the underlying model.
// Longer reviews lose tail content deterministically.
const MaxInputChars = 512

var (
	// ErrInvalidInput signals an input-validation failure, not a
	// classifier failure.
	ErrInvalidInput = errors.New("sentiment: input text must be a non-empty string")

	// ErrModelUnavailable is a fatal condition: the model failed to
	// load and every call will keep reporting it.
	ErrModelUnavailable = errors.New("sentiment: model unavailable")
)

// Status describes the model handle lifecycle.
type Status int

const (
	StatusUninitialized Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "uninitialized"
	}
}

// Loader produces the model backend exactly once per classifier.
type Loader func(ctx context.Context) (ports.SentimentModel, error)

// Classifier owns its model handle. The model is initialized lazily on
// first use and shared read-only afterwards; initialization failure is
// remembered and surfaced as ErrModelUnavailable on every later call.
type Classifier struct {
	load   Loader
	logger *slog.Logger

	once    sync.Once
	model   ports.SentimentModel
	loadErr error
}

// New builds a classifier around a model loader.
func New(load Loader, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{load: load, logger: logger}
}

// FromModel wraps an already-constructed model backend.
func FromModel(model ports.SentimentModel, logger *slog.Logger) *Classifier {
	c := New(nil, logger)
	c.once.Do(func() {})
	c.model = model
	if model == nil {
		c.loadErr = errors.New("sentiment: nil model")
	}
	return c
}

// Status reports the current state of the model handle without
// triggering initialization.
func (c *Classifier) Status() Status {
	switch {
	case c.loadErr != nil:
		return StatusFailed
	case c.model != nil:
		return StatusReady
	default:
		return StatusUninitialized
	}
}

func (c *Classifier) ensureModel(ctx context.Context) error {
	c.once.Do(func() {
		if c.load == nil {
			c.loadErr = errors.New("sentiment: no model loader configured")
			return
		}
		c.model, c.loadErr = c.load(ctx)
		if c.loadErr == nil && c.model == nil {
			c.loadErr = errors.New("sentiment: loader returned nil model")
		}
	})
	if c.loadErr != nil {
		return fmt.Errorf("%w: %v", ErrModelUnavailable, c.loadErr)
	}
	return nil
}

// Analyze classifies text. The text must be non-empty after trimming
// (ErrInvalidInput otherwise) and is truncated to MaxInputChars before
// the model call. The label is positive or negative; the model never
// emits neutral.
func (c *Classifier) Analyze(ctx context.Context, text string) (string, float64, error) {
	if strings.TrimSpace(text) == "" {
		return "", 0, ErrInvalidInput
	}
	if err := c.ensureModel(ctx); err != nil {
		return "", 0, err
	}

	label, score, err := c.model.Classify(ctx, Truncate(text))
	if err != nil {
		return "", 0, fmt.Errorf("classify: %w", err)
	}
	return strings.ToLower(label), score, nil
}

// SafeAnalyze never fails: any validation or classification failure
// yields the neutral fallback with a zero score and a logged cause.
// Note the 0.0 fallback score is indistinguishable from a genuine
// zero-confidence reading; callers needing the distinction must check
// the label.
func (c *Classifier) SafeAnalyze(ctx context.Context, text string) (string, float64) {
	label, score, err := c.Analyze(ctx, text)
	if err != nil {
		c.logger.Warn("sentiment fallback to neutral", "error", err)
		return domain.SentimentNeutral, 0.0
	}
	return label, score
}

// Truncate cuts text to MaxInputChars characters, rune-safe.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxInputChars {
		return text
	}
	return string(runes[:MaxInputChars])
}
