package keywords

import (
	"reflect"
	"testing"
)

func TestExtractBasicFunctionality(t *testing.T) {
	t.Parallel()

	texts := []string{
		"this is a great app for finance",
		"the app has excellent features and great usability",
		"finance tools and features are very helpful",
	}
	result := Extract(texts, 3)

	if len(result) != len(texts) {
		t.Fatalf("expected %d result lists, got %d", len(texts), len(result))
	}
	for i, kws := range result {
		if len(kws) == 0 {
			t.Fatalf("doc %d yielded no keywords", i)
		}
		if len(kws) > 3 {
			t.Fatalf("doc %d exceeded top_k: %v", i, kws)
		}
	}
}

func TestExtractEmptyDocuments(t *testing.T) {
	t.Parallel()

	texts := []string{"", "   ", "\n"}
	result := Extract(texts, 5)

	if len(result) != 3 {
		t.Fatalf("expected 3 result lists, got %d", len(result))
	}
	for i, kws := range result {
		if kws == nil || len(kws) != 0 {
			t.Fatalf("doc %d should yield an empty (non-nil) list, got %v", i, kws)
		}
	}
}

func TestExtractMixedEmptyAndFull(t *testing.T) {
	t.Parallel()

	texts := []string{"", "slow transfers and poor support", "  "}
	result := Extract(texts, 5)

	if len(result[0]) != 0 || len(result[2]) != 0 {
		t.Fatalf("empty docs must stay empty: %v", result)
	}
	if len(result[1]) == 0 {
		t.Fatalf("non-empty doc lost its keywords")
	}
}

func TestExtractTopKRespected(t *testing.T) {
	t.Parallel()

	texts := []string{
		"keyword1 keyword2 keyword3 keyword4 keyword5 keyword6",
		"keyword1 keyword2 keyword3",
	}
	for _, kws := range Extract(texts, 4) {
		if len(kws) > 4 {
			t.Fatalf("expected at most 4 keywords, got %d: %v", len(kws), kws)
		}
	}
}

func TestExtractDeterministic(t *testing.T) {
	t.Parallel()

	texts := []string{"finance app usability", "finance app usability"}
	first := Extract(texts, 2)
	second := Extract(texts, 2)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("outputs differ across runs: %v vs %v", first, second)
	}
}

func TestExtractSymbolHeavyInput(t *testing.T) {
	t.Parallel()

	texts := []string{
		"123 456 !@# $%^",
		"finance $$$ app ***",
	}
	result := Extract(texts, 3)

	if len(result) != 2 {
		t.Fatalf("expected 2 result lists, got %d", len(result))
	}
	for _, kw := range result[1] {
		for _, r := range kw {
			if r == '$' || r == '*' {
				t.Fatalf("symbol leaked into keyword %q", kw)
			}
		}
	}
}

func TestExtractFewerTermsThanTopK(t *testing.T) {
	t.Parallel()

	result := Extract([]string{"login login login"}, 5)
	// One distinct unigram and one distinct bigram only.
	if len(result[0]) != 2 {
		t.Fatalf("expected 2 keywords, got %v", result[0])
	}
}
