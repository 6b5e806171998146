package analysis

import (
	"context"
	"testing"

	"github.com/KazKozDev/mcp-search-server/catalog"
)

func TestSummarizeTextLimitsToMaxSentences(t *testing.T) {
	text := "First sentence. Second sentence. Third sentence. Fourth sentence."
	result, err := summarizeText(context.Background(), catalog.Arguments{"text": text, "max_sentences": float64(2)})
	if err != nil {
		t.Fatalf("summarizeText: %v", err)
	}
	out := result.(map[string]interface{})
	if out["sentence_count"] != 2 {
		t.Fatalf("expected 2 sentences, got %+v", out)
	}
}

func TestSummarizeTextRequiresText(t *testing.T) {
	if _, err := summarizeText(context.Background(), catalog.Arguments{}); err == nil {
		t.Fatal("expected an error for missing text")
	}
}
