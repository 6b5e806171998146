package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestEncodeResultScalar(t *testing.T) {
	blocks := EncodeResult("hello")
	if len(blocks) != 1 || blocks[0].Type != "text" || blocks[0].Text != "hello" {
		t.Fatalf("unexpected blocks: %+v", blocks)
	}
}

func TestEncodeResultMapBecomesJSON(t *testing.T) {
	blocks := EncodeResult(map[string]interface{}{"a": 1})
	if len(blocks) != 1 || blocks[0].Type != "text" {
		t.Fatalf("unexpected blocks: %+v", blocks)
	}
	if !strings.Contains(blocks[0].Text, `"a"`) {
		t.Fatalf("expected marshaled JSON, got %q", blocks[0].Text)
	}
}

func TestEncodeResultPassesThroughContentBlocks(t *testing.T) {
	want := []ContentBlock{TextBlock("x"), ImageBlock("YQ==", "image/png")}
	got := EncodeResult(want)
	if len(got) != 2 || got[1].MimeType != "image/png" {
		t.Fatalf("expected passthrough, got %+v", got)
	}
}

func TestErrorBlockFormatsToolNameAndCause(t *testing.T) {
	block := ErrorBlock("search_web", errors.New("network unreachable"))
	if block.Type != "text" {
		t.Fatalf("expected text block, got %q", block.Type)
	}
	if !strings.Contains(block.Text, "search_web") || !strings.Contains(block.Text, "network unreachable") {
		t.Fatalf("expected tool name and cause in block, got %q", block.Text)
	}
}
