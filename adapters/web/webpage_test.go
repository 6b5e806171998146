package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KazKozDev/mcp-search-server/catalog"
)

func TestExtractWebpageContentRequiresURL(t *testing.T) {
	if _, err := extractWebpageContent(context.Background(), catalog.Arguments{}); err == nil {
		t.Fatal("expected an error for a missing url")
	}
}

func TestExtractWebpageContentReportsLength(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello world"))
	}))
	defer server.Close()

	result, err := extractWebpageContent(context.Background(), catalog.Arguments{"url": server.URL})
	if err != nil {
		t.Fatalf("extractWebpageContent: %v", err)
	}
	out := result.(map[string]interface{})
	if out["content_length"] != len("hello world") {
		t.Fatalf("unexpected content_length: %+v", out)
	}
	if out["status_code"] != http.StatusOK {
		t.Fatalf("unexpected status_code: %+v", out)
	}
}
