package knowledge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KazKozDev/mcp-search-server/catalog"
)

func TestSearchWikipediaRequiresQuery(t *testing.T) {
	if _, err := searchWikipedia(context.Background(), catalog.Arguments{}); err == nil {
		t.Fatal("expected an error for a missing query")
	}
}

func TestSearchWikipediaParsesResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"query":{"search":[{"title":"Go (programming language)","snippet":"Go is a..."}]}}`))
	}))
	defer server.Close()

	original := wikipediaAPIBase
	wikipediaAPIBase = server.URL
	defer func() { wikipediaAPIBase = original }()

	result, err := searchWikipedia(context.Background(), catalog.Arguments{"query": "golang"})
	if err != nil {
		t.Fatalf("searchWikipedia: %v", err)
	}
	out := result.([]map[string]interface{})
	if len(out) != 1 || out[0]["title"] != "Go (programming language)" {
		t.Fatalf("unexpected result: %+v", out)
	}
}
