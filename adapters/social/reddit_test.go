package social

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KazKozDev/mcp-search-server/catalog"
)

func TestSearchRedditRequiresQuery(t *testing.T) {
	if _, err := searchReddit(context.Background(), catalog.Arguments{}); err == nil {
		t.Fatal("expected an error for a missing query")
	}
}

func TestSearchRedditParsesResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"children":[{"data":{"title":"Why Go?","permalink":"/r/golang/comments/abc123/why_go/","num_comments":42}}]}}`))
	}))
	defer server.Close()

	original := redditBaseURL
	redditBaseURL = server.URL
	defer func() { redditBaseURL = original }()

	result, err := searchReddit(context.Background(), catalog.Arguments{"query": "golang"})
	if err != nil {
		t.Fatalf("searchReddit: %v", err)
	}
	out := result.([]map[string]interface{})
	if len(out) != 1 || out[0]["num_comments"] != 42 {
		t.Fatalf("unexpected result: %+v", out)
	}
	if out[0]["permalink"] != server.URL+"/r/golang/comments/abc123/why_go/" {
		t.Fatalf("unexpected permalink: %+v", out[0]["permalink"])
	}
}

func TestSearchRedditScopesToSubreddit(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"children":[]}}`))
	}))
	defer server.Close()

	original := redditBaseURL
	redditBaseURL = server.URL
	defer func() { redditBaseURL = original }()

	if _, err := searchReddit(context.Background(), catalog.Arguments{"query": "golang", "subreddit": "golang"}); err != nil {
		t.Fatalf("searchReddit: %v", err)
	}
	if gotPath != "/r/golang/search.json" {
		t.Fatalf("expected subreddit-scoped path, got %q", gotPath)
	}
}

func TestGetRedditCommentsRequiresPostID(t *testing.T) {
	if _, err := getRedditComments(context.Background(), catalog.Arguments{}); err == nil {
		t.Fatal("expected an error for a missing post_id")
	}
}

func TestGetRedditCommentsReportsStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	original := redditBaseURL
	redditBaseURL = server.URL
	defer func() { redditBaseURL = original }()

	result, err := getRedditComments(context.Background(), catalog.Arguments{"post_id": "abc123"})
	if err != nil {
		t.Fatalf("getRedditComments: %v", err)
	}
	out := result.(map[string]interface{})
	if out["post_id"] != "abc123" || out["status_code"] != http.StatusOK {
		t.Fatalf("unexpected result: %+v", out)
	}
}
