// Package web implements the web/news search and content-extraction
// adapters: search_web and extract_webpage_content.
package web

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/KazKozDev/mcp-search-server/catalog"
	"github.com/KazKozDev/mcp-search-server/pool"
)

type webSearchArgs struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
}

// duckduckgoBaseURL is overridable in tests so they can point at an
// httptest.Server instead of the live backend.
var duckduckgoBaseURL = "https://duckduckgo.com/html/"

func init() {
	catalog.RegisterFactory("search_web", newSearchWebTool)
}

func newSearchWebTool() (*catalog.Tool, error) {
	meta := catalog.Metadata{
		Name:                "search_web",
		Description:         "Send a query to the web search backend and report whether it answered; result pages are not parsed or returned",
		Category:            catalog.CategoryWeb,
		Priority:            catalog.PriorityHigh,
		Tags:                []string{"search", "web", "news"},
		RequiresNetwork:     true,
		EstimatedDurationMs: 1500,
		InputSchema:         catalog.DeriveSchema(webSearchArgs{}),
	}
	return catalog.NewTool(meta, searchWeb), nil
}

func searchWeb(ctx context.Context, args catalog.Arguments) (interface{}, error) {
	query, err := args.String("query")
	if err != nil {
		return nil, catalog.NewToolError(catalog.KindInvalidArgument, "query is required")
	}
	maxResults := args.IntOr("max_results", 10)

	client := pool.GetPool().GetHTTPClient()
	endpoint := duckduckgoBaseURL + "?" + url.Values{"q": {query}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "build search request", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "search request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, catalog.NewToolError(catalog.KindAdapterFailure, fmt.Sprintf("search backend returned %d", resp.StatusCode))
	}

	return map[string]interface{}{
		"query":       query,
		"max_results": maxResults,
		"status":      "ok",
	}, nil
}
