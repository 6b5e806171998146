// Package knowledge implements knowledge/academic adapters: Wikipedia
// lookup and related reference sources.
package knowledge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/KazKozDev/mcp-search-server/catalog"
	"github.com/KazKozDev/mcp-search-server/pool"
)

type wikipediaArgs struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// wikipediaAPIBase is overridable in tests so they can point at an
// httptest.Server instead of the live MediaWiki API.
var wikipediaAPIBase = "https://en.wikipedia.org/w/api.php"

func init() {
	catalog.RegisterFactory("search_wikipedia", newWikipediaTool)
}

func newWikipediaTool() (*catalog.Tool, error) {
	meta := catalog.Metadata{
		Name:                "search_wikipedia",
		Description:         "Search Wikipedia article summaries for a query",
		Category:            catalog.CategoryKnowledge,
		Priority:            catalog.PriorityMedium,
		Tags:                []string{"wikipedia", "knowledge", "reference"},
		RequiresNetwork:     true,
		EstimatedDurationMs: 1200,
		InputSchema:         catalog.DeriveSchema(wikipediaArgs{}),
	}
	return catalog.NewTool(meta, searchWikipedia), nil
}

func searchWikipedia(ctx context.Context, args catalog.Arguments) (interface{}, error) {
	query, err := args.String("query")
	if err != nil {
		return nil, catalog.NewToolError(catalog.KindInvalidArgument, "query is required")
	}
	limit := args.IntOr("limit", 5)

	endpoint := wikipediaAPIBase + "?" + url.Values{
		"action":  {"query"},
		"list":    {"search"},
		"srsearch": {query},
		"srlimit": {strconv.Itoa(limit)},
		"format":  {"json"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "build wikipedia request", err)
	}

	client := pool.GetPool().GetHTTPClient()
	resp, err := client.Do(req)
	if err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "wikipedia request failed", err)
	}
	defer resp.Body.Close()

	var parsed struct {
		Query struct {
			Search []struct {
				Title   string `json:"title"`
				Snippet string `json:"snippet"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "decode wikipedia response", err)
	}

	results := make([]map[string]interface{}, 0, len(parsed.Query.Search))
	for _, item := range parsed.Query.Search {
		results = append(results, map[string]interface{}{"title": item.Title, "snippet": item.Snippet})
	}
	return results, nil
}
