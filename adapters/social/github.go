// Package social implements code/social search adapters: GitHub repository
// search and Reddit post/comment search.
package social

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/KazKozDev/mcp-search-server/catalog"
	"github.com/KazKozDev/mcp-search-server/pool"
)

type githubSearchArgs struct {
	Query string `json:"query"`
}

// githubAPIBase is overridable in tests so they can point at an
// httptest.Server instead of the live GitHub API.
var githubAPIBase = "https://api.github.com/search/repositories"

func init() {
	catalog.RegisterFactory("search_github", newGithubSearchTool)
}

func newGithubSearchTool() (*catalog.Tool, error) {
	meta := catalog.Metadata{
		Name:                "search_github",
		Description:         "Search GitHub repositories matching a query",
		Category:            catalog.CategorySocial,
		Priority:            catalog.PriorityMedium,
		Tags:                []string{"github", "code", "repository"},
		RequiresNetwork:     true,
		EstimatedDurationMs: 1500,
		InputSchema:         catalog.DeriveSchema(githubSearchArgs{}),
	}
	return catalog.NewTool(meta, searchGithub), nil
}

func searchGithub(ctx context.Context, args catalog.Arguments) (interface{}, error) {
	query, err := args.String("query")
	if err != nil {
		return nil, catalog.NewToolError(catalog.KindInvalidArgument, "query is required")
	}

	endpoint := githubAPIBase + "?" + url.Values{"q": {query}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "build github request", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	client := pool.GetPool().GetHTTPClient()
	resp, err := client.Do(req)
	if err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "github request failed", err)
	}
	defer resp.Body.Close()

	var parsed struct {
		Items []struct {
			FullName    string `json:"full_name"`
			Description string `json:"description"`
			HTMLURL     string `json:"html_url"`
			Stars       int    `json:"stargazers_count"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "decode github response", err)
	}

	out := make([]map[string]interface{}, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		out = append(out, map[string]interface{}{
			"full_name":   item.FullName,
			"description": item.Description,
			"url":         item.HTMLURL,
			"stars":       item.Stars,
		})
	}
	return out, nil
}
