package social

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/KazKozDev/mcp-search-server/catalog"
	"github.com/KazKozDev/mcp-search-server/pool"
)

type redditSearchArgs struct {
	Query     string `json:"query"`
	Subreddit string `json:"subreddit,omitempty"`
}

type redditCommentsArgs struct {
	PostID string `json:"post_id"`
}

// redditBaseURL is overridable in tests so they can point at an
// httptest.Server instead of the live Reddit API.
var redditBaseURL = "https://www.reddit.com"

func init() {
	catalog.RegisterFactory("search_reddit", newRedditSearchTool)
	catalog.RegisterFactory("get_reddit_comments", newRedditCommentsTool)
}

func newRedditSearchTool() (*catalog.Tool, error) {
	meta := catalog.Metadata{
		Name:                "search_reddit",
		Description:         "Search Reddit posts matching a query, optionally scoped to a subreddit",
		Category:            catalog.CategorySocial,
		Priority:            catalog.PriorityMedium,
		Tags:                []string{"reddit", "social", "discussion"},
		RequiresNetwork:     true,
		EstimatedDurationMs: 1500,
		InputSchema:         catalog.DeriveSchema(redditSearchArgs{}),
	}
	return catalog.NewTool(meta, searchReddit), nil
}

func searchReddit(ctx context.Context, args catalog.Arguments) (interface{}, error) {
	query, err := args.String("query")
	if err != nil {
		return nil, catalog.NewToolError(catalog.KindInvalidArgument, "query is required")
	}
	subreddit := args.StringOr("subreddit", "")

	path := redditBaseURL + "/search.json?" + url.Values{"q": {query}}.Encode()
	if subreddit != "" {
		path = redditBaseURL + "/r/" + url.PathEscape(subreddit) + "/search.json?" + url.Values{"q": {query}, "restrict_sr": {"1"}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "build reddit request", err)
	}
	req.Header.Set("User-Agent", "mcp-search-server/1.0")

	client := pool.GetPool().GetHTTPClient()
	resp, err := client.Do(req)
	if err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "reddit request failed", err)
	}
	defer resp.Body.Close()

	var parsed struct {
		Data struct {
			Children []struct {
				Data struct {
					Title       string `json:"title"`
					Permalink   string `json:"permalink"`
					NumComments int    `json:"num_comments"`
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "decode reddit response", err)
	}

	out := make([]map[string]interface{}, 0, len(parsed.Data.Children))
	for _, c := range parsed.Data.Children {
		out = append(out, map[string]interface{}{
			"title":        c.Data.Title,
			"permalink":    redditBaseURL + c.Data.Permalink,
			"num_comments": c.Data.NumComments,
		})
	}
	return out, nil
}

func newRedditCommentsTool() (*catalog.Tool, error) {
	meta := catalog.Metadata{
		Name:                "get_reddit_comments",
		Description:         "Request a Reddit post's comments endpoint and report the HTTP status; comment bodies are not parsed or returned",
		Category:            catalog.CategorySocial,
		Priority:            catalog.PriorityLow,
		Tags:                []string{"reddit", "comments"},
		RequiresNetwork:     true,
		EstimatedDurationMs: 1500,
		InputSchema:         catalog.DeriveSchema(redditCommentsArgs{}),
	}
	return catalog.NewTool(meta, getRedditComments), nil
}

func getRedditComments(ctx context.Context, args catalog.Arguments) (interface{}, error) {
	postID, err := args.String("post_id")
	if err != nil {
		return nil, catalog.NewToolError(catalog.KindInvalidArgument, "post_id is required")
	}

	endpoint := redditBaseURL + "/comments/" + url.PathEscape(postID) + ".json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "build reddit comments request", err)
	}
	req.Header.Set("User-Agent", "mcp-search-server/1.0")

	client := pool.GetPool().GetHTTPClient()
	resp, err := client.Do(req)
	if err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "reddit comments request failed", err)
	}
	defer resp.Body.Close()

	return map[string]interface{}{"post_id": postID, "status_code": resp.StatusCode}, nil
}
