package web

import (
	"context"
	"io"
	"net/http"

	"github.com/KazKozDev/mcp-search-server/catalog"
	"github.com/KazKozDev/mcp-search-server/pool"
)

type extractArgs struct {
	URL string `json:"url"`
}

func init() {
	catalog.RegisterFactory("extract_webpage_content", newExtractTool)
}

func newExtractTool() (*catalog.Tool, error) {
	meta := catalog.Metadata{
		Name:                "extract_webpage_content",
		Description:         "Fetch a URL and report its HTTP status and body length (first 1 MiB); the page text is not returned",
		Category:            catalog.CategoryWeb,
		Priority:            catalog.PriorityHigh,
		Tags:                []string{"web", "extract", "content"},
		RequiresNetwork:     true,
		EstimatedDurationMs: 2000,
		InputSchema:         catalog.DeriveSchema(extractArgs{}),
	}
	return catalog.NewTool(meta, extractWebpageContent), nil
}

func extractWebpageContent(ctx context.Context, args catalog.Arguments) (interface{}, error) {
	target, err := args.String("url")
	if err != nil {
		return nil, catalog.NewToolError(catalog.KindInvalidArgument, "url is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, catalog.WrapToolError(catalog.KindInvalidArgument, "invalid url", err)
	}

	client := pool.GetPool().GetHTTPClient()
	resp, err := client.Do(req)
	if err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "fetch failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "read body failed", err)
	}

	return map[string]interface{}{
		"url":            target,
		"status_code":    resp.StatusCode,
		"content_length": len(body),
	}, nil
}
