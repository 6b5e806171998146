// Package analysis implements processing adapters that operate on text
// already in hand rather than fetching it: source credibility scoring,
// summarization, and arithmetic evaluation.
package analysis

import (
	"context"
	"net/url"
	"strings"

	"github.com/KazKozDev/mcp-search-server/catalog"
)

type credibilityArgs struct {
	URL string `json:"url"`
}

var highCredibilityTLDs = map[string]int{
	".gov": 30, ".edu": 25, ".org": 10,
}

var knownReputableDomains = map[string]int{
	"wikipedia.org": 15, "reuters.com": 20, "apnews.com": 20,
	"nature.com": 25, "nih.gov": 25, "bbc.com": 15,
}

func init() {
	catalog.RegisterFactory("assess_source_credibility", newCredibilityTool)
}

func newCredibilityTool() (*catalog.Tool, error) {
	meta := catalog.Metadata{
		Name:                "assess_source_credibility",
		Description:         "Score the credibility of a source URL on a 0-100 scale from domain signals",
		Category:            catalog.CategoryAnalysis,
		Priority:            catalog.PriorityHigh,
		Tags:                []string{"credibility", "analysis", "trust"},
		EstimatedDurationMs: 50,
		InputSchema:         catalog.DeriveSchema(credibilityArgs{}),
	}
	return catalog.NewTool(meta, assessCredibility), nil
}

func assessCredibility(ctx context.Context, args catalog.Arguments) (interface{}, error) {
	raw, err := args.String("url")
	if err != nil {
		return nil, catalog.NewToolError(catalog.KindInvalidArgument, "url is required")
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return nil, catalog.NewToolError(catalog.KindInvalidArgument, "url could not be parsed")
	}
	host := strings.ToLower(parsed.Hostname())

	score := 50
	var signals []string

	if bonus, ok := knownReputableDomains[strings.TrimPrefix(host, "www.")]; ok {
		score += bonus
		signals = append(signals, "known reputable domain")
	}
	for tld, bonus := range highCredibilityTLDs {
		if strings.HasSuffix(host, tld) {
			score += bonus
			signals = append(signals, "top-level domain "+tld)
			break
		}
	}
	if parsed.Scheme == "https" {
		score += 5
		signals = append(signals, "served over https")
	}
	if strings.Count(host, "-") >= 2 {
		score -= 10
		signals = append(signals, "domain has multiple hyphens")
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return map[string]interface{}{
		"url":        raw,
		"domain":     host,
		"score":      score,
		"rating":     ratingFor(score),
		"signals":    signals,
	}, nil
}

func ratingFor(score int) string {
	switch {
	case score >= 80:
		return "high"
	case score >= 50:
		return "medium"
	default:
		return "low"
	}
}
