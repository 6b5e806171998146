package analysis

import (
	"context"
	"strings"

	"github.com/KazKozDev/mcp-search-server/catalog"
)

type summarizeArgs struct {
	Text         string `json:"text"`
	MaxSentences int    `json:"max_sentences,omitempty"`
}

func init() {
	catalog.RegisterFactory("summarize_text", newSummarizeTool)
}

func newSummarizeTool() (*catalog.Tool, error) {
	meta := catalog.Metadata{
		Name:                "summarize_text",
		Description:         "Summarize a block of text down to its leading sentences",
		Category:            catalog.CategoryAnalysis,
		Priority:            catalog.PriorityMedium,
		Tags:                []string{"summarize", "text", "analysis"},
		EstimatedDurationMs: 50,
		InputSchema:         catalog.DeriveSchema(summarizeArgs{}),
	}
	return catalog.NewTool(meta, summarizeText), nil
}

func summarizeText(ctx context.Context, args catalog.Arguments) (interface{}, error) {
	text, err := args.String("text")
	if err != nil {
		return nil, catalog.NewToolError(catalog.KindInvalidArgument, "text is required")
	}
	maxSentences := args.IntOr("max_sentences", 3)
	if maxSentences <= 0 {
		maxSentences = 3
	}

	sentences := splitSentences(text)
	if len(sentences) > maxSentences {
		sentences = sentences[:maxSentences]
	}

	return map[string]interface{}{
		"summary":         strings.Join(sentences, " "),
		"sentence_count":  len(sentences),
		"original_length": len(text),
	}, nil
}

func splitSentences(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	var out []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f+".")
		}
	}
	return out
}
