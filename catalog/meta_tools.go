package catalog

import "context"

// MetaTools builds the three always-live discovery tools (§4.9), closing
// over the registry they introspect. The loader registers these before any
// config-driven tool. categories may be nil, in which case
// list_tool_categories reports the bare category name as display_name and
// MEDIUM as priority, and omits description and icon.
func MetaTools(registry *Registry, categories *CategoryManager) []*Tool {
	return []*Tool{
		newSearchToolsTool(registry),
		newListCategoriesTool(registry, categories),
		newGetToolInfoTool(registry),
	}
}

func metaMetadata(name, description string) Metadata {
	return Metadata{
		Name:        name,
		Description: description,
		Category:    CategoryMeta,
		Priority:    PriorityHigh,
		Tags:        []string{"meta", "discovery"},
	}
}

func newSearchToolsTool(registry *Registry) *Tool {
	meta := metaMetadata("search_tools", "Search the catalog for tools matching a query")
	meta.InputSchema = map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query":    map[string]interface{}{"type": "string"},
			"category": map[string]interface{}{"type": "string"},
			"limit":    map[string]interface{}{"type": "integer"},
		},
		"required": []string{"query"},
	}
	return NewTool(meta, func(ctx context.Context, args Arguments) (interface{}, error) {
		query, err := args.String("query")
		if err != nil {
			return nil, NewToolError(KindInvalidArgument, "query is required")
		}
		category := Category(args.StringOr("category", ""))
		limit := args.IntOr("limit", 10)

		results := registry.Search(query, category, limit)
		out := make([]map[string]interface{}, 0, len(results))
		for _, r := range results {
			entry := map[string]interface{}{
				"name":        r.Name,
				"description": r.Description,
				"category":    string(r.Category),
				"priority":    string(r.Priority),
				"tags":        r.Tags,
				"has_schema":  r.HasSchema,
			}
			if meta, ok := registry.Metadata(r.Name); ok {
				entry["required_params"] = meta.RequiredParams()
			}
			out = append(out, entry)
		}
		return out, nil
	})
}

func newListCategoriesTool(registry *Registry, categories *CategoryManager) *Tool {
	meta := metaMetadata("list_tool_categories", "List all tool categories with their descriptions and tool counts")
	return NewTool(meta, func(ctx context.Context, args Arguments) (interface{}, error) {
		counts := map[Category]int{}
		for _, name := range registry.AllNames() {
			if m, ok := registry.Metadata(name); ok {
				counts[m.Category]++
			}
		}

		known := []Category{
			CategoryWeb, CategoryKnowledge, CategorySocial, CategoryAnalysis,
			CategoryContext, CategoryFiles, CategoryMeta,
		}
		out := make([]map[string]interface{}, 0, len(known))
		for _, c := range known {
			entry := map[string]interface{}{
				"name":        string(c),
				"tools_count": counts[c],
			}
			if categories != nil {
				entry["display_name"] = categories.DisplayName(c)
				entry["description"] = categories.Description(c)
				entry["priority"] = string(categories.Priority(c))
				entry["icon"] = categories.Icon(c)
			} else {
				entry["display_name"] = string(c)
				entry["priority"] = string(PriorityMedium)
			}
			out = append(out, entry)
		}
		return out, nil
	})
}

func newGetToolInfoTool(registry *Registry) *Tool {
	meta := metaMetadata("get_tool_info", "Get the full descriptor and statistics for one tool, triggering a deferred load if necessary")
	meta.InputSchema = map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{"name": map[string]interface{}{"type": "string"}},
		"required":   []string{"name"},
	}
	return NewTool(meta, func(ctx context.Context, args Arguments) (interface{}, error) {
		name, err := args.String("name")
		if err != nil {
			return nil, NewToolError(KindInvalidArgument, "name is required")
		}

		m, found := registry.Metadata(name)
		if !found {
			return nil, WrapToolError(KindToolNotFound, name, ErrUnknownTool)
		}

		tool, loadErr := registry.Load(name)
		info := map[string]interface{}{
			"name":        m.Name,
			"description": m.Description,
			"category":    string(m.Category),
			"priority":    string(m.Priority),
			"tags":        m.Tags,
			"input_schema": m.InputSchema,
		}
		if loadErr != nil {
			info["statistics"] = nil
			return info, nil
		}
		info["statistics"] = map[string]interface{}{
			"execution_count":   tool.Stats().ExecutionCount(),
			"error_count":       tool.Stats().ErrorCount(),
			"total_duration_ms": tool.Stats().TotalDurationMs(),
		}
		return info, nil
	})
}
