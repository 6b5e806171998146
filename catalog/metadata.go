package catalog

import "strings"

// Metadata is the immutable descriptor of one tool. It is identical whether
// the tool is live or still deferred: discovery never depends on
// materialization state.
type Metadata struct {
	Name        string
	Description string
	Category    Category
	Priority    Priority
	Version     string
	Tags        []string

	InputSchema  map[string]interface{}
	OutputSchema map[string]interface{}

	DeferLoading bool

	RequiresNetwork      bool
	RequiresFilesystem   bool
	EstimatedDurationMs  int
}

// HasSchema reports whether an input schema has already been attached,
// either from configuration or from a prior derivation.
func (m Metadata) HasSchema() bool {
	return m.InputSchema != nil
}

// RequiredParams returns the "required" list from the input schema, or nil
// if the schema has none or is absent.
func (m Metadata) RequiredParams() []string {
	if m.InputSchema == nil {
		return nil
	}
	raw, ok := m.InputSchema["required"]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Descriptor is the (name, description, inputSchema) triple returned by
// tools/list, stable across calls as long as Metadata is unchanged.
type Descriptor struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// Descriptor renders the metadata as the (name, description, inputSchema)
// triple returned by tools/list, stable across calls while Metadata itself
// doesn't change.
func (m Metadata) Descriptor() Descriptor {
	schema := m.InputSchema
	if schema == nil {
		schema = map[string]interface{}{"type": "object", "properties": map[string]interface{}{}, "required": []string{}}
	}
	return Descriptor{Name: m.Name, Description: m.Description, InputSchema: schema}
}

func matchesQuery(m Metadata, q string) bool {
	ql := strings.ToLower(q)
	if strings.Contains(strings.ToLower(m.Name), ql) ||
		strings.Contains(strings.ToLower(m.Description), ql) ||
		strings.Contains(strings.ToLower(string(m.Category)), ql) {
		return true
	}
	for _, t := range m.Tags {
		if strings.Contains(strings.ToLower(t), ql) {
			return true
		}
	}
	return false
}
