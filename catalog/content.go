package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ContentBlock is the tagged union returned by tools/call: TextBlock,
// ImageBlock, or EmbeddedResourceBlock, discriminated by Type.
type ContentBlock struct {
	Type     string            `json:"type"`
	Text     string            `json:"text,omitempty"`
	Data     string            `json:"data,omitempty"`
	MimeType string            `json:"mimeType,omitempty"`
	Resource *EmbeddedResource `json:"resource,omitempty"`
}

// EmbeddedResource is the payload of an EmbeddedResourceBlock.
type EmbeddedResource struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
	Blob     string `json:"blob,omitempty"`
}

func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: "text", Text: text}
}

func ImageBlock(base64Data, mimeType string) ContentBlock {
	return ContentBlock{Type: "image", Data: base64Data, MimeType: mimeType}
}

func ResourceBlock(uri, text, mimeType string) ContentBlock {
	return ContentBlock{Type: "resource", Resource: &EmbeddedResource{URI: uri, Text: text, MimeType: mimeType}}
}

// ErrorBlock renders a call-time failure as the single in-band text block
// the transport status never reflects as a failure (§7/§8 scenario 5).
func ErrorBlock(toolName string, err error) ContentBlock {
	return TextBlock(fmt.Sprintf("Error executing tool %s: %s", toolName, err.Error()))
}

// EncodeResult implements the Result Encoder (§4.10): scalars become a
// single text block, a sequence already built of ContentBlock is passed
// through unchanged, and every other value (maps, slices, structs) is
// pretty-printed JSON in a single text block, falling back to its %v string
// form only when it cannot be marshaled.
func EncodeResult(v interface{}) []ContentBlock {
	switch val := v.(type) {
	case nil:
		return []ContentBlock{TextBlock("")}
	case []ContentBlock:
		return val
	case ContentBlock:
		return []ContentBlock{val}
	case string:
		return []ContentBlock{TextBlock(val)}
	case bool, int, int64, float64:
		return []ContentBlock{TextBlock(fmt.Sprintf("%v", val))}
	default:
		data, err := json.MarshalIndent(sortedForJSON(val), "", "  ")
		if err != nil {
			return []ContentBlock{TextBlock(fmt.Sprintf("%v", val))}
		}
		return []ContentBlock{TextBlock(string(data))}
	}
}

// sortedForJSON leaves most values untouched; for map[string]interface{} it
// is a no-op too (encoding/json already sorts map keys), kept as a named
// seam in case a future adapter needs deterministic ordering of a different
// shape before marshaling.
func sortedForJSON(v interface{}) interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}
	return v
}
