// Package context implements "here and now" probes: the current date/time
// in a requested timezone, and approximate geolocation by IP.
package context

import (
	"context"
	"time"

	"github.com/KazKozDev/mcp-search-server/catalog"
)

type datetimeArgs struct {
	Timezone string `json:"timezone,omitempty"`
}

func init() {
	catalog.RegisterFactory("get_current_datetime", newDatetimeTool)
}

func newDatetimeTool() (*catalog.Tool, error) {
	meta := catalog.Metadata{
		Name:                "get_current_datetime",
		Description:         "Get the current date and time, optionally in a named IANA timezone",
		Category:            catalog.CategoryContext,
		Priority:            catalog.PriorityHigh,
		Tags:                []string{"datetime", "context", "time"},
		EstimatedDurationMs: 5,
		InputSchema:         catalog.DeriveSchema(datetimeArgs{}),
	}
	return catalog.NewTool(meta, getCurrentDatetime), nil
}

func getCurrentDatetime(ctx context.Context, args catalog.Arguments) (interface{}, error) {
	tzName := args.StringOr("timezone", "UTC")

	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, catalog.WrapToolError(catalog.KindInvalidArgument, "unknown timezone "+tzName, err)
	}

	now := time.Now().In(loc)
	return map[string]interface{}{
		"timezone":   tzName,
		"iso8601":    now.Format(time.RFC3339),
		"unix":       now.Unix(),
		"weekday":    now.Weekday().String(),
	}, nil
}
