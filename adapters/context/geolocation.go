package context

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/KazKozDev/mcp-search-server/catalog"
	"github.com/KazKozDev/mcp-search-server/pool"
)

type geolocationArgs struct {
	IP string `json:"ip,omitempty"`
}

// ipapiBaseURL and ipifyBaseURL are overridable in tests so they can point
// at an httptest.Server instead of the live geolocation backends.
var (
	ipapiBaseURL = "https://ipapi.co"
	ipifyBaseURL = "https://api.ipify.org?format=json"
)

func init() {
	catalog.RegisterFactory("get_location_by_ip", newGeolocationTool)
}

func newGeolocationTool() (*catalog.Tool, error) {
	meta := catalog.Metadata{
		Name:                "get_location_by_ip",
		Description:         "Look up approximate geolocation for an IP address, or the caller's public IP if omitted",
		Category:            catalog.CategoryContext,
		Priority:            catalog.PriorityHigh,
		Tags:                []string{"geolocation", "context", "ip"},
		RequiresNetwork:     true,
		EstimatedDurationMs: 1000,
		InputSchema:         catalog.DeriveSchema(geolocationArgs{}),
	}
	return catalog.NewTool(meta, getLocationByIP), nil
}

func getLocationByIP(ctx context.Context, args catalog.Arguments) (interface{}, error) {
	ip := args.StringOr("ip", "")
	client := pool.GetPool().GetHTTPClient()

	if ip == "" {
		resolved, err := publicIP(ctx, client)
		if err != nil {
			return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "could not determine public ip", err)
		}
		ip = resolved
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ipapiBaseURL+"/"+ip+"/json/", nil)
	if err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "build geolocation request", err)
	}
	req.Header.Set("User-Agent", "mcp-search-server/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "geolocation request failed", err)
	}
	defer resp.Body.Close()

	var parsed struct {
		Country     string  `json:"country_name"`
		CountryCode string  `json:"country_code"`
		Region      string  `json:"region"`
		City        string  `json:"city"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
		Timezone    string  `json:"timezone"`
		Org         string  `json:"org"`
		Error       bool    `json:"error"`
		Reason      string  `json:"reason"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "decode geolocation response", err)
	}
	if parsed.Error {
		return nil, catalog.NewToolError(catalog.KindAdapterFailure, "geolocation lookup failed: "+parsed.Reason)
	}

	return map[string]interface{}{
		"ip":           ip,
		"country":      parsed.Country,
		"country_code": parsed.CountryCode,
		"region":       parsed.Region,
		"city":         parsed.City,
		"latitude":     parsed.Latitude,
		"longitude":    parsed.Longitude,
		"timezone":     parsed.Timezone,
		"isp":          parsed.Org,
	}, nil
}

func publicIP(ctx context.Context, client *http.Client) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ipifyBaseURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	return parsed.IP, nil
}
