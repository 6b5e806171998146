package context

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KazKozDev/mcp-search-server/catalog"
)

func TestGetLocationByIPUsesProvidedIP(t *testing.T) {
	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"country_name":"United States","country_code":"US","region":"California","city":"Mountain View","latitude":37.4,"longitude":-122.1,"timezone":"America/Los_Angeles","org":"Example ISP"}`))
	}))
	defer server.Close()

	originalIPAPI := ipapiBaseURL
	ipapiBaseURL = server.URL
	defer func() { ipapiBaseURL = originalIPAPI }()

	result, err := getLocationByIP(context.Background(), catalog.Arguments{"ip": "8.8.8.8"})
	if err != nil {
		t.Fatalf("getLocationByIP: %v", err)
	}
	out := result.(map[string]interface{})
	if out["country"] != "United States" || out["city"] != "Mountain View" {
		t.Fatalf("unexpected result: %+v", out)
	}
	if requestedPath != "/8.8.8.8/json/" {
		t.Fatalf("expected lookup of the provided ip, got path %q", requestedPath)
	}
}

func TestGetLocationByIPFallsBackToPublicIP(t *testing.T) {
	ipify := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ip":"203.0.113.5"}`))
	}))
	defer ipify.Close()

	var requestedPath string
	ipapi := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"country_name":"Testland","country_code":"TL"}`))
	}))
	defer ipapi.Close()

	originalIpify, originalIPAPI := ipifyBaseURL, ipapiBaseURL
	ipifyBaseURL = ipify.URL
	ipapiBaseURL = ipapi.URL
	defer func() {
		ipifyBaseURL = originalIpify
		ipapiBaseURL = originalIPAPI
	}()

	result, err := getLocationByIP(context.Background(), catalog.Arguments{})
	if err != nil {
		t.Fatalf("getLocationByIP: %v", err)
	}
	out := result.(map[string]interface{})
	if out["ip"] != "203.0.113.5" {
		t.Fatalf("expected the resolved public ip, got %+v", out)
	}
	if requestedPath != "/203.0.113.5/json/" {
		t.Fatalf("expected lookup of the resolved public ip, got path %q", requestedPath)
	}
}

func TestGetLocationByIPSurfacesLookupErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":true,"reason":"invalid ip"}`))
	}))
	defer server.Close()

	original := ipapiBaseURL
	ipapiBaseURL = server.URL
	defer func() { ipapiBaseURL = original }()

	if _, err := getLocationByIP(context.Background(), catalog.Arguments{"ip": "not-an-ip"}); err == nil {
		t.Fatal("expected the backend error to surface")
	}
}
