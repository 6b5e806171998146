package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KazKozDev/mcp-search-server/session"
)

func newTestDispatcher(t *testing.T) *HTTPDispatcher {
	t.Helper()
	sessions, err := session.NewStatelessWithGeneratedKey(time.Minute)
	if err != nil {
		t.Fatalf("NewStatelessWithGeneratedKey: %v", err)
	}
	return NewHTTPDispatcher(registryWithOneTool(), "test-server", "0.0.1", sessions)
}

func doJSON(t *testing.T, mux http.Handler, method string, req Request, sessionID string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	httpReq := httptest.NewRequest(method, "/mcp", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		httpReq.Header.Set("MCP-Session-Id", sessionID)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httpReq)

	var resp Response
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v (body=%s)", err, rec.Body.String())
		}
	}
	return rec, resp
}

func TestHTTPInitializeMintsSession(t *testing.T) {
	d := newTestDispatcher(t)
	mux := d.Mux()

	rec, resp := doJSON(t, mux, http.MethodPost, Request{JSONRPC: "2.0", ID: 1, Method: "initialize"}, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	if rec.Header().Get("MCP-Session-Id") == "" {
		t.Fatal("expected MCP-Session-Id header to be set")
	}
}

func TestHTTPCallWithoutSessionRejected(t *testing.T) {
	d := newTestDispatcher(t)
	mux := d.Mux()

	rec, _ := doJSON(t, mux, http.MethodPost, Request{JSONRPC: "2.0", ID: 2, Method: "tools/list"}, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a session, got %d", rec.Code)
	}
}

func TestHTTPCallWithValidSessionSucceeds(t *testing.T) {
	d := newTestDispatcher(t)
	mux := d.Mux()

	initRec, _ := doJSON(t, mux, http.MethodPost, Request{JSONRPC: "2.0", ID: 1, Method: "initialize"}, "")
	sessionID := initRec.Header().Get("MCP-Session-Id")

	rec, resp := doJSON(t, mux, http.MethodPost, Request{JSONRPC: "2.0", ID: 2, Method: "tools/list"}, sessionID)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
}

func TestWellKnownConfigServesSchema(t *testing.T) {
	d := newTestDispatcher(t)
	mux := d.Mux()

	req := httptest.NewRequest(http.MethodGet, "/.well-known/mcp-config", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	id, _ := doc["$id"].(string)
	if id == "" {
		t.Fatal("expected a non-empty $id")
	}
}

func TestServerCardListsRegisteredTools(t *testing.T) {
	d := newTestDispatcher(t)
	mux := d.Mux()

	req := httptest.NewRequest(http.MethodGet, "/.well-known/mcp", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var card map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &card); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	caps, ok := card["capabilities"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing capabilities: %+v", card)
	}
	tools, ok := caps["tools"].(map[string]interface{})
	if !ok || tools["echo"] == nil {
		t.Fatalf("expected echo tool listed, got %+v", tools)
	}
}
