package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/KazKozDev/mcp-search-server/session"
)

const supportedProtocolVersion = protocolVersion

// HTTPDispatcher hosts the RPC surface over HTTP (§4.7): a session endpoint
// at /mcp that answers each POSTed JSON-RPC request with one JSON response
// (GET is rejected; there is no server-initiated streaming), plus the
// well-known discovery documents. CORS is
// wide open on every route — a dev/hosted-scanner contract, not an
// authorization boundary (§4.7 CORS).
type HTTPDispatcher struct {
	dispatch *Dispatch
	sessions session.Manager
}

func NewHTTPDispatcher(registry *Registry, serverName, serverVersion string, sessions session.Manager) *HTTPDispatcher {
	return &HTTPDispatcher{
		dispatch: NewDispatch(registry, serverName, serverVersion),
		sessions: sessions,
	}
}

// Mux builds the full route table described in §4.7/§6.
func (d *HTTPDispatcher) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/mcp", d.handleMCP)
	mux.HandleFunc("/mcp/", d.handleMCP)
	mux.HandleFunc("/.well-known/mcp-config", d.handleWellKnownConfig)
	mux.HandleFunc("/.well-known/mcp", d.handleServerCard)
	mux.HandleFunc("/.well-known/mcp.json", d.handleServerCard)
	return mux
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, MCP-Protocol-Version, MCP-Session-Id")
	w.Header().Set("Access-Control-Max-Age", "86400")
}

func (d *HTTPDispatcher) handleMCP(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	switch r.Method {
	case http.MethodDelete:
		d.handleDelete(w, r)
	case http.MethodPost:
		d.handlePost(w, r)
	case http.MethodGet:
		http.Error(w, "GET streaming not supported by this transport", http.StatusMethodNotAllowed)
	default:
		w.Header().Set("Allow", "POST, GET, DELETE, OPTIONS")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (d *HTTPDispatcher) handleDelete(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get("MCP-Session-Id")
	if sessionID == "" {
		http.Error(w, "MCP-Session-Id header required", http.StatusBadRequest)
		return
	}
	_ = d.sessions.DeleteSession(r.Context(), sessionID)
	w.WriteHeader(http.StatusNoContent)
}

func (d *HTTPDispatcher) handlePost(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		d.writeResponse(w, Response{JSONRPC: "2.0", Error: &RPCError{Code: -32700, Message: "parse error"}})
		return
	}

	if req.Method == "initialize" {
		d.handleHTTPInitialize(w, r, req)
		return
	}

	if err := d.validateSession(r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := d.dispatch.Handle(r.Context(), req)
	d.writeResponse(w, resp)
}

func (d *HTTPDispatcher) validateSession(r *http.Request) error {
	version := r.Header.Get("MCP-Protocol-Version")
	if version != "" && version != supportedProtocolVersion {
		return fmt.Errorf("unsupported MCP-Protocol-Version: %s", version)
	}

	sessionID := r.Header.Get("MCP-Session-Id")
	if sessionID == "" {
		return fmt.Errorf("MCP-Session-Id header required")
	}
	valid, err := d.sessions.ValidateSession(r.Context(), sessionID)
	if err != nil || !valid {
		return fmt.Errorf("invalid or expired session")
	}
	return nil
}

func (d *HTTPDispatcher) handleHTTPInitialize(w http.ResponseWriter, r *http.Request, req Request) {
	resp := d.dispatch.Handle(r.Context(), req)

	sessionID, err := d.sessions.CreateSession(r.Context(), supportedProtocolVersion)
	if err == nil {
		w.Header().Set("MCP-Session-Id", sessionID)
	}
	w.Header().Set("MCP-Protocol-Version", supportedProtocolVersion)
	d.writeResponse(w, resp)
}

func (d *HTTPDispatcher) writeResponse(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	_ = json.NewEncoder(w).Encode(resp)
}

// handleWellKnownConfig serves the session configuration schema (§4.7/§6),
// with $id derived from the request's own base URL.
func (d *HTTPDispatcher) handleWellKnownConfig(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	base := baseURL(r)
	schema := map[string]interface{}{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"$id":                  base + "/.well-known/mcp-config",
		"title":                "MCP Session Configuration",
		"description":          "Configuration for connecting to this MCP server",
		"x-query-style":        "dot+bracket",
		"type":                 "object",
		"properties":           map[string]interface{}{},
		"required":             []string{},
		"additionalProperties": false,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(schema)
}

// handleServerCard serves the backward-compatible server-card alias some
// scanners look for instead of a full RPC handshake (§6).
func (d *HTTPDispatcher) handleServerCard(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	tools := map[string]interface{}{}
	for _, name := range d.dispatch.Registry.AllNames() {
		m, ok := d.dispatch.Registry.Metadata(name)
		if !ok {
			continue
		}
		tools[name] = map[string]interface{}{
			"name":        m.Name,
			"description": m.Description,
			"inputSchema": m.InputSchema,
			"operationId": m.Name,
		}
	}

	card := map[string]interface{}{
		"server": map[string]interface{}{
			"name":      d.dispatch.ServerName,
			"version":   d.dispatch.ServerVersion,
			"transport": "http",
		},
		"capabilities": map[string]interface{}{
			"tools":     tools,
			"resources": []interface{}{},
			"prompts":   []interface{}{},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(card)
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return strings.TrimSuffix(fmt.Sprintf("%s://%s", scheme, r.Host), "/")
}
