package transport

import (
	"context"
	"encoding/json"

	"github.com/KazKozDev/mcp-search-server/catalog"
)

// Dispatch handles one decoded JSON-RPC request against a registry and
// returns the Response to encode back to the transport. It is shared by the
// line-framed and HTTP dispatchers (§9: "single registry + two transport
// adapters").
type Dispatch struct {
	Registry    *Registry
	ServerName  string
	ServerVersion string
}

// Registry is an alias for catalog.Registry, so both transports name the
// same shared registry type.
type Registry = catalog.Registry

func NewDispatch(registry *Registry, serverName, serverVersion string) *Dispatch {
	return &Dispatch{Registry: registry, ServerName: serverName, ServerVersion: serverVersion}
}

// Handle processes one Request and always returns a Response — transport
// errors are reported in-band (§4.8), never by panicking or returning nil.
func (d *Dispatch) Handle(ctx context.Context, req Request) Response {
	switch req.Method {
	case "initialize":
		return d.handleInitialize(req)
	case "ping":
		return Response{JSONRPC: "2.0", ID: req.ID, Result: map[string]interface{}{}}
	case "tools/list":
		return d.handleToolsList(req)
	case "tools/call":
		return d.handleToolsCall(ctx, req)
	default:
		return Response{JSONRPC: "2.0", ID: req.ID, Error: &RPCError{
			Code:    catalog.ErrorCodeMethodNotFound,
			Message: "method not found: " + req.Method,
		}}
	}
}

func (d *Dispatch) handleInitialize(req Request) Response {
	var params initializeParams
	_ = decodeParams(req.Params, &params)

	return Response{JSONRPC: "2.0", ID: req.ID, Result: initializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities:    buildCapabilities(),
		ServerInfo:      serverInfo{Name: d.ServerName, Version: d.ServerVersion},
	}}
}

func (d *Dispatch) handleToolsList(req Request) Response {
	descriptors := descriptorsFromRegistry(d.Registry)
	return Response{JSONRPC: "2.0", ID: req.ID, Result: map[string]interface{}{"tools": descriptors}}
}

func (d *Dispatch) handleToolsCall(ctx context.Context, req Request) Response {
	var params toolCallParams
	if err := decodeParams(req.Params, &params); err != nil {
		return Response{JSONRPC: "2.0", ID: req.ID, Error: &RPCError{
			Code: catalog.ErrorCodeInvalidParams, Message: "invalid tools/call params: " + err.Error(),
		}}
	}

	result, err := d.Registry.Execute(ctx, params.Name, catalog.Arguments(params.Arguments))
	if err != nil {
		blocks := []catalog.ContentBlock{catalog.ErrorBlock(params.Name, err)}
		return Response{JSONRPC: "2.0", ID: req.ID, Result: toolResult{Content: blocks, IsError: true}}
	}

	return Response{JSONRPC: "2.0", ID: req.ID, Result: toolResult{Content: catalog.EncodeResult(result)}}
}

func decodeParams(params interface{}, target interface{}) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}
