package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestStreamDispatcherHandlesRequestPerLine(t *testing.T) {
	d := NewStreamDispatcher(registryWithOneTool(), "test-server", "0.0.1")

	in := strings.NewReader(
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}` + "\n" +
			`{"jsonrpc":"2.0","id":2,"method":"tools/list"}` + "\n",
	)
	var out bytes.Buffer

	if err := d.Serve(context.Background(), in, &out); err != nil {
		t.Fatalf("Serve: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 response lines, got %d: %q", len(lines), out.String())
	}

	var first Response
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("unmarshal first response: %v", err)
	}
	if first.Error != nil {
		t.Fatalf("unexpected error in first response: %+v", first.Error)
	}
}

func TestStreamDispatcherSurvivesMalformedLine(t *testing.T) {
	d := NewStreamDispatcher(registryWithOneTool(), "test-server", "0.0.1")

	in := strings.NewReader(
		"not json\n" +
			`{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n",
	)
	var out bytes.Buffer

	if err := d.Serve(context.Background(), in, &out); err != nil {
		t.Fatalf("Serve: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 response lines (one parse error, one ping), got %d: %q", len(lines), out.String())
	}

	var parseErrResp, pingResp Response
	if err := json.Unmarshal([]byte(lines[0]), &parseErrResp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parseErrResp.Error == nil || parseErrResp.Error.Code != -32700 {
		t.Fatalf("expected a parse error for the malformed line, got %+v", parseErrResp.Error)
	}

	if err := json.Unmarshal([]byte(lines[1]), &pingResp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if pingResp.Error != nil {
		t.Fatalf("expected ping to succeed after a malformed line, got %+v", pingResp.Error)
	}
}
