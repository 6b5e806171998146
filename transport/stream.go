package transport

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log"
)

// StreamDispatcher serves the RPC surface over a paired duplex byte stream
// (stdio, a TCP connection, a pair of pipes): newline-delimited JSON-RPC
// messages in, newline-delimited JSON-RPC responses out (§4.6).
type StreamDispatcher struct {
	dispatch *Dispatch
}

func NewStreamDispatcher(registry *Registry, serverName, serverVersion string) *StreamDispatcher {
	return &StreamDispatcher{dispatch: NewDispatch(registry, serverName, serverVersion)}
}

// Serve reads one JSON-RPC request per line from r and writes one response
// per line to w, until r is exhausted or ctx is canceled. A malformed line
// gets a parse-error response; the loop continues (§4.6, §4.8).
func (d *StreamDispatcher) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("transport: malformed line-framed request: %v", err)
			resp := Response{JSONRPC: "2.0", Error: &RPCError{Code: -32700, Message: "parse error"}}
			if encErr := encoder.Encode(resp); encErr != nil {
				return encErr
			}
			continue
		}

		resp := d.dispatch.Handle(ctx, req)
		if err := encoder.Encode(resp); err != nil {
			return err
		}
	}
	return scanner.Err()
}
