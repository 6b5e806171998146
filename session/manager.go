// Package session manages HTTP transport session lifecycle: minting a
// session identifier on initialize, validating it on subsequent requests,
// and tracking the protocol version each session negotiated.
package session

import (
	"context"
	"time"
)

// Manager owns in-flight HTTP sessions (§4.7). Two implementations are
// provided: Stateless (HMAC-signed token, default, no external storage) and
// Redis (distributed, supports revocation via DeleteSession; neither
// implementation can list sessions).
type Manager interface {
	CreateSession(ctx context.Context, protocolVersion string) (sessionID string, err error)
	ValidateSession(ctx context.Context, sessionID string) (valid bool, err error)
	ProtocolVersion(ctx context.Context, sessionID string) (version string, err error)
	DeleteSession(ctx context.Context, sessionID string) error
	CleanupExpired(ctx context.Context, maxIdle time.Duration) error
}
