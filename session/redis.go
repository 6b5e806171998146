package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Redis is the distributed session Manager: sessions are stored centrally
// so they can be revoked or shared across processes, at the cost of a
// required external dependency. It has no operation to list sessions. Use it when Stateless's "no
// revocation before expiry" trade-off is unacceptable.
type Redis struct {
	client     *redis.Client
	sessionTTL time.Duration
}

// NewRedis builds a Redis-backed session manager against an already
// constructed client.
func NewRedis(client *redis.Client, sessionTTL time.Duration) *Redis {
	return &Redis{client: client, sessionTTL: sessionTTL}
}

func (m *Redis) CreateSession(ctx context.Context, protocolVersion string) (string, error) {
	sessionID := uuid.NewString()

	key := sessionKey(sessionID)
	protoKey := protocolKey(sessionID)

	pipe := m.client.Pipeline()
	pipe.Set(ctx, key, time.Now().Unix(), m.sessionTTL)
	pipe.Set(ctx, protoKey, protocolVersion, m.sessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("create session in redis: %w", err)
	}
	return sessionID, nil
}

func (m *Redis) ValidateSession(ctx context.Context, sessionID string) (bool, error) {
	key := sessionKey(sessionID)

	exists, err := m.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	if exists == 0 {
		return false, nil
	}

	if err := m.client.Set(ctx, key, time.Now().Unix(), m.sessionTTL).Err(); err != nil {
		return false, fmt.Errorf("refresh session: %w", err)
	}
	return true, nil
}

func (m *Redis) ProtocolVersion(ctx context.Context, sessionID string) (string, error) {
	version, err := m.client.Get(ctx, protocolKey(sessionID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get protocol version: %w", err)
	}
	return version, nil
}

func (m *Redis) DeleteSession(ctx context.Context, sessionID string) error {
	pipe := m.client.Pipeline()
	pipe.Del(ctx, sessionKey(sessionID))
	pipe.Del(ctx, protocolKey(sessionID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// CleanupExpired is a no-op: Redis expires keys by TTL on its own.
func (m *Redis) CleanupExpired(ctx context.Context, maxIdle time.Duration) error { return nil }

func sessionKey(id string) string  { return "mcp:session:" + id }
func protocolKey(id string) string { return "mcp:session:" + id + ":protocol" }

var _ Manager = (*Redis)(nil)
