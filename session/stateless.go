package session

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Stateless is the default session Manager: a signed, self-contained token
// requiring no external storage. It scales horizontally without
// coordination at the cost of not being revocable before expiry.
type Stateless struct {
	signingKey []byte
	ttl        time.Duration
}

type claims struct {
	Protocol  string `json:"protocol"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// NewStateless builds a Stateless manager from an explicit signing key
// (at least 32 bytes recommended, shared across instances in a cluster).
func NewStateless(signingKey []byte, ttl time.Duration) *Stateless {
	return &Stateless{signingKey: signingKey, ttl: ttl}
}

// NewStatelessWithGeneratedKey generates a random signing key, suitable for
// single-process deployments where cross-instance validation doesn't
// matter.
func NewStatelessWithGeneratedKey(ttl time.Duration) (*Stateless, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}
	return NewStateless(key, ttl), nil
}

func (m *Stateless) CreateSession(ctx context.Context, protocolVersion string) (string, error) {
	now := time.Now()
	c := claims{Protocol: protocolVersion, IssuedAt: now.Unix(), ExpiresAt: now.Add(m.ttl).Unix()}

	header := []byte(`{"alg":"HS256","typ":"JWT"}`)
	payload, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}

	headerEnc := base64.RawURLEncoding.EncodeToString(header)
	payloadEnc := base64.RawURLEncoding.EncodeToString(payload)
	message := headerEnc + "." + payloadEnc
	return message + "." + m.sign(message), nil
}

func (m *Stateless) ValidateSession(ctx context.Context, sessionID string) (bool, error) {
	c, err := m.decode(sessionID)
	if err != nil {
		return false, nil
	}
	return time.Now().Unix() <= c.ExpiresAt, nil
}

func (m *Stateless) ProtocolVersion(ctx context.Context, sessionID string) (string, error) {
	c, err := m.decode(sessionID)
	if err != nil {
		return "", err
	}
	return c.Protocol, nil
}

// DeleteSession is a no-op: stateless tokens expire on their own and cannot
// be revoked early.
func (m *Stateless) DeleteSession(ctx context.Context, sessionID string) error { return nil }

// CleanupExpired is a no-op for the same reason.
func (m *Stateless) CleanupExpired(ctx context.Context, maxIdle time.Duration) error { return nil }

func (m *Stateless) decode(sessionID string) (claims, error) {
	parts := strings.Split(sessionID, ".")
	if len(parts) != 3 {
		return claims{}, fmt.Errorf("malformed session token")
	}
	message := parts[0] + "." + parts[1]
	if m.sign(message) != parts[2] {
		return claims{}, fmt.Errorf("invalid session signature")
	}
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return claims{}, fmt.Errorf("decode claims: %w", err)
	}
	var c claims
	if err := json.Unmarshal(raw, &c); err != nil {
		return claims{}, fmt.Errorf("unmarshal claims: %w", err)
	}
	return c, nil
}

func (m *Stateless) sign(message string) string {
	h := hmac.New(sha256.New, m.signingKey)
	h.Write([]byte(message))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

var _ Manager = (*Stateless)(nil)
