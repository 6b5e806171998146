package session

import "testing"

func TestSessionKeyAndProtocolKeyAreNamespaced(t *testing.T) {
	if got, want := sessionKey("abc"), "mcp:session:abc"; got != want {
		t.Fatalf("sessionKey = %q, want %q", got, want)
	}
	if got, want := protocolKey("abc"), "mcp:session:abc:protocol"; got != want {
		t.Fatalf("protocolKey = %q, want %q", got, want)
	}
}

// The CreateSession/ValidateSession/ProtocolVersion/DeleteSession behavior
// of Redis is exercised against a live redis.Client and is not covered here:
// no fake or in-memory Redis implementation appears anywhere in the example
// corpus, and fabricating one would mean testing against a hand-rolled
// stand-in rather than the real github.com/redis/go-redis/v9 wire behavior.
// The key-naming helpers above are the only pure, deterministic logic in
// this file.
