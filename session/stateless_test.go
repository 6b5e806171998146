package session

import (
	"context"
	"testing"
	"time"
)

func TestStatelessRoundTrip(t *testing.T) {
	m, err := NewStatelessWithGeneratedKey(time.Minute)
	if err != nil {
		t.Fatalf("NewStatelessWithGeneratedKey: %v", err)
	}
	ctx := context.Background()

	id, err := m.CreateSession(ctx, "2025-06-18")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	valid, err := m.ValidateSession(ctx, id)
	if err != nil || !valid {
		t.Fatalf("expected a freshly minted session to validate, got valid=%v err=%v", valid, err)
	}

	version, err := m.ProtocolVersion(ctx, id)
	if err != nil || version != "2025-06-18" {
		t.Fatalf("ProtocolVersion = %q, %v", version, err)
	}
}

func TestStatelessRejectsTamperedToken(t *testing.T) {
	m, err := NewStatelessWithGeneratedKey(time.Minute)
	if err != nil {
		t.Fatalf("NewStatelessWithGeneratedKey: %v", err)
	}
	ctx := context.Background()

	id, err := m.CreateSession(ctx, "2025-06-18")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	tampered := id + "x"
	if valid, _ := m.ValidateSession(ctx, tampered); valid {
		t.Fatal("expected a tampered token to fail validation")
	}
}

func TestStatelessExpiredTokenFailsValidation(t *testing.T) {
	m, err := NewStatelessWithGeneratedKey(-time.Second)
	if err != nil {
		t.Fatalf("NewStatelessWithGeneratedKey: %v", err)
	}
	ctx := context.Background()

	id, err := m.CreateSession(ctx, "2025-06-18")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	valid, err := m.ValidateSession(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if valid {
		t.Fatal("expected an already-expired session to be invalid")
	}
}

func TestStatelessDifferentKeysDoNotCrossValidate(t *testing.T) {
	a, _ := NewStatelessWithGeneratedKey(time.Minute)
	b, _ := NewStatelessWithGeneratedKey(time.Minute)
	ctx := context.Background()

	id, err := a.CreateSession(ctx, "2025-06-18")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if valid, _ := b.ValidateSession(ctx, id); valid {
		t.Fatal("a token signed by one key must not validate against another")
	}
}
