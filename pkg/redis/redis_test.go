package redis

import (
	"context"
	"testing"
	"time"
)

func TestMemory_RevokeToken(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if revoked, _ := store.IsRevoked(ctx, "jti-1"); revoked {
		t.Fatal("fresh token should not be revoked")
	}

	if err := store.RevokeToken(ctx, "jti-1", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if revoked, _ := store.IsRevoked(ctx, "jti-1"); !revoked {
		t.Error("expected token to be revoked")
	}
	if revoked, _ := store.IsRevoked(ctx, "jti-2"); revoked {
		t.Error("other tokens should not be revoked")
	}
}

func TestMemory_RevokeExpiresWithToken(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_ = store.RevokeToken(ctx, "short", 20*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	if revoked, _ := store.IsRevoked(ctx, "short"); revoked {
		t.Error("revocation should lapse once the token has expired")
	}

	_ = store.RevokeToken(ctx, "past", -time.Second)
	if revoked, _ := store.IsRevoked(ctx, "past"); revoked {
		t.Error("already expired tokens need no revocation")
	}
}
