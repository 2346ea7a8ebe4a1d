package shared

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) *TokenStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenStore(client, time.Hour)
}

func TestTokenIssueAndResolve(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	token, err := store.Issue(ctx, 42, 7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatal("token must not be empty")
	}

	userID, empresaID, err := store.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if userID != 42 || empresaID != 7 {
		t.Fatalf("resolved %d/%d, want 42/7", userID, empresaID)
	}
}

func TestTokenResolveUnknown(t *testing.T) {
	store := newTestStore(t)

	_, _, err := store.Resolve(context.Background(), "no-such-token")
	if !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
	_, _, err = store.Resolve(context.Background(), "")
	if !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("empty token: expected ErrTokenNotFound, got %v", err)
	}
}

func TestTokenRevoke(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	token, err := store.Issue(ctx, 1, 1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := store.Revoke(ctx, token); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, _, err := store.Resolve(ctx, token); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected revoked token to be unknown, got %v", err)
	}
	// Revoking again is not an error.
	if err := store.Revoke(ctx, token); err != nil {
		t.Fatalf("second revoke: %v", err)
	}
}

func TestTokensAreUnique(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		token, err := store.Issue(ctx, int64(i), 1)
		if err != nil {
			t.Fatalf("issue %d: %v", i, err)
		}
		if seen[token] {
			t.Fatalf("duplicate token on iteration %d", i)
		}
		seen[token] = true
	}
}
