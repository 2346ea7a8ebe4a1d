package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/coarapp/coar/internal/shared"
)

func newTestTokens(t *testing.T) *shared.TokenStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return shared.NewTokenStore(client, time.Hour)
}

func identityProbe(out **shared.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*out = shared.IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewareResolvesIdentity(t *testing.T) {
	tokens := newTestTokens(t)
	rolID := int64(4)
	repo := &stubRepo{users: map[string]*User{
		"maria": {ID: 9, Usuario: "maria", Nombre: "María", Apellido: "Luna", IDRol: &rolID, IDEmpresa: 2},
	}}

	token, err := tokens.Issue(context.Background(), 9, 2)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var got *shared.Identity
	handler := Middleware(tokens, repo, nil)(identityProbe(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected identity in context")
	}
	if got.UserID != 9 || got.EmpresaID != 2 {
		t.Fatalf("identity = %+v", got)
	}
	if got.RolID == nil || *got.RolID != rolID {
		t.Fatalf("rol = %v, want %d", got.RolID, rolID)
	}
	if got.Nombre != "María Luna" {
		t.Fatalf("nombre = %q", got.Nombre)
	}
}

func TestMiddlewarePassesThroughWithoutToken(t *testing.T) {
	tokens := newTestTokens(t)
	var got *shared.Identity
	handler := Middleware(tokens, &stubRepo{users: map[string]*User{}}, nil)(identityProbe(&got))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got != nil {
		t.Fatalf("expected no identity, got %+v", got)
	}
}

func TestMiddlewareIgnoresUnknownToken(t *testing.T) {
	tokens := newTestTokens(t)
	var got *shared.Identity
	handler := Middleware(tokens, &stubRepo{users: map[string]*User{}}, nil)(identityProbe(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer deadbeef")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != nil {
		t.Fatalf("expected no identity, got %+v", got)
	}
}

// Suspension takes effect on the next request even if the token is valid.
func TestMiddlewareDropsSuspendedUser(t *testing.T) {
	tokens := newTestTokens(t)
	repo := &stubRepo{users: map[string]*User{
		"maria": {ID: 9, Usuario: "maria", FlSuspendido: true, IDEmpresa: 2},
	}}

	token, err := tokens.Issue(context.Background(), 9, 2)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var got *shared.Identity
	handler := Middleware(tokens, repo, nil)(identityProbe(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != nil {
		t.Fatalf("suspended user must not get an identity, got %+v", got)
	}
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if BearerToken(req) != "" {
		t.Fatal("missing header should yield empty token")
	}
	req.Header.Set("Authorization", "Basic abc")
	if BearerToken(req) != "" {
		t.Fatal("non-bearer scheme should yield empty token")
	}
	req.Header.Set("Authorization", "Bearer  abc123 ")
	if got := BearerToken(req); got != "abc123" {
		t.Fatalf("token = %q", got)
	}
}
