package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/coarapp/coar/internal/shared"
)

type userContextKey struct{}

// UserFromContext returns the full user row resolved by Middleware, if any.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*User)
	return user, ok
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// Middleware resolves the bearer token into a fresh identity for each request.
// The user row is re-read so suspensions and role changes take effect on the
// very next call. Unauthenticated requests pass through with no identity in
// context; the authorization gate denies them later.
func Middleware(tokens *shared.TokenStore, repo Repository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, _, err := tokens.Resolve(r.Context(), token)
			if err != nil {
				if !errors.Is(err, shared.ErrTokenNotFound) && logger != nil {
					logger.Error("resolve token", slog.Any("error", err))
				}
				next.ServeHTTP(w, r)
				return
			}

			user, err := repo.FindByID(r.Context(), userID)
			if err != nil || user.FlSuspendido {
				next.ServeHTTP(w, r)
				return
			}

			ident := &shared.Identity{
				UserID:    user.ID,
				EmpresaID: user.IDEmpresa,
				RolID:     user.IDRol,
				Tipo:      user.Tipo,
				Nombre:    strings.TrimSpace(user.Nombre + " " + user.Apellido),
			}
			ctx := shared.ContextWithIdentity(r.Context(), ident)
			ctx = context.WithValue(ctx, userContextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
