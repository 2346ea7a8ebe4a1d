package shared

import "context"

// User types that bypass the permission table entirely.
const (
	TipoSuperAdministrador = "SUPER ADMINISTRADOR"
	TipoSuperUsuario       = "SUPER USUARIO"
)

// Identity describes the authenticated actor for the current request. It is
// built once by the auth middleware and carried in the request context; it is
// never stored in package state so concurrent requests cannot observe each
// other's identity.
type Identity struct {
	UserID    int64
	EmpresaID int64
	RolID     *int64
	Tipo      string
	Nombre    string
}

// IsSuper reports whether the identity bypasses permission checks.
func (i *Identity) IsSuper() bool {
	if i == nil {
		return false
	}
	return i.Tipo == TipoSuperAdministrador || i.Tipo == TipoSuperUsuario
}

type identityContextKey struct{}

// ContextWithIdentity stores the identity in context.
func ContextWithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, ident)
}

// IdentityFromContext extracts the identity from context. Returns nil when the
// request is unauthenticated.
func IdentityFromContext(ctx context.Context) *Identity {
	ident, _ := ctx.Value(identityContextKey{}).(*Identity)
	return ident
}
