package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/coarapp/coar/internal/platform/httpx"
	"github.com/coarapp/coar/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate validates login/password credentials. Suspended users are
// rejected with the same error as a wrong password.
func (s *Service) Authenticate(ctx context.Context, login, password string) (*User, error) {
	user, err := s.repo.FindByUsuarioOrEmail(ctx, login)
	if err != nil {
		return nil, httpx.ErrInvalidCredentials
	}
	if user.FlSuspendido {
		return nil, httpx.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, httpx.ErrInvalidCredentials
	}
	return user, nil
}

// Permisos returns the permission rows for the /me payload. Super users and
// users without a role get an empty list; the former bypass checks anyway.
func (s *Service) Permisos(ctx context.Context, user *User) ([]Permiso, error) {
	if user == nil || user.IDRol == nil {
		return []Permiso{}, nil
	}
	if user.Tipo == shared.TipoSuperAdministrador || user.Tipo == shared.TipoSuperUsuario {
		return []Permiso{}, nil
	}
	permisos, err := s.repo.ListPermisos(ctx, *user.IDRol)
	if err != nil {
		return nil, err
	}
	if permisos == nil {
		permisos = []Permiso{}
	}
	return permisos, nil
}
