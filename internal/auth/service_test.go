package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/coarapp/coar/internal/platform/httpx"
)

type stubRepo struct {
	users    map[string]*User
	permisos map[int64][]Permiso
}

func (s *stubRepo) FindByUsuarioOrEmail(ctx context.Context, login string) (*User, error) {
	if u, ok := s.users[login]; ok {
		return u, nil
	}
	return nil, httpx.ErrNotFound
}

func (s *stubRepo) FindByID(ctx context.Context, id int64) (*User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, httpx.ErrNotFound
}

func (s *stubRepo) ListPermisos(ctx context.Context, rolID int64) ([]Permiso, error) {
	return s.permisos[rolID], nil
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(h)
}

func TestAuthenticate(t *testing.T) {
	repo := &stubRepo{users: map[string]*User{
		"maria": {ID: 1, Usuario: "maria", PasswordHash: hash(t, "secreto1"), IDEmpresa: 1},
	}}
	service := NewService(repo)

	user, err := service.Authenticate(context.Background(), "maria", "secreto1")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("user id = %d", user.ID)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	repo := &stubRepo{users: map[string]*User{
		"maria": {ID: 1, Usuario: "maria", PasswordHash: hash(t, "secreto1")},
	}}
	service := NewService(repo)

	_, err := service.Authenticate(context.Background(), "maria", "otra")
	if !errors.Is(err, httpx.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestAuthenticateUnknownUser(t *testing.T) {
	service := NewService(&stubRepo{users: map[string]*User{}})

	_, err := service.Authenticate(context.Background(), "nadie", "x")
	if !errors.Is(err, httpx.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

// A suspended account fails with the same error as a wrong password so the
// response does not leak that the account exists.
func TestAuthenticateSuspended(t *testing.T) {
	repo := &stubRepo{users: map[string]*User{
		"maria": {ID: 1, Usuario: "maria", PasswordHash: hash(t, "secreto1"), FlSuspendido: true},
	}}
	service := NewService(repo)

	_, err := service.Authenticate(context.Background(), "maria", "secreto1")
	if !errors.Is(err, httpx.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestPermisosEmptyForSuperAndRoleless(t *testing.T) {
	rolID := int64(3)
	repo := &stubRepo{permisos: map[int64][]Permiso{
		rolID: {{Menu: "configuracion-area", View: true}},
	}}
	service := NewService(repo)
	ctx := context.Background()

	permisos, err := service.Permisos(ctx, &User{Tipo: "SUPER ADMINISTRADOR", IDRol: &rolID})
	if err != nil || len(permisos) != 0 {
		t.Fatalf("super: permisos = %v, err = %v", permisos, err)
	}
	permisos, err = service.Permisos(ctx, &User{})
	if err != nil || len(permisos) != 0 {
		t.Fatalf("roleless: permisos = %v, err = %v", permisos, err)
	}
	permisos, err = service.Permisos(ctx, &User{IDRol: &rolID})
	if err != nil || len(permisos) != 1 {
		t.Fatalf("regular: permisos = %v, err = %v", permisos, err)
	}
}
