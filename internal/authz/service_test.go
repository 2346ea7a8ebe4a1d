package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/coarapp/coar/internal/shared"
)

type stubRepo struct {
	grants map[string]map[Action]bool
	err    error
	calls  int
}

func (s *stubRepo) HasPermission(ctx context.Context, rolID int64, menu string, action Action) (bool, error) {
	s.calls++
	if s.err != nil {
		return false, s.err
	}
	return s.grants[menu][action], nil
}

func ctxWithIdentity(tipo string, rolID *int64) context.Context {
	return shared.ContextWithIdentity(context.Background(), &shared.Identity{
		UserID:    1,
		EmpresaID: 1,
		RolID:     rolID,
		Tipo:      tipo,
	})
}

func TestCheckDeniesWithoutIdentity(t *testing.T) {
	checker := NewChecker(&stubRepo{})

	err := checker.Check(context.Background(), "configuracion-area", ActionView)
	var denied *Denied
	if !errors.As(err, &denied) {
		t.Fatalf("expected Denied, got %v", err)
	}
	if denied.Menu != "configuracion-area" {
		t.Fatalf("denied menu = %q", denied.Menu)
	}
}

func TestCheckSuperBypassesLookup(t *testing.T) {
	repo := &stubRepo{err: errors.New("must not be called")}
	checker := NewChecker(repo)

	for _, tipo := range []string{shared.TipoSuperAdministrador, shared.TipoSuperUsuario} {
		if err := checker.Check(ctxWithIdentity(tipo, nil), "configuracion-area", ActionDelete); err != nil {
			t.Fatalf("%s: unexpected error %v", tipo, err)
		}
	}
	if repo.calls != 0 {
		t.Fatalf("repository consulted %d times for super users", repo.calls)
	}
}

func TestCheckDeniesWithoutRole(t *testing.T) {
	checker := NewChecker(&stubRepo{})

	err := checker.Check(ctxWithIdentity("NORMAL", nil), "configuracion-area", ActionView)
	var denied *Denied
	if !errors.As(err, &denied) {
		t.Fatalf("expected Denied for user without role, got %v", err)
	}
}

func TestCheckPerAction(t *testing.T) {
	rolID := int64(7)
	repo := &stubRepo{grants: map[string]map[Action]bool{
		"configuracion-area": {ActionView: true, ActionEdit: true},
	}}
	checker := NewChecker(repo)
	ctx := ctxWithIdentity("NORMAL", &rolID)

	if err := checker.Check(ctx, "configuracion-area", ActionEdit); err != nil {
		t.Fatalf("edit should be granted: %v", err)
	}
	err := checker.Check(ctx, "configuracion-area", ActionDelete)
	var denied *Denied
	if !errors.As(err, &denied) {
		t.Fatalf("delete should be denied, got %v", err)
	}
	if denied.Action != ActionDelete {
		t.Fatalf("denied action = %v", denied.Action)
	}
}

func TestCheckIsRepeatable(t *testing.T) {
	rolID := int64(7)
	repo := &stubRepo{grants: map[string]map[Action]bool{
		"operacion-incidencias": {ActionView: true},
	}}
	checker := NewChecker(repo)
	ctx := ctxWithIdentity("NORMAL", &rolID)

	for i := 0; i < 3; i++ {
		if err := checker.Check(ctx, "operacion-incidencias", ActionView); err != nil {
			t.Fatalf("iteration %d: %v", i, err)
		}
	}
	if repo.calls != 3 {
		t.Fatalf("expected a fresh lookup per call, got %d", repo.calls)
	}
}

func TestCheckPropagatesLookupError(t *testing.T) {
	rolID := int64(7)
	lookupErr := errors.New("db down")
	checker := NewChecker(&stubRepo{err: lookupErr})

	err := checker.Check(ctxWithIdentity("NORMAL", &rolID), "configuracion-area", ActionView)
	if !errors.Is(err, lookupErr) {
		t.Fatalf("expected lookup error, got %v", err)
	}
	var denied *Denied
	if errors.As(err, &denied) {
		t.Fatal("lookup failure must not be reported as a denial")
	}
}

func TestDeniedMensaje(t *testing.T) {
	d := &Denied{Menu: "configuracion-usuario", Action: ActionNew}
	want := "No tienes permisos suficientes para <strong>configuracion-usuario</strong> NUEVO"
	if got := d.Mensaje(); got != want {
		t.Fatalf("mensaje = %q, want %q", got, want)
	}
}
