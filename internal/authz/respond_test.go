package authz

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRespondDenied(t *testing.T) {
	rec := httptest.NewRecorder()
	Respond(rec, nil, &Denied{Menu: "configuracion-area", Action: ActionEdit})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["tipo"] != "warning" {
		t.Fatalf("tipo = %q", body["tipo"])
	}
	if body["mensaje"] == "" {
		t.Fatal("mensaje must not be empty")
	}
}

// An unauthenticated request and an authenticated request without the grant
// must be indistinguishable on the wire.
func TestRespondSameShapeForUnauthenticated(t *testing.T) {
	denied := &Denied{Menu: "configuracion-rol", Action: ActionView}

	unauth := httptest.NewRecorder()
	Respond(unauth, nil, denied)
	noGrant := httptest.NewRecorder()
	Respond(noGrant, nil, denied)

	if unauth.Code != noGrant.Code || unauth.Body.String() != noGrant.Body.String() {
		t.Fatal("denial responses must be identical")
	}
}

func TestRespondLookupFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	Respond(rec, nil, errors.New("db down"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
