package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestRespondCrudErrorValidation(t *testing.T) {
	validate := validator.New()
	err := validate.Struct(struct {
		Nombre string `validate:"required"`
	}{})
	if err == nil {
		t.Fatal("expected a validation error")
	}

	rec := httptest.NewRecorder()
	RespondCrudError(rec, nil, err, OpCrear, "área")

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	body := decodeBody(t, rec)
	fields, ok := body["errors"].(map[string]any)
	if !ok || fields["Nombre"] != "required" {
		t.Fatalf("errors = %v", body["errors"])
	}
}

func TestRespondCrudErrorNotFound(t *testing.T) {
	for _, err := range []error{ErrNotFound, pgx.ErrNoRows} {
		rec := httptest.NewRecorder()
		RespondCrudError(rec, nil, err, OpObtener, "área")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status for %v = %d, want 404", err, rec.Code)
		}
	}
}

func TestRespondCrudErrorUniqueViolation(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondCrudError(rec, nil, &pgconn.PgError{Code: "23505"}, OpCrear, "usuario")

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestRespondCrudErrorForeignKeyViolation(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondCrudError(rec, nil, &pgconn.PgError{Code: "23503"}, OpEliminar, "área")

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestRespondCrudErrorFallbackMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondCrudError(rec, nil, errors.New("boom"), OpActualizar, "lugar")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := decodeBody(t, rec)
	want := "Error al actualizar el lugar. Por favor, verifica los datos e intenta nuevamente."
	if body["message"] != want {
		t.Fatalf("message = %q", body["message"])
	}
}
