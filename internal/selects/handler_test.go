package selects

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	NewHandler(logger, nil, NewRepository()).MountRoutes(r)
	return r
}

// The dropdown routes carry no per-menu permission check, so they must reject
// anonymous requests themselves instead of reaching the tenant query.
func TestSelectsRejectAnonymousRequests(t *testing.T) {
	router := newTestRouter(t)

	paths := []string{
		"/tipos-personal", "/areas", "/lugares", "/tipos-incidencia",
		"/estados-monitoreo", "/tipos-documento", "/proveedores",
		"/ubigeos", "/personal", "/roles",
	}
	for _, path := range paths {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s status = %d, want 401", path, rec.Code)
			continue
		}
		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("GET %s decode body: %v", path, err)
		}
		if body["tipo"] != "warning" || body["mensaje"] == "" {
			t.Errorf("GET %s body = %v", path, body)
		}
	}
}
