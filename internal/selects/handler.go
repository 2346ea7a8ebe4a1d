package selects

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/platform/httpx"
	"github.com/coarapp/coar/internal/shared"
)

// Handler serves the dropdown endpoints. They require a session but no menu
// permission: every form in the SPA pulls from them.
type Handler struct {
	logger *slog.Logger
	pool   *pgxpool.Pool
	repo   *Repository
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, pool *pgxpool.Pool, repo *Repository) *Handler {
	return &Handler{logger: logger, pool: pool, repo: repo}
}

// MountRoutes registers the dropdown routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/tipos-personal", h.tenant(h.repo.TiposPersonal))
	r.Get("/areas", h.tenant(h.repo.Areas))
	r.Get("/lugares", h.tenant(h.repo.Lugares))
	r.Get("/tipos-incidencia", h.tenant(h.repo.TiposIncidencia))
	r.Get("/estados-monitoreo", h.estadosMonitoreo)
	r.Get("/tipos-documento", h.static(h.repo.TiposDocumento))
	r.Get("/proveedores", h.tenant(h.repo.Proveedores))
	r.Get("/ubigeos", h.static(h.repo.Ubigeos))
	r.Get("/personal", h.tenant(h.repo.Personal))
	r.Get("/roles", h.tenant(h.repo.Roles))
}

func (h *Handler) respond(w http.ResponseWriter, data []shared.Option, err error) {
	if err != nil {
		h.logger.Error("select query", slog.Any("error", err))
		httpx.Message(w, http.StatusInternalServerError, "Ha ocurrido un error. Por favor, intenta nuevamente.")
		return
	}
	httpx.JSON(w, http.StatusOK, data)
}

// identity resolves the session. These routes skip the per-menu permission
// check, so the anonymous rejection happens here instead of in authz.
func (h *Handler) identity(w http.ResponseWriter, r *http.Request) (*shared.Identity, bool) {
	ident := shared.IdentityFromContext(r.Context())
	if ident == nil {
		httpx.SessionExpired(w)
		return nil, false
	}
	return ident, true
}

func (h *Handler) tenant(query func(context.Context, db.DBTX, int64) ([]shared.Option, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := h.identity(w, r)
		if !ok {
			return
		}
		data, err := query(r.Context(), h.pool, ident.EmpresaID)
		h.respond(w, data, err)
	}
}

func (h *Handler) static(query func(context.Context, db.DBTX) ([]shared.Option, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := h.identity(w, r); !ok {
			return
		}
		data, err := query(r.Context(), h.pool)
		h.respond(w, data, err)
	}
}

func (h *Handler) estadosMonitoreo(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.identity(w, r)
	if !ok {
		return
	}
	data, err := h.repo.EstadosMonitoreo(r.Context(), h.pool, ident.EmpresaID, r.URL.Query().Get("tipo"))
	h.respond(w, data, err)
}
