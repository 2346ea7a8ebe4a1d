package centinela

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/coarapp/coar/internal/authz"
	"github.com/coarapp/coar/internal/platform/httpx"
	"github.com/coarapp/coar/internal/shared"
)

const (
	menuKey = "reportes-movimiento-informacion"
)

// Handler serves the movimiento de información report.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	checker  *authz.Checker
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, checker *authz.Checker) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		checker:  checker,
		validate: validator.New(),
	}
}

// MountRoutes registers report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/movimiento-informacion", h.movimientos)
}

type movimientosQuery struct {
	FechaInicio string `validate:"required,datetime=2006-01-02"`
	FechaFin    string `validate:"required,datetime=2006-01-02"`
}

func (h *Handler) movimientos(w http.ResponseWriter, r *http.Request) {
	if err := h.checker.Check(r.Context(), menuKey, authz.ActionView); err != nil {
		authz.Respond(w, h.logger, err)
		return
	}

	query := movimientosQuery{
		FechaInicio: strings.TrimSpace(r.URL.Query().Get("fecha_inicio")),
		FechaFin:    strings.TrimSpace(r.URL.Query().Get("fecha_fin")),
	}
	if err := h.validate.Struct(query); err != nil {
		httpx.RespondCrudError(w, h.logger, err, httpx.OpObtener, "movimiento")
		return
	}

	desde, _ := time.Parse("2006-01-02", query.FechaInicio)
	hasta, _ := time.Parse("2006-01-02", query.FechaFin)
	// Include the whole closing day.
	hasta = hasta.Add(24*time.Hour - time.Nanosecond)

	ident := shared.IdentityFromContext(r.Context())
	movimientos, err := h.service.Listar(r.Context(), ident.EmpresaID, desde, hasta)
	if err != nil {
		httpx.RespondCrudError(w, h.logger, err, httpx.OpObtener, "movimiento")
		return
	}
	if movimientos == nil {
		movimientos = []Movimiento{}
	}

	httpx.Data(w, http.StatusOK, "Movimientos obtenidos", movimientos)
}
