package lugares

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/coarapp/coar/internal/authz"
	"github.com/coarapp/coar/internal/platform/httpx"
	"github.com/coarapp/coar/internal/shared"
)

const (
	menuKey     = "configuracion-lugar"
	menuLabel   = "LUGAR"
	moduloLabel = "CONFIGURACIÓN"
)

// Handler exposes the lugar catalog over HTTP.
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

// MountRoutes registers catalog routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.index)
	r.Post("/", h.store)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.destroy)
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	if err := h.checker.Check(r.Context(), menuKey, authz.ActionView); err != nil {
		authz.Respond(w, h.logger, err)
		return
	}

	ident := shared.IdentityFromContext(r.Context())
	lugares, err := h.service.Listar(r.Context(), ident.EmpresaID)
	if err != nil {
		httpx.RespondCrudError(w, h.logger, err, httpx.OpObtener, "lugar")
		return
	}
	if lugares == nil {
		lugares = []Lugar{}
	}
	httpx.List(w, lugares)
}

func (h *Handler) store(w http.ResponseWriter, r *http.Request) {
	if err := h.checker.Check(r.Context(), menuKey, authz.ActionNew); err != nil {
		authz.Respond(w, h.logger, err)
		return
	}

	var in Input
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Message(w, http.StatusBadRequest, "Solicitud inválida.")
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.RespondCrudError(w, h.logger, err, httpx.OpCrear, "lugar")
		return
	}

	lugar, err := h.service.Crear(r.Context(), in)
	if err != nil {
		httpx.RespondCrudError(w, h.logger, err, httpx.OpCrear, "lugar")
		return
	}
	httpx.Data(w, http.StatusCreated, "Lugar registrado correctamente.", lugar)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	if err := h.checker.Check(r.Context(), menuKey, authz.ActionEdit); err != nil {
		authz.Respond(w, h.logger, err)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "Identificador inválido.")
		return
	}

	var in Input
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Message(w, http.StatusBadRequest, "Solicitud inválida.")
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.RespondCrudError(w, h.logger, err, httpx.OpActualizar, "lugar")
		return
	}

	lugar, err := h.service.Actualizar(r.Context(), id, in)
	if err != nil {
		httpx.RespondCrudError(w, h.logger, err, httpx.OpActualizar, "lugar")
		return
	}
	httpx.Data(w, http.StatusOK, "Lugar actualizado correctamente.", lugar)
}

func (h *Handler) destroy(w http.ResponseWriter, r *http.Request) {
	if err := h.checker.Check(r.Context(), menuKey, authz.ActionDelete); err != nil {
		authz.Respond(w, h.logger, err)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "Identificador inválido.")
		return
	}

	if err := h.service.Eliminar(r.Context(), id); err != nil {
		httpx.RespondCrudError(w, h.logger, err, httpx.OpEliminar, "lugar")
		return
	}
	httpx.Message(w, http.StatusOK, "Lugar eliminado correctamente.")
}
