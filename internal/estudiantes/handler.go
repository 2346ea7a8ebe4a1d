package estudiantes

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
	menuKey     = "configuracion-estudiante"
	menuLabel   = "ESTUDIANTES"
	moduloLabel = "CONFIGURACIÓN"
)

// Handler exposes the student file over HTTP.
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

// MountRoutes registers student routes. The save route serves both create
// and update, keyed on the presence of an id in the payload.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.index)
	r.Get("/{id}", h.show)
	r.Post("/", h.save)
	r.Delete("/{id}", h.destroy)
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	if err := h.checker.Check(r.Context(), menuKey, authz.ActionView); err != nil {
		authz.Respond(w, h.logger, err)
		return
	}

	ident := shared.IdentityFromContext(r.Context())
	estudiantes, err := h.service.Listar(r.Context(), ident.EmpresaID, r.URL.Query().Get("buscar"))
	if err != nil {
		httpx.RespondCrudError(w, h.logger, err, httpx.OpObtener, "estudiante")
		return
	}
	if estudiantes == nil {
		estudiantes = []Row{}
	}
	httpx.List(w, estudiantes)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	if err := h.checker.Check(r.Context(), menuKey, authz.ActionView); err != nil {
		authz.Respond(w, h.logger, err)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "Identificador inválido.")
		return
	}

	ident := shared.IdentityFromContext(r.Context())
	ficha, err := h.service.Obtener(r.Context(), id, ident.EmpresaID)
	if err != nil {
		httpx.RespondCrudError(w, h.logger, err, httpx.OpObtener, "estudiante")
		return
	}
	httpx.List(w, ficha)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Message(w, http.StatusBadRequest, "Solicitud inválida.")
		return
	}

	accion := authz.ActionNew
	op := httpx.OpCrear
	if in.ID != nil {
		accion = authz.ActionEdit
		op = httpx.OpActualizar
	}
	if err := h.checker.Check(r.Context(), menuKey, accion); err != nil {
		authz.Respond(w, h.logger, err)
		return
	}

	if err := h.validate.Struct(in); err != nil {
		httpx.RespondCrudError(w, h.logger, err, op, "estudiante")
		return
	}

	estudiante, created, err := h.service.Guardar(r.Context(), in)
	if err != nil {
		httpx.RespondCrudError(w, h.logger, err, op, "estudiante")
		return
	}
	if created {
		httpx.Data(w, http.StatusCreated, "Estudiante registrado correctamente.", estudiante)
		return
	}
	httpx.Data(w, http.StatusOK, "Estudiante actualizado correctamente.", estudiante)
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
		httpx.RespondCrudError(w, h.logger, err, httpx.OpEliminar, "estudiante")
		return
	}
	httpx.Message(w, http.StatusOK, "Estudiante eliminado correctamente.")
}
