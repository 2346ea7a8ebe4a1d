package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/coarapp/coar/internal/platform/httpx"
	"github.com/coarapp/coar/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	tokens   *shared.TokenStore
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, tokens *shared.TokenStore) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	r.Get("/me", h.me)
}

type loginRequest struct {
	Login    string `json:"usuario" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "Solicitud inválida.")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondCrudError(w, h.logger, err, httpx.OpObtener, "usuario")
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, httpx.ErrInvalidCredentials) {
			httpx.Message(w, http.StatusUnauthorized, "Usuario o contraseña incorrectos.")
			return
		}
		httpx.RespondCrudError(w, h.logger, err, httpx.OpObtener, "usuario")
		return
	}

	token, err := h.tokens.Issue(r.Context(), user.ID, user.IDEmpresa)
	if err != nil {
		h.logger.Error("issue token", slog.Any("error", err))
		httpx.Message(w, http.StatusInternalServerError, "Ha ocurrido un error. Por favor, intenta nuevamente.")
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"message": "Sesión iniciada correctamente",
		"user":    user,
		"token":   token,
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.tokens.Revoke(r.Context(), BearerToken(r)); err != nil {
		h.logger.Warn("revoke token", slog.Any("error", err))
	}
	httpx.Message(w, http.StatusOK, "Sesión cerrada correctamente")
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	if user == nil {
		httpx.SessionExpired(w)
		return
	}

	permisos, err := h.service.Permisos(r.Context(), user)
	if err != nil {
		httpx.RespondCrudError(w, h.logger, err, httpx.OpObtener, "usuario")
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"user":     user,
		"permisos": permisos,
	})
}
