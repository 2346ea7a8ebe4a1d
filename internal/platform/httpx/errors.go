package httpx

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors shared by the domain layer.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
)

// CRUD operation labels used to build user-facing messages.
const (
	OpCrear      = "crear"
	OpActualizar = "actualizar"
	OpEliminar   = "eliminar"
	OpObtener    = "obtener"
)

var crudMessages = map[string]string{
	OpCrear:      "Error al crear el %s. Por favor, verifica los datos e intenta nuevamente.",
	OpActualizar: "Error al actualizar el %s. Por favor, verifica los datos e intenta nuevamente.",
	OpEliminar:   "Error al eliminar el %s. Por favor, intenta nuevamente.",
	OpObtener:    "Error al cargar los datos del %s. Por favor, intenta nuevamente.",
}

// RespondCrudError maps an error from a CRUD operation to the JSON responses
// the frontend already understands. resource is the Spanish entity name
// ("área", "usuario").
func RespondCrudError(w http.ResponseWriter, logger *slog.Logger, err error, operation, resource string) {
	if logger != nil {
		logger.Error("api error", slog.String("operacion", operation), slog.String("recurso", resource), slog.Any("error", err))
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		JSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "Los datos proporcionados no son válidos.",
			"errors":  fields,
		})
		return
	}

	if errors.Is(err, ErrNotFound) || errors.Is(err, pgx.ErrNoRows) {
		Message(w, http.StatusNotFound, "El recurso solicitado no fue encontrado.")
		return
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			Message(w, http.StatusConflict, "Ya existe un registro con estos datos. Por favor, verifica la información.")
			return
		case "23503":
			Message(w, http.StatusConflict, "No se puede realizar esta acción porque el registro está siendo utilizado en otra parte del sistema.")
			return
		}
	}

	format, ok := crudMessages[operation]
	if !ok {
		Message(w, http.StatusInternalServerError, "Ha ocurrido un error. Por favor, intenta nuevamente.")
		return
	}
	Message(w, http.StatusInternalServerError, fmt.Sprintf(format, resource))
}
