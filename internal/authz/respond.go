package authz

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/coarapp/coar/internal/platform/httpx"
)

// Respond writes the HTTP response for a failed Check. Denials (including the
// unauthenticated case) use the 401 `{tipo, mensaje}` body the SPA matches on;
// anything else is a lookup failure and maps to 500.
func Respond(w http.ResponseWriter, logger *slog.Logger, err error) {
	var denied *Denied
	if errors.As(err, &denied) {
		httpx.JSON(w, http.StatusUnauthorized, map[string]string{
			"tipo":    "warning",
			"mensaje": denied.Mensaje(),
		})
		return
	}
	if logger != nil {
		logger.Error("authz lookup", slog.Any("error", err))
	}
	httpx.Message(w, http.StatusInternalServerError, "Ha ocurrido un error. Por favor, intenta nuevamente.")
}
