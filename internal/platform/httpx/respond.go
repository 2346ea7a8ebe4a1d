// Package httpx provides JSON request/response utilities for the API.
package httpx

import (
	"encoding/json"
	"net/http"
)

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Message sends the `{message}` envelope the SPA expects for simple outcomes.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]any{"message": message})
}

// Data sends the `{message, data}` envelope used by mutating endpoints.
func Data(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, map[string]any{"message": message, "data": data})
}

// List sends the `{data}` envelope used by table listings.
func List(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, map[string]any{"data": data})
}

// SessionExpired sends the 401 `{tipo, mensaje}` warning the SPA shows when a
// request arrives without a usable session.
func SessionExpired(w http.ResponseWriter) {
	JSON(w, http.StatusUnauthorized, map[string]string{
		"tipo":    "warning",
		"mensaje": "Tu sesión ha expirado. Por favor, inicia sesión nuevamente.",
	})
}

// DecodeJSON decodes the JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
