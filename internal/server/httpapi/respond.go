package httpapi

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeUnauthorized is the single rejection surface for every domain error:
// duplicate registration, bad credentials, and bad or stale tokens all look
// identical from the outside.
func writeUnauthorized(w http.ResponseWriter) {
	respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
}

func writeInternalError(w http.ResponseWriter) {
	respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func writeValidationError(w http.ResponseWriter, fields map[string]string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fields})
}
