package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"FirebiAPI/internal/logger"
)

// User-visible error messages, kept in the upstream consumers' language.
const (
	msgTenantRequired   = "enterpriseId é obrigatório"
	msgNotFound         = "Endpoint não encontrado"
	msgMethodNotAllowed = "Método não permitido"
	msgInternalError    = "Erro interno do servidor"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("write_response_failed", map[string]any{"error": err.Error()})
	}
}

func writeClientError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

func writeServerError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"error":     msgInternalError,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
