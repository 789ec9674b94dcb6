package handler

import (
	"errors"
	"net/http"

	"FirebiAPI/internal/gateway"
	"FirebiAPI/internal/logger"
	"FirebiAPI/internal/registry"
)

// Resource returns the GET handler for one registered resource. Every
// resource shares this code path; the registry entry supplies the backing
// collection name.
func Resource(svc *gateway.Service, res registry.Resource) http.HandlerFunc {
	endpoint := "/" + res.Path
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			logger.Warn("method_not_allowed", map[string]any{
				"endpoint": endpoint,
				"method":   r.Method,
			})
			writeClientError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
			return
		}

		enterpriseID := r.URL.Query().Get("enterpriseId")
		if enterpriseID == "" {
			logger.Warn("missing_enterprise_id", map[string]any{"endpoint": endpoint})
			writeClientError(w, http.StatusBadRequest, msgTenantRequired)
			return
		}

		env, err := svc.Fetch(r.Context(), res.Collection, enterpriseID)
		if err != nil {
			if errors.Is(err, gateway.ErrTenantRequired) {
				writeClientError(w, http.StatusBadRequest, msgTenantRequired)
				return
			}
			logger.Error("fetch_failed", map[string]any{
				"endpoint": endpoint,
				"error":    err.Error(),
			})
			writeServerError(w)
			return
		}

		writeJSON(w, http.StatusOK, env)
	}
}
