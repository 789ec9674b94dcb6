package handler

import (
	"net/http"
	"time"

	"FirebiAPI/internal/gateway"
	"FirebiAPI/internal/registry"
)

const (
	apiName    = "Firebase BI API"
	apiVersion = "3.2.0"
)

func firebaseStatus(svc *gateway.Service) string {
	if svc.Connected() {
		return gateway.StatusConnected
	}
	return gateway.StatusDisconnected
}

// Index serves the capability listing on "/" and doubles as the fallback for
// unmatched paths, which get the 404 payload with the available endpoints.
func Index(svc *gateway.Service, reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"error":               msgNotFound,
				"available_endpoints": reg.Endpoints(),
				"total_endpoints":     len(reg.Endpoints()),
			})
			return
		}

		endpoints := map[string]string{
			"/health": "Health check",
		}
		for _, res := range reg.Resources() {
			endpoints["/"+res.Path] = res.Description
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"name":            apiName,
			"version":         apiVersion,
			"environment":     "production",
			"description":     "APIs de leitura BI sobre Firestore, escopadas por enterpriseId",
			"firebase_status": firebaseStatus(svc),
			"total_endpoints": len(reg.Endpoints()),
			"endpoints":       endpoints,
			"usage":           "/{endpoint}?enterpriseId=<id>",
			"field_tested":    svc.TenantFields(),
			"timestamp":       time.Now().Format(time.RFC3339),
		})
	}
}

// Health is the static liveness endpoint.
func Health(svc *gateway.Service, reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":      "healthy",
			"environment": "production",
			"firebase":    firebaseStatus(svc),
			"total_apis":  len(reg.Resources()),
			"timestamp":   time.Now().Format(time.RFC3339),
		})
	}
}
