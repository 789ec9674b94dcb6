package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"FirebiAPI/internal/config"
	"FirebiAPI/internal/gateway"
	"FirebiAPI/internal/handler"
	"FirebiAPI/internal/logger"
	"FirebiAPI/internal/registry"

	"github.com/google/uuid"
)

// New builds the request mux: the capability listing (which also handles
// unmatched paths), the health check, and one route per registered resource.
// The mux is returned rather than installed on http.DefaultServeMux so tests
// can run it on an httptest server.
func New(cfg *config.Config, svc *gateway.Service, reg *registry.Registry) http.Handler {
	wrap := func(h http.HandlerFunc) http.HandlerFunc {
		return withCORS(cfg.CORS.AllowOrigin, cfg.CORS.AllowCredentials, withLogging(withRecovery(h)))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", wrap(handler.Index(svc, reg)))
	mux.HandleFunc("/health", wrap(handler.Health(svc, reg)))
	for _, res := range reg.Resources() {
		mux.HandleFunc("/"+res.Path, wrap(handler.Resource(svc, res)))
	}
	return mux
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next(sw, r)
		fields := map[string]any{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     sw.status,
			"request_id": requestID,
		}
		switch {
		case sw.status >= 500:
			logger.Error("response", fields)
		case sw.status >= 400:
			logger.Warn("response", fields)
		default:
			logger.Info("response", fields)
		}
	}
}

// withRecovery turns a handler panic into the generic 500 envelope so no
// request can take the process down or leak a stack trace.
func withRecovery(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic_recovered", map[string]any{
					"path":  r.URL.Path,
					"panic": fmt.Sprint(rec),
				})
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error":     "Erro interno do servidor",
					"timestamp": time.Now().Format(time.RFC3339),
				})
			}
		}()
		next(w, r)
	}
}
