package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWithRecoveryConvertsPanicTo500(t *testing.T) {
	h := withRecovery(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/vehicles", nil)
	w := httptest.NewRecorder()
	h(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != "Erro interno do servidor" {
		t.Fatalf("error message: got %v", body["error"])
	}
	if _, ok := body["timestamp"]; !ok {
		t.Fatal("500 envelope is missing the timestamp")
	}
}

func TestStatusWriterCapturesCode(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rec, status: http.StatusOK}

	sw.WriteHeader(http.StatusBadRequest)

	if sw.status != http.StatusBadRequest {
		t.Fatalf("captured status: got %d, want 400", sw.status)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("forwarded status: got %d, want 400", rec.Code)
	}
}
