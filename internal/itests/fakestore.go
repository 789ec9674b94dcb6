package itests

import (
	"context"
	"net/http/httptest"

	"FirebiAPI/internal/config"
	"FirebiAPI/internal/gateway"
	"FirebiAPI/internal/registry"
	"FirebiAPI/internal/router"
	"FirebiAPI/internal/store"
)

type probe struct {
	collection string
	field      string
	value      string
}

// fakeStore stands in for Firestore: canned documents per collection/field
// pair, plus a log of every probe for call-count assertions.
type fakeStore struct {
	probes []probe
	docs   map[string][]store.Document
	errs   map[string]error
}

func key(collection, field string) string {
	return collection + "/" + field
}

func (f *fakeStore) Query(ctx context.Context, collection, field, value string, limit int, window store.Window) ([]store.Document, error) {
	f.probes = append(f.probes, probe{collection: collection, field: field, value: value})
	if err, ok := f.errs[key(collection, field)]; ok {
		return nil, err
	}
	docs := f.docs[key(collection, field)]
	if len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// newTestServer wires the full HTTP stack (router, middleware, handlers,
// gateway) around the given store, with the default resource registry.
func newTestServer(st store.Querier) (*httptest.Server, error) {
	cfg := &config.Config{
		CORS: config.CORSConfig{AllowOrigin: "*", AllowCredentials: true},
	}
	reg, err := registry.Init("")
	if err != nil {
		return nil, err
	}
	svc := gateway.New(st, config.DefaultTenantFields, 100, store.Window{}, nil)
	return httptest.NewServer(router.New(cfg, svc, reg)), nil
}
