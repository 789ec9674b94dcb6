package gateway

import (
	"context"
	"errors"
	"strings"
	"time"

	"FirebiAPI/internal/logger"
	"FirebiAPI/internal/store"
)

// ErrTenantRequired is returned before any store call when the tenant
// identifier is missing.
var ErrTenantRequired = errors.New("enterpriseId é obrigatório")

// fieldCache is the winning-field shortcut seam; *FieldCache is the Redis
// implementation.
type fieldCache interface {
	Get(ctx context.Context, collection, tenantID string) (string, bool)
	Put(ctx context.Context, collection, tenantID, field string)
}

// Service resolves a collection query through the ordered tenant-field
// probe. It holds no mutable state and is safe for concurrent use; the
// store client is expected to be concurrency-safe as well.
type Service struct {
	store  store.Querier // nil when Firestore is unavailable
	fields []string
	limit  int
	window store.Window
	cache  fieldCache // optional
	now    func() time.Time
}

func New(st store.Querier, fields []string, limit int, window store.Window, cache *FieldCache) *Service {
	s := &Service{
		store:  st,
		fields: fields,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
	if cache != nil {
		s.cache = cache
	}
	return s
}

// Connected reports whether a Firestore client is wired in.
func (s *Service) Connected() bool {
	return s.store != nil
}

// TenantFields exposes the candidate list for the capability listing.
func (s *Service) TenantFields() []string {
	return s.fields
}

// Fetch probes the candidate tenant fields in priority order against the
// given collection and returns the response envelope. A per-candidate query
// failure is logged and skipped; only a missing tenant id is an error. An
// exhausted candidate list is a valid zero-count result, with every field
// tried recorded for diagnosis.
func (s *Service) Fetch(ctx context.Context, collection, tenantID string) (*Envelope, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, ErrTenantRequired
	}

	env := &Envelope{
		Collection:     collection,
		EnterpriseID:   tenantID,
		Data:           []map[string]any{},
		FieldsTried:    []string{},
		FirebaseStatus: StatusConnected,
		Timestamp:      s.now().Format(time.RFC3339),
	}
	if s.store == nil {
		logger.Error("firestore_unavailable", map[string]any{"collection": collection})
		env.FirebaseStatus = StatusDisconnected
		return env, nil
	}

	candidates := s.fields
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, collection, tenantID); ok {
			candidates = prioritize(cached, s.fields)
		}
	}

	for _, field := range candidates {
		env.FieldsTried = append(env.FieldsTried, field)
		docs, err := s.store.Query(ctx, collection, field, tenantID, s.limit, s.window)
		if err != nil {
			// Recoverable: a bad field name or missing index on one
			// candidate must not fail the request.
			logger.Warn("probe_failed", map[string]any{
				"collection": collection,
				"field":      field,
				"error":      err.Error(),
			})
			continue
		}
		if len(docs) == 0 {
			logger.Debug("probe_empty", map[string]any{
				"collection": collection,
				"field":      field,
			})
			continue
		}

		env.MatchedField = field
		env.Count = len(docs)
		env.Data = make([]map[string]any, 0, len(docs))
		for _, d := range docs {
			rec := NormalizeRecord(d.Data)
			rec["_doc_id"] = d.ID
			env.Data = append(env.Data, rec)
		}
		if s.cache != nil {
			s.cache.Put(ctx, collection, tenantID, field)
		}
		logger.Info("probe_matched", map[string]any{
			"collection": collection,
			"field":      field,
			"count":      len(docs),
		})
		return env, nil
	}

	logger.Warn("probe_exhausted", map[string]any{
		"collection": collection,
		"fields":     candidates,
	})
	return env, nil
}

// prioritize moves the cached winner to the front of the candidate list,
// keeping the configured order for the rest. An unknown field (stale cache
// after a config change) leaves the list untouched.
func prioritize(first string, fields []string) []string {
	found := false
	for _, f := range fields {
		if f == first {
			found = true
			break
		}
	}
	if !found {
		return fields
	}
	out := make([]string, 0, len(fields))
	out = append(out, first)
	for _, f := range fields {
		if f != first {
			out = append(out, f)
		}
	}
	return out
}
