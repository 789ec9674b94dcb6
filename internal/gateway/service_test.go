package gateway

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"FirebiAPI/internal/store"
)

type probe struct {
	collection string
	field      string
	value      string
	limit      int
}

// fakeStore serves canned documents per collection/field pair and records
// every probe it receives.
type fakeStore struct {
	probes []probe
	docs   map[string][]store.Document
	errs   map[string]error
}

func key(collection, field string) string {
	return collection + "/" + field
}

func (f *fakeStore) Query(ctx context.Context, collection, field, value string, limit int, window store.Window) ([]store.Document, error) {
	f.probes = append(f.probes, probe{collection: collection, field: field, value: value, limit: limit})
	if err, ok := f.errs[key(collection, field)]; ok {
		return nil, err
	}
	return f.docs[key(collection, field)], nil
}

var testFields = []string{"EnterpriseId", "enterpriseId", "enterprise_id", "companyId", "organizationId"}

func newTestService(f *fakeStore) *Service {
	svc := New(f, testFields, 100, store.Window{}, nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestFetchRequiresTenantID(t *testing.T) {
	f := &fakeStore{}
	svc := newTestService(f)

	for _, tenant := range []string{"", "   "} {
		if _, err := svc.Fetch(context.Background(), "Vehicles", tenant); !errors.Is(err, ErrTenantRequired) {
			t.Fatalf("tenant %q: got err %v, want ErrTenantRequired", tenant, err)
		}
	}
	if len(f.probes) != 0 {
		t.Fatalf("store was queried %d times before tenant validation", len(f.probes))
	}
}

func TestFetchStopsAtFirstMatchingField(t *testing.T) {
	f := &fakeStore{
		docs: map[string][]store.Document{
			key("Vehicles", "enterpriseId"): {
				{ID: "v1", Data: map[string]any{"plate": "AAA-0001"}},
			},
			// Lower-priority candidate also matches, but must never be tried.
			key("Vehicles", "companyId"): {
				{ID: "v9", Data: map[string]any{"plate": "ZZZ-9999"}},
			},
		},
	}
	svc := newTestService(f)

	env, err := svc.Fetch(context.Background(), "Vehicles", "ACME1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if env.MatchedField != "enterpriseId" {
		t.Fatalf("matched field: got %q, want %q", env.MatchedField, "enterpriseId")
	}
	wantProbes := []string{"EnterpriseId", "enterpriseId"}
	if len(f.probes) != len(wantProbes) {
		t.Fatalf("probe count: got %d (%v), want %d", len(f.probes), f.probes, len(wantProbes))
	}
	for i, want := range wantProbes {
		if f.probes[i].field != want {
			t.Fatalf("probe %d: got field %q, want %q", i, f.probes[i].field, want)
		}
	}
	if diff := cmp.Diff(wantProbes, env.FieldsTried); diff != "" {
		t.Fatalf("fieldsTried mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchSkipsFailingCandidate(t *testing.T) {
	f := &fakeStore{
		errs: map[string]error{
			key("Checklist", "EnterpriseId"): fmt.Errorf("missing index"),
		},
		docs: map[string][]store.Document{
			key("Checklist", "enterpriseId"): {
				{ID: "c1", Data: map[string]any{"done": true}},
			},
		},
	}
	svc := newTestService(f)

	env, err := svc.Fetch(context.Background(), "Checklist", "ACME1")
	if err != nil {
		t.Fatalf("a per-candidate fault must not fail the request: %v", err)
	}
	if env.MatchedField != "enterpriseId" {
		t.Fatalf("matched field: got %q, want %q", env.MatchedField, "enterpriseId")
	}
	if env.Count != 1 {
		t.Fatalf("count: got %d, want 1", env.Count)
	}
}

func TestFetchExhaustedCandidates(t *testing.T) {
	f := &fakeStore{}
	svc := newTestService(f)

	env, err := svc.Fetch(context.Background(), "Tires", "NOBODY")
	if err != nil {
		t.Fatalf("an empty result is not an error: %v", err)
	}
	if env.Count != 0 {
		t.Fatalf("count: got %d, want 0", env.Count)
	}
	if env.Data == nil || len(env.Data) != 0 {
		t.Fatalf("data: got %v, want empty non-nil slice", env.Data)
	}
	if diff := cmp.Diff(testFields, env.FieldsTried); diff != "" {
		t.Fatalf("fieldsTried must list every candidate (-want +got):\n%s", diff)
	}
	if env.MatchedField != "" {
		t.Fatalf("matched field: got %q, want empty", env.MatchedField)
	}
	if env.FirebaseStatus != StatusConnected {
		t.Fatalf("status: got %q, want %q", env.FirebaseStatus, StatusConnected)
	}
}

func TestFetchWithoutStoreReportsDisconnected(t *testing.T) {
	svc := New(nil, testFields, 100, store.Window{}, nil)

	env, err := svc.Fetch(context.Background(), "Vehicles", "ACME1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if env.FirebaseStatus != StatusDisconnected {
		t.Fatalf("status: got %q, want %q", env.FirebaseStatus, StatusDisconnected)
	}
	if env.Count != 0 || len(env.Data) != 0 {
		t.Fatalf("expected empty result without a store, got count=%d", env.Count)
	}
}

func TestFetchAttachesDocIDAndNormalizes(t *testing.T) {
	f := &fakeStore{
		docs: map[string][]store.Document{
			key("Vehicles", "EnterpriseId"): {
				{ID: "v1", Data: map[string]any{
					"plate":     "AAA-0001",
					"createdAt": time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
				}},
				{ID: "v2", Data: map[string]any{"plate": "BBB-0002"}},
			},
		},
	}
	svc := newTestService(f)

	env, err := svc.Fetch(context.Background(), "Vehicles", "ACME1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if env.Count != 2 {
		t.Fatalf("count: got %d, want 2", env.Count)
	}
	want := []map[string]any{
		{"plate": "AAA-0001", "createdAt": "2024-02-01T00:00:00Z", "_doc_id": "v1"},
		{"plate": "BBB-0002", "_doc_id": "v2"},
	}
	if diff := cmp.Diff(want, env.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	if env.Timestamp != "2024-05-01T10:00:00Z" {
		t.Fatalf("timestamp: got %q", env.Timestamp)
	}
}

func TestFetchPassesLimitThrough(t *testing.T) {
	f := &fakeStore{}
	svc := New(f, []string{"EnterpriseId"}, 25, store.Window{}, nil)

	if _, err := svc.Fetch(context.Background(), "Trips", "ACME1"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(f.probes) != 1 || f.probes[0].limit != 25 {
		t.Fatalf("limit not forwarded: probes %v", f.probes)
	}
}

func TestPrioritize(t *testing.T) {
	fields := []string{"a", "b", "c"}

	if diff := cmp.Diff([]string{"b", "a", "c"}, prioritize("b", fields)); diff != "" {
		t.Fatalf("cached winner not promoted (-want +got):\n%s", diff)
	}
	// A stale cache entry naming an unconfigured field changes nothing.
	if diff := cmp.Diff(fields, prioritize("gone", fields)); diff != "" {
		t.Fatalf("unknown field altered candidates (-want +got):\n%s", diff)
	}
}
