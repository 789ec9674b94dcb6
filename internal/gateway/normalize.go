package gateway

import (
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/genproto/googleapis/type/latlng"
)

// NormalizeValue rewrites Firestore-specific value types into JSON-safe
// structures. The Firestore client decodes documents into a closed set of Go
// types, so a type switch covers every special case: geo points become a
// tagged latitude/longitude object, timestamps become RFC 3339 strings, and
// document references become a tagged path/id object. Maps and slices are
// rewritten recursively; anything else passes through unchanged.
//
// The function is idempotent: its outputs contain only maps, slices, strings
// and scalars, all of which pass through a second run untouched.
func NormalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = NormalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = NormalizeValue(item)
		}
		return out
	case *latlng.LatLng:
		return map[string]any{
			"latitude":  val.GetLatitude(),
			"longitude": val.GetLongitude(),
			"kind":      "geopoint",
		}
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case *firestore.DocumentRef:
		return map[string]any{
			"path": val.Path,
			"id":   val.ID,
			"kind": "reference",
		}
	default:
		return v
	}
}

// NormalizeRecord normalizes one document's field map.
func NormalizeRecord(rec map[string]any) map[string]any {
	out, _ := NormalizeValue(rec).(map[string]any)
	return out
}
