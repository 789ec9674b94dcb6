package store

import (
	"context"
)

// Document is one record fetched from a collection, with its store-assigned
// identifier split out from the field data.
type Document struct {
	ID   string
	Data map[string]any
}

// Window optionally constrains a query to the last Days days on Field.
// A zero Days disables the constraint.
type Window struct {
	Field string
	Days  int
}

// Querier is the narrow seam between the gateway and the backing store.
// Implementations must be safe for concurrent use.
type Querier interface {
	// Query returns up to limit documents from collection where field equals
	// value, further constrained by window when enabled.
	Query(ctx context.Context, collection, field, value string, limit int, window Window) ([]Document, error)
}
