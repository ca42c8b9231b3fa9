// Package docstore is a small document store: schemaless JSON documents in
// named collections, equality queries, and live subscriptions. It is the only
// persistence surface the services talk to.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
)

var ErrNotFound = errors.New("docstore: document not found")

// Doc is a stored document. Data is the raw JSON body, including the
// store-assigned "id" and "created_at" fields.
type Doc struct {
	ID   string
	Data json.RawMessage
}

func (d Doc) Decode(v any) error { return json.Unmarshal(d.Data, v) }

// Where is an equality predicate on a top-level document field. The zero
// value matches every document in the collection. Values are compared the way
// SQLite's json_extract sees them; the fields queried in this codebase are
// all strings.
type Where struct {
	Field string
	Value any
}

// Store is the document-store collaborator. Collections are path strings;
// nested paths like "products/p1/reviews" name subcollections.
//
// Subscribe registers a live feed: the callback fires once with the current
// matching set, then again after every mutation of the collection. Callbacks
// run synchronously on the mutating goroutine, one delivery at a time per
// subscription, so they must not block and must not mutate the store.
// The returned cancel func stops delivery; it is safe to call twice.
type Store interface {
	Create(ctx context.Context, collection string, v any) (string, error)
	// Set writes v under a caller-chosen id, replacing any existing document.
	Set(ctx context.Context, collection, id string, v any) error
	Get(ctx context.Context, collection, id string) (Doc, error)
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	Query(ctx context.Context, collection string, where Where) ([]Doc, error)
	Subscribe(collection string, where Where, onChange func([]Doc), onError func(error)) (cancel func())
}
