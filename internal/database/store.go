// Package database holds the document store gateway: generic create and
// list access to one MongoDB collection per entity kind, plus an in-memory
// implementation used in tests.
package database

import (
	"context"
	"errors"
)

// State describes the lifecycle of the store handle. The process keeps
// running whatever the state; only Create/List require Connected.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateConnecting    State = "connecting"
	StateConnected     State = "connected"
	StateFailed        State = "failed"
)

// ErrStoreUnavailable is returned by every operation while the store
// handle is not Connected. It is a catchable condition, not a crash.
var ErrStoreUnavailable = errors.New("document store unavailable")

// Document is a single persisted record: the declared fields of its kind
// plus the stamped "_id" and "created_at" attributes.
type Document map[string]interface{}

// Store is the gateway consumed by the HTTP layer. The kind name acts as
// the collection namespace; filters are conjunctive exact matches.
type Store interface {
	// Create stamps the document with a fresh id and a server-side
	// creation timestamp, writes it and returns the generated id.
	Create(ctx context.Context, kind string, doc Document) (string, error)

	// List returns every document in the kind's collection matching all
	// given equality constraints. An empty filter returns everything;
	// ordering is store-native and not guaranteed stable.
	List(ctx context.Context, kind string, filter Document) ([]Document, error)

	// State reports the current handle state.
	State() State

	// DatabaseName identifies the backing database for diagnostics.
	DatabaseName() string

	// Collections lists the collection names currently present.
	Collections(ctx context.Context) ([]string, error)
}
