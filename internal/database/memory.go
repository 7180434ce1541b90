package database

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is a map-backed Store used in tests. It mirrors the gateway
// contract exactly: fresh ids and timestamps on every create, conjunctive
// equality filters on list, no dedup.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string][]Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]Document)}
}

func (s *MemoryStore) Create(ctx context.Context, kind string, doc Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := make(Document, len(doc)+2)
	for k, v := range doc {
		record[k] = v
	}
	id := primitive.NewObjectID().Hex()
	record["_id"] = id
	record["created_at"] = time.Now().UTC()

	s.items[kind] = append(s.items[kind], record)
	return id, nil
}

func (s *MemoryStore) List(ctx context.Context, kind string, filter Document) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Document, 0)
	for _, doc := range s.items[kind] {
		if matches(doc, filter) {
			copied := make(Document, len(doc))
			for k, v := range doc {
				copied[k] = v
			}
			out = append(out, copied)
		}
	}
	return out, nil
}

func (s *MemoryStore) State() State {
	return StateConnected
}

func (s *MemoryStore) DatabaseName() string {
	return "memory"
}

func (s *MemoryStore) Collections(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.items))
	for kind := range s.items {
		names = append(names, kind)
	}
	sort.Strings(names)
	return names, nil
}

// matches applies conjunctive equality: a document missing a filtered
// field is excluded, same as a store-side exact-match query.
func matches(doc, filter Document) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
