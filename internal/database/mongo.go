package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is the process-wide MongoDB handle. Connect never fails the
// process: an empty URI leaves the handle Uninitialized, a failed connect
// or ping leaves it Failed, and every operation then observes
// ErrStoreUnavailable while the rest of the server keeps answering.
type MongoStore struct {
	mu     sync.RWMutex
	state  State
	client *mongo.Client
	db     *mongo.Database
	dbName string
}

// Connect establishes the single store handle from the supplied URI.
// The returned store is always usable; err is informational only.
func Connect(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	s := &MongoStore{state: StateUninitialized, dbName: dbName}
	if uri == "" {
		return s, nil
	}

	s.state = StateConnecting
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		s.state = StateFailed
		return s, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		s.state = StateFailed
		return s, fmt.Errorf("ping MongoDB: %w", err)
	}

	s.client = client
	s.db = client.Database(dbName)
	s.state = StateConnected
	return s, nil
}

func (s *MongoStore) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *MongoStore) DatabaseName() string {
	return s.dbName
}

// Disconnect releases the underlying client, if one was ever established.
func (s *MongoStore) Disconnect(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// markFailed records that a runtime operation failed. No automatic
// reconnection is attempted; that is the caller's concern, if any.
func (s *MongoStore) markFailed() {
	s.mu.Lock()
	s.state = StateFailed
	s.mu.Unlock()
}

func (s *MongoStore) available() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateConnected
}

func (s *MongoStore) Create(ctx context.Context, kind string, doc Document) (string, error) {
	if !s.available() {
		return "", ErrStoreUnavailable
	}

	record := bson.M{}
	for k, v := range doc {
		record[k] = v
	}
	id := primitive.NewObjectID()
	record["_id"] = id
	record["created_at"] = time.Now().UTC()

	if _, err := s.db.Collection(kind).InsertOne(ctx, record); err != nil {
		s.markFailed()
		return "", fmt.Errorf("insert into %q: %w", kind, err)
	}
	return id.Hex(), nil
}

func (s *MongoStore) List(ctx context.Context, kind string, filter Document) ([]Document, error) {
	if !s.available() {
		return nil, ErrStoreUnavailable
	}

	query := bson.M{}
	for k, v := range filter {
		query[k] = v
	}

	cursor, err := s.db.Collection(kind).Find(ctx, query)
	if err != nil {
		s.markFailed()
		return nil, fmt.Errorf("find in %q: %w", kind, err)
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		s.markFailed()
		return nil, fmt.Errorf("decode documents from %q: %w", kind, err)
	}

	docs := make([]Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, normalize(m))
	}
	return docs, nil
}

func (s *MongoStore) Collections(ctx context.Context) ([]string, error) {
	if !s.available() {
		return nil, ErrStoreUnavailable
	}
	names, err := s.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		s.markFailed()
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return names, nil
}

// normalize converts driver types into JSON-friendly values: the object
// id becomes its hex string and BSON datetimes become time.Time.
func normalize(m bson.M) Document {
	doc := make(Document, len(m))
	for k, v := range m {
		switch t := v.(type) {
		case primitive.ObjectID:
			doc[k] = t.Hex()
		case primitive.DateTime:
			doc[k] = t.Time().UTC()
		default:
			doc[k] = v
		}
	}
	return doc
}
