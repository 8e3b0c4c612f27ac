// Package archive mirrors season snapshots to a document store so archived
// seasons can be browsed outside the service database.
package archive

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codr1/touchline/internal/config"
)

const connectTimeout = 10 * time.Second

// Mirror receives season snapshots after they are committed locally.
type Mirror interface {
	Upsert(ctx context.Context, seasonNumber int64, snapshot []byte) error
	Delete(ctx context.Context, seasonNumber int64) error
	DeleteAll(ctx context.Context) error
	Close(ctx context.Context) error
}

// Noop is used when no mirror is configured.
type Noop struct{}

func (Noop) Upsert(context.Context, int64, []byte) error { return nil }
func (Noop) Delete(context.Context, int64) error         { return nil }
func (Noop) DeleteAll(context.Context) error             { return nil }
func (Noop) Close(context.Context) error                 { return nil }

type MongoMirror struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// New returns a MongoDB mirror when ARCHIVE_MONGO_URI is set and Noop
// otherwise.
func New(ctx context.Context, cfg config.ArchiveConfig) (Mirror, error) {
	if !cfg.MirrorEnabled() {
		return Noop{}, nil
	}
	return NewMongoMirror(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
}

func NewMongoMirror(ctx context.Context, uri, database, collection string) (*MongoMirror, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoMirror{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

// Upsert stores the snapshot JSON as a document keyed by season number.
func (m *MongoMirror) Upsert(ctx context.Context, seasonNumber int64, snapshot []byte) error {
	var doc bson.M
	if err := bson.UnmarshalExtJSON(snapshot, false, &doc); err != nil {
		return fmt.Errorf("decode season %d snapshot: %w", seasonNumber, err)
	}
	doc["seasonNumber"] = seasonNumber

	opts := options.Replace().SetUpsert(true)
	if _, err := m.collection.ReplaceOne(ctx, bson.M{"seasonNumber": seasonNumber}, doc, opts); err != nil {
		return fmt.Errorf("upsert season %d: %w", seasonNumber, err)
	}
	return nil
}

func (m *MongoMirror) Delete(ctx context.Context, seasonNumber int64) error {
	if _, err := m.collection.DeleteOne(ctx, bson.M{"seasonNumber": seasonNumber}); err != nil {
		return fmt.Errorf("delete season %d: %w", seasonNumber, err)
	}
	return nil
}

func (m *MongoMirror) DeleteAll(ctx context.Context) error {
	if _, err := m.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("delete seasons: %w", err)
	}
	return nil
}

// Count returns the number of mirrored seasons.
func (m *MongoMirror) Count(ctx context.Context) (int64, error) {
	return m.collection.CountDocuments(ctx, bson.M{})
}

func (m *MongoMirror) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
