package config

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/FunnySam/runelite/pkg/errors"
)

// MongoOptions configures a MongoBackend.
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
}

// mongoEntry is one stored value. _id is the "group.key" storage key.
type mongoEntry struct {
	ID    string `bson:"_id"`
	Group string `bson:"group"`
	Key   string `bson:"key"`
	Value string `bson:"value"`
}

// MongoBackend stores one document per value in a single collection.
type MongoBackend struct {
	client *mongo.Client
	coll   *mongo.Collection
	owned  bool
}

// NewMongoBackend connects to MongoDB, pings the server and makes sure the
// group index exists.
func NewMongoBackend(ctx context.Context, opts MongoOptions) (*MongoBackend, error) {
	if err := apperrors.ValidateMongoURI(opts.URI); err != nil {
		return nil, err
	}
	if opts.Database == "" {
		opts.Database = DefaultMongoDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, wrapBackendErr(err, "connect mongo")
	}
	ping := func() error { return transient(client.Ping(ctx, nil)) }
	if err := retry(ctx, connectAttempts, connectDelay, ping); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, wrapBackendErr(err, "ping mongo")
	}

	b := &MongoBackend{
		client: client,
		coll:   client.Database(opts.Database).Collection(opts.Collection),
		owned:  true,
	}
	if err := b.ensureIndex(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return b, nil
}

// NewMongoBackendWithCollection wraps an existing collection. Close does not
// disconnect its client.
func NewMongoBackendWithCollection(coll *mongo.Collection) *MongoBackend {
	return &MongoBackend{client: coll.Database().Client(), coll: coll}
}

func (b *MongoBackend) ensureIndex(ctx context.Context) error {
	_, err := b.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "group", Value: 1}, {Key: "key", Value: 1}},
	})
	if err != nil {
		return wrapBackendErr(err, "create mongo index")
	}
	return nil
}

func (b *MongoBackend) Get(ctx context.Context, group, key string) (string, bool, error) {
	var e mongoEntry
	err := b.coll.FindOne(ctx, bson.M{"_id": StorageKey(group, key)}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrapBackendErr(err, "mongo find %s", StorageKey(group, key))
	}
	return e.Value, true, nil
}

func (b *MongoBackend) Set(ctx context.Context, group, key, value string) error {
	id := StorageKey(group, key)
	_, err := b.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"group": group, "key": key, "value": value}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return wrapBackendErr(err, "mongo upsert %s", id)
	}
	return nil
}

func (b *MongoBackend) Delete(ctx context.Context, group, key string) error {
	if _, err := b.coll.DeleteOne(ctx, bson.M{"_id": StorageKey(group, key)}); err != nil {
		return wrapBackendErr(err, "mongo delete %s", StorageKey(group, key))
	}
	return nil
}

func (b *MongoBackend) Keys(ctx context.Context, group string) ([]string, error) {
	cur, err := b.coll.Find(ctx,
		bson.M{"group": group},
		options.Find().
			SetProjection(bson.M{"key": 1}).
			SetSort(bson.D{{Key: "key", Value: 1}}),
	)
	if err != nil {
		return nil, wrapBackendErr(err, "mongo find group %s", group)
	}

	var entries []mongoEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, wrapBackendErr(err, "mongo read group %s", group)
	}
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys, nil
}

func (b *MongoBackend) Close() error {
	if !b.owned {
		return nil
	}
	return b.client.Disconnect(context.Background())
}

var _ Backend = (*MongoBackend)(nil)
