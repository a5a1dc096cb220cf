// Package database - typed collection access shared by the services.
package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection provides typed access to a MongoDB collection. It holds no
// cache: the store is the only authority between requests.
type Collection[T any] struct {
	coll       *mongo.Collection
	dbInstance *Database
}

// NewCollection creates a typed Collection for a named collection
func NewCollection[T any](db *Database, name string) *Collection[T] {
	return &Collection[T]{
		coll:       db.GetCollection(name),
		dbInstance: db,
	}
}

func (c *Collection[T]) ready() error {
	if !c.dbInstance.Connected() || c.coll == nil {
		return ErrNotConnected
	}
	return nil
}

// FindOne returns the first matching document, or (nil, nil) when none match
func (c *Collection[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	var result T
	err := c.coll.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// Find returns all matching documents
func (c *Collection[T]) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	cursor, err := c.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	var results []T
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// FindPage returns one page of matching documents plus the unpaged total
func (c *Collection[T]) FindPage(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]T, int64, error) {
	if err := c.ready(); err != nil {
		return nil, 0, err
	}

	total, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(limit)
	items, err := c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []T{}
	}
	return items, total, nil
}

// InsertOne inserts a document
func (c *Collection[T]) InsertOne(ctx context.Context, doc *T) error {
	if err := c.ready(); err != nil {
		return err
	}
	_, err := c.coll.InsertOne(ctx, doc)
	return err
}

// Upsert applies a $set update by filter, inserting when absent, and returns
// the post-update document
func (c *Collection[T]) Upsert(ctx context.Context, filter bson.M, set any) (*T, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result T
	err := c.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateOne applies an update document to the first match
func (c *Collection[T]) UpdateOne(ctx context.Context, filter, update bson.M) (int64, error) {
	if err := c.ready(); err != nil {
		return 0, err
	}
	res, err := c.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// UpdateMany applies an update document to every match
func (c *Collection[T]) UpdateMany(ctx context.Context, filter, update bson.M) (int64, error) {
	if err := c.ready(); err != nil {
		return 0, err
	}
	res, err := c.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// DeleteOne removes the first matching document
func (c *Collection[T]) DeleteOne(ctx context.Context, filter bson.M) error {
	if err := c.ready(); err != nil {
		return err
	}
	_, err := c.coll.DeleteOne(ctx, filter)
	return err
}

// DeleteMany removes every matching document
func (c *Collection[T]) DeleteMany(ctx context.Context, filter bson.M) (int64, error) {
	if err := c.ready(); err != nil {
		return 0, err
	}
	res, err := c.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the number of matching documents
func (c *Collection[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	if err := c.ready(); err != nil {
		return 0, err
	}
	return c.coll.CountDocuments(ctx, filter)
}

// Aggregate runs a pipeline and returns the raw result documents
func (c *Collection[T]) Aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]bson.M, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	cursor, err := c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	var results []bson.M
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// BulkUpsert executes a batch of upsert-by-filter write models
func (c *Collection[T]) BulkUpsert(ctx context.Context, writes []mongo.WriteModel) error {
	if err := c.ready(); err != nil {
		return err
	}
	if len(writes) == 0 {
		return nil
	}
	_, err := c.coll.BulkWrite(ctx, writes)
	return err
}
