package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SequenceCollection allocates monotonically increasing int64 ids. The
// original system generated random integer ids, which is collision-prone;
// a counters document keeps allocation atomic across writers.
type SequenceCollection interface {
	Next(ctx context.Context, name string) (int64, error)
}

// MongoSequenceCollection implements SequenceCollection on a counters
// collection with one document per sequence name.
type MongoSequenceCollection struct {
	Collection *mongo.Collection
}

type counterDoc struct {
	Value int64 `bson:"value"`
}

// Next atomically increments and returns the named sequence.
func (c *MongoSequenceCollection) Next(ctx context.Context, name string) (int64, error) {
	if c.Collection == nil {
		return 0, fmt.Errorf("mongo collection is nil")
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	var doc counterDoc
	err := c.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"value": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next sequence %q: %w", name, err)
	}
	return doc.Value, nil
}

// Sequence names.
const (
	TaskSequence      = "fleet_tasks"
	PassengerSequence = "fleet_task_passengers"
)
