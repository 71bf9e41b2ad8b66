package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ukydev/fleet-transport/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateAssignment is returned when an insert trips the unique
// (fleet_task_id, identity_key) index.
var ErrDuplicateAssignment = errors.New("passenger already assigned to task")

// PassengerCollection defines the interface for passenger assignment
// storage operations.
type PassengerCollection interface {
	InsertPassenger(ctx context.Context, passenger models.PassengerAssignment) error
	FindPassengerByID(ctx context.Context, id int64) (*models.PassengerAssignment, error)
	FindPassengersByTask(ctx context.Context, taskID int64) ([]models.PassengerAssignment, error)
	DeletePassenger(ctx context.Context, id int64) error
	DeletePassengersByTask(ctx context.Context, taskID int64) (int64, error)
}

// MongoPassengerCollection implements PassengerCollection for MongoDB.
type MongoPassengerCollection struct {
	Collection *mongo.Collection
}

// InsertPassenger inserts a passenger assignment document.
func (c *MongoPassengerCollection) InsertPassenger(ctx context.Context, passenger models.PassengerAssignment) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	passenger.CreatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, passenger)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateAssignment
	}
	return err
}

// FindPassengerByID finds an assignment by its numeric id.
func (c *MongoPassengerCollection) FindPassengerByID(ctx context.Context, id int64) (*models.PassengerAssignment, error) {
	var passenger models.PassengerAssignment
	err := c.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&passenger)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &passenger, nil
}

// FindPassengersByTask lists all assignments owned by a task.
func (c *MongoPassengerCollection) FindPassengersByTask(ctx context.Context, taskID int64) ([]models.PassengerAssignment, error) {
	cursor, err := c.Collection.Find(ctx, bson.M{"fleet_task_id": taskID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	passengers := []models.PassengerAssignment{}
	if err := cursor.All(ctx, &passengers); err != nil {
		return nil, err
	}
	return passengers, nil
}

// DeletePassenger deletes a single assignment by id.
func (c *MongoPassengerCollection) DeletePassenger(ctx context.Context, id int64) error {
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePassengersByTask deletes every assignment owned by a task and
// returns how many were removed. Idempotent: a second call deletes zero.
func (c *MongoPassengerCollection) DeletePassengersByTask(ctx context.Context, taskID int64) (int64, error) {
	result, err := c.Collection.DeleteMany(ctx, bson.M{"fleet_task_id": taskID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
