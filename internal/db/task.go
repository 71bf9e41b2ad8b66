package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ukydev/fleet-transport/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrStaleVersion is returned when a version-guarded update matched no
	// document: the task was modified by a concurrent writer and the caller
	// should re-read and retry.
	ErrStaleVersion = errors.New("stale task version")
)

// TaskCollection defines the interface for fleet task storage operations.
type TaskCollection interface {
	InsertTask(ctx context.Context, task models.FleetTask) error
	FindTaskByID(ctx context.Context, id int64) (*models.FleetTask, error)
	FindTasks(ctx context.Context, filter TaskFilter) ([]models.FleetTask, error)
	UpdateTask(ctx context.Context, task models.FleetTask) (*models.FleetTask, error)
	SetTaskStatus(ctx context.Context, id int64, status models.TaskStatus) error
	SetExpectedPassengers(ctx context.Context, id int64, count int) error
	DeleteTask(ctx context.Context, id int64) error
}

// TaskFilter narrows and pages a task listing.
type TaskFilter struct {
	CompanyID int64
	TaskDate  string
	Limit     int64
	Offset    int64
}

// MongoTaskCollection implements TaskCollection for MongoDB.
type MongoTaskCollection struct {
	Collection *mongo.Collection
}

// InsertTask inserts a new fleet task document.
func (c *MongoTaskCollection) InsertTask(ctx context.Context, task models.FleetTask) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = time.Now()
	task.Version = 1
	_, err := c.Collection.InsertOne(ctx, task)
	return err
}

// FindTaskByID finds a fleet task by its numeric id.
func (c *MongoTaskCollection) FindTaskByID(ctx context.Context, id int64) (*models.FleetTask, error) {
	var task models.FleetTask
	err := c.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// FindTasks lists fleet tasks matching the filter, newest first.
func (c *MongoTaskCollection) FindTasks(ctx context.Context, filter TaskFilter) ([]models.FleetTask, error) {
	query := bson.M{}
	if filter.CompanyID != 0 {
		query["company_id"] = filter.CompanyID
	}
	if filter.TaskDate != "" {
		query["task_date"] = filter.TaskDate
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}
	if filter.Offset > 0 {
		opts.SetSkip(filter.Offset)
	}
	cursor, err := c.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	tasks := []models.FleetTask{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTask replaces the mutable fields of a task. The write is guarded
// by the version the caller read: if the stored version differs, no
// document matches and ErrStaleVersion is returned.
func (c *MongoTaskCollection) UpdateTask(ctx context.Context, task models.FleetTask) (*models.FleetTask, error) {
	task.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"company_id":          task.CompanyID,
			"project_id":          task.ProjectID,
			"driver_id":           task.DriverID,
			"vehicle_id":          task.VehicleID,
			"task_date":           task.TaskDate,
			"planned_pickup_time": task.PlannedPickupTime,
			"planned_drop_time":   task.PlannedDropTime,
			"pickup_location":     task.PickupLocation,
			"drop_location":       task.DropLocation,
			"pickup_address":      task.PickupAddress,
			"drop_address":        task.DropAddress,
			"notes":               task.Notes,
			"updated_at":          task.UpdatedAt,
		},
		"$inc": bson.M{"version": 1},
	}
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": task.ID, "version": task.Version}, update)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		// Distinguish a missing task from a concurrent update.
		if _, findErr := c.FindTaskByID(ctx, task.ID); findErr != nil {
			return nil, findErr
		}
		return nil, ErrStaleVersion
	}
	return c.FindTaskByID(ctx, task.ID)
}

// SetTaskStatus persists a status transition.
func (c *MongoTaskCollection) SetTaskStatus(ctx context.Context, id int64, status models.TaskStatus) error {
	result, err := c.Collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$set": bson.M{"status": status, "updated_at": time.Now()},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetExpectedPassengers resyncs the derived passenger count after a
// reconciliation changed the assignment set.
func (c *MongoTaskCollection) SetExpectedPassengers(ctx context.Context, id int64, count int) error {
	_, err := c.Collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"expected_passengers": count, "updated_at": time.Now()}},
	)
	return err
}

// DeleteTask deletes a fleet task by id. Deleting an already-deleted task
// is not an error so the cascade stays retry-safe.
func (c *MongoTaskCollection) DeleteTask(ctx context.Context, id int64) error {
	_, err := c.Collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
