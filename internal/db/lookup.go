package db

import (
	"context"
	"errors"

	"github.com/ukydev/fleet-transport/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// LookupCollection is the read-only entity lookup gateway. The company,
// project, employee, vehicle and driver collections belong to the
// surrounding ERP modules; this service only resolves references against
// them.
type LookupCollection interface {
	FindCompanyByID(ctx context.Context, id int64) (*models.Company, error)
	FindProjectByID(ctx context.Context, id int64) (*models.Project, error)
	FindEmployeeByID(ctx context.Context, id int64) (*models.Employee, error)
	FindVehicleByID(ctx context.Context, id int64) (*models.Vehicle, error)
	FindDriverByID(ctx context.Context, id int64) (*models.Driver, error)
	FindWorkersByCompany(ctx context.Context, companyID int64) ([]models.Employee, error)
}

// MongoLookupCollection implements LookupCollection over the ERP
// collections in the shared database.
type MongoLookupCollection struct {
	Companies *mongo.Collection
	Projects  *mongo.Collection
	Employees *mongo.Collection
	Vehicles  *mongo.Collection
	Drivers   *mongo.Collection
}

// NewMongoLookupCollection wires the gateway against a database handle.
func NewMongoLookupCollection(database *mongo.Database) *MongoLookupCollection {
	return &MongoLookupCollection{
		Companies: database.Collection(CompanyCollectionName),
		Projects:  database.Collection(ProjectCollectionName),
		Employees: database.Collection(EmployeeCollectionName),
		Vehicles:  database.Collection(VehicleCollectionName),
		Drivers:   database.Collection(DriverCollectionName),
	}
}

// FindCompanyByID resolves a company record.
func (c *MongoLookupCollection) FindCompanyByID(ctx context.Context, id int64) (*models.Company, error) {
	var company models.Company
	if err := decodeOne(c.Companies.FindOne(ctx, bson.M{"_id": id}), &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// FindProjectByID resolves a project record.
func (c *MongoLookupCollection) FindProjectByID(ctx context.Context, id int64) (*models.Project, error) {
	var project models.Project
	if err := decodeOne(c.Projects.FindOne(ctx, bson.M{"_id": id}), &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// FindEmployeeByID resolves an employee record.
func (c *MongoLookupCollection) FindEmployeeByID(ctx context.Context, id int64) (*models.Employee, error) {
	var employee models.Employee
	if err := decodeOne(c.Employees.FindOne(ctx, bson.M{"_id": id}), &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindVehicleByID resolves a vehicle record.
func (c *MongoLookupCollection) FindVehicleByID(ctx context.Context, id int64) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := decodeOne(c.Vehicles.FindOne(ctx, bson.M{"_id": id}), &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// FindDriverByID resolves a driver record.
func (c *MongoLookupCollection) FindDriverByID(ctx context.Context, id int64) (*models.Driver, error) {
	var driver models.Driver
	if err := decodeOne(c.Drivers.FindOne(ctx, bson.M{"_id": id}), &driver); err != nil {
		return nil, err
	}
	return &driver, nil
}

// FindWorkersByCompany lists the employees of a company that are eligible
// passengers (anything not explicitly inactive).
func (c *MongoLookupCollection) FindWorkersByCompany(ctx context.Context, companyID int64) ([]models.Employee, error) {
	cursor, err := c.Employees.Find(ctx, bson.M{
		"company_id": companyID,
		"status":     bson.M{"$ne": "inactive"},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	workers := []models.Employee{}
	if err := cursor.All(ctx, &workers); err != nil {
		return nil, err
	}
	return workers, nil
}

func decodeOne(result *mongo.SingleResult, out interface{}) error {
	err := result.Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
