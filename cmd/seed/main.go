// Development seeder: populates the ERP lookup collections (companies,
// projects, employees, vehicles, drivers) with sample records so the task
// API has something to validate against.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ukydev/fleet-transport/internal/db"
	"github.com/ukydev/fleet-transport/internal/models"
)

var (
	firstNames  = []string{"Alice", "Bashir", "Carol", "Deniz", "Elena", "Farid", "Grace", "Hakan", "Irene", "Jonas"}
	lastNames   = []string{"Martin", "Osman", "Silva", "Yilmaz", "Novak", "Haddad", "Kim", "Petrov", "Costa", "Weber"}
	departments = []string{"Production", "Logistics", "Maintenance", "Quality", "Administration"}
	carModels   = []string{"Sprinter", "Transit", "Crafter", "Hiace", "Daily"}
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using environment")
	}

	companies := 2
	if v := os.Getenv("SEED_COMPANIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			companies = n
		}
	}
	employeesPer := 12
	if v := os.Getenv("SEED_EMPLOYEES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			employeesPer = n
		}
	}

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	database := client.Database(db.DatabaseName())
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for c := 1; c <= companies; c++ {
		companyID := int64(c)
		company := models.Company{ID: companyID, Name: fmt.Sprintf("Company %d Ltd", c), Status: "active"}
		upsert(ctx, database.Collection(db.CompanyCollectionName), company.ID, company)

		project := models.Project{ID: companyID*100 + 1, CompanyID: companyID, Name: fmt.Sprintf("Site %d Shuttle", c)}
		upsert(ctx, database.Collection(db.ProjectCollectionName), project.ID, project)

		for e := 1; e <= employeesPer; e++ {
			name := firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
			employee := models.Employee{
				ID:           companyID*1000 + int64(e),
				CompanyID:    companyID,
				EmployeeName: name,
				EmployeeCode: fmt.Sprintf("C%d-E%03d", c, e),
				Department:   departments[rand.Intn(len(departments))],
				Status:       "active",
			}
			upsert(ctx, database.Collection(db.EmployeeCollectionName), employee.ID, employee)
		}

		for v := 1; v <= 3; v++ {
			vehicle := models.Vehicle{
				ID:        companyID*100 + int64(v),
				CompanyID: companyID,
				PlateNo:   fmt.Sprintf("FT-%d%02d", c, v),
				Model:     carModels[rand.Intn(len(carModels))],
				Capacity:  8 + rand.Intn(12),
				Status:    "active",
			}
			upsert(ctx, database.Collection(db.VehicleCollectionName), vehicle.ID, vehicle)

			driver := models.Driver{
				ID:        companyID*100 + int64(v),
				CompanyID: companyID,
				Name:      firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))],
				LicenseNo: fmt.Sprintf("DL-%d%04d", c, rand.Intn(10000)),
				Status:    "active",
			}
			upsert(ctx, database.Collection(db.DriverCollectionName), driver.ID, driver)
		}

		seedSampleTask(ctx, database, companyID)

		log.WithFields(log.Fields{
			"company_id": companyID,
			"employees":  employeesPer,
			"vehicles":   3,
			"drivers":    3,
		}).Info("Seeded company")
	}

	log.WithField("companies", companies).Info("Seeding completed")
}

// seedSampleTask writes one PLANNED task per company through the store
// layer so a fresh environment has something to list.
func seedSampleTask(ctx context.Context, database *mongo.Database, companyID int64) {
	tasks := &db.MongoTaskCollection{Collection: database.Collection(db.TaskCollectionName)}
	sequences := &db.MongoSequenceCollection{Collection: database.Collection(db.CounterCollectionName)}

	id, err := sequences.Next(ctx, db.TaskSequence)
	if err != nil {
		log.WithError(err).Error("Failed to allocate sample task id")
		return
	}
	task := models.FleetTask{
		ID:                id,
		CompanyID:         companyID,
		ProjectID:         companyID*100 + 1,
		DriverID:          companyID*100 + 1,
		VehicleID:         companyID*100 + 1,
		TaskDate:          time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		PlannedPickupTime: "07:30",
		PlannedDropTime:   "08:15",
		PickupLocation:    "Central Depot",
		DropLocation:      fmt.Sprintf("Site %d Gate A", companyID),
		Status:            models.StatusPlanned,
		CreatedBy:         "seed",
	}
	if err := tasks.InsertTask(ctx, task); err != nil {
		log.WithError(err).WithField("task_id", id).Error("Failed to seed sample task")
	}
}

// upsert replaces the document with the given id, inserting it when absent,
// so reruns of the seeder stay idempotent.
func upsert(ctx context.Context, coll *mongo.Collection, id int64, doc interface{}) {
	_, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"collection": coll.Name(),
			"id":         id,
		}).Error("Failed to seed document")
	}
}
