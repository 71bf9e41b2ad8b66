package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-transport/internal/auth"
	"github.com/ukydev/fleet-transport/internal/db"
	"github.com/ukydev/fleet-transport/internal/fleet"
	"github.com/ukydev/fleet-transport/internal/handlers"
	"github.com/ukydev/fleet-transport/internal/middleware"
	"github.com/ukydev/fleet-transport/internal/notify"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using environment")
	}

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	database := client.Database(db.DatabaseName())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		cancel()
		log.WithError(err).Fatal("Failed to create indexes")
	}
	cancel()

	tasks := &db.MongoTaskCollection{Collection: database.Collection(db.TaskCollectionName)}
	passengers := &db.MongoPassengerCollection{Collection: database.Collection(db.PassengerCollectionName)}
	sequences := &db.MongoSequenceCollection{Collection: database.Collection(db.CounterCollectionName)}
	lookup := db.NewMongoLookupCollection(database)

	var publisher notify.Publisher = notify.LogPublisher{}
	if broker := os.Getenv("MQTT_BROKER_URL"); broker != "" {
		topic := os.Getenv("MQTT_EVENT_TOPIC")
		if topic == "" {
			topic = "fleet/tasks/events"
		}
		mqttPublisher, err := notify.NewMQTTPublisher(broker, "fleet-transport-api", topic)
		if err != nil {
			// Notification delivery is best effort, so a missing broker is
			// not fatal.
			log.WithError(err).Warn("MQTT unavailable, task events will only be logged")
		} else {
			defer mqttPublisher.Close()
			publisher = mqttPublisher
		}
	}
	trigger := notify.NewTrigger(publisher)

	manager := fleet.NewManager(tasks, passengers, sequences, lookup, trigger)

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("Failed to create auth service")
	}
	authMW := middleware.NewAuthMiddleware(authService)
	rateMW := middleware.NewRateLimitMiddleware()

	router := handlers.NewRouter(manager, lookup, authMW, rateMW)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("Fleet transport API listening")
	log.Fatal(http.ListenAndServe(":"+port, router))
}
