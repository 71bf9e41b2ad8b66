// Package notify dispatches task change events to the external
// notification channel. Delivery is best effort: a failed or slow dispatch
// is logged and never surfaces as an operation failure.
package notify

import (
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-transport/internal/models"
)

// Publisher delivers a serialized event to the transport.
type Publisher interface {
	Publish(payload []byte) error
}

// Trigger serializes task events and hands them to the publisher. Callers
// that must not wait on the broker invoke Notify from their own goroutine.
type Trigger struct {
	publisher Publisher
}

// NewTrigger creates a trigger over the given publisher.
func NewTrigger(publisher Publisher) *Trigger {
	return &Trigger{publisher: publisher}
}

// Notify dispatches one event and reports whether delivery succeeded.
func (t *Trigger) Notify(event models.TaskEvent) bool {
	payload, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).WithField("event_id", event.EventID).Error("Failed to marshal task event")
		return false
	}
	if err := t.publisher.Publish(payload); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"event_id": event.EventID,
			"kind":     event.Kind,
			"task_id":  event.TaskID,
		}).Warn("Failed to publish task event")
		return false
	}
	log.WithFields(log.Fields{
		"event_id": event.EventID,
		"kind":     event.Kind,
		"task_id":  event.TaskID,
	}).Info("Published task event")
	return true
}

// LogPublisher is the fallback used when no broker is configured: events
// are only written to the log.
type LogPublisher struct{}

// Publish logs the payload and reports success.
func (LogPublisher) Publish(payload []byte) error {
	log.WithField("payload", string(payload)).Info("Task event (no broker configured)")
	return nil
}

// publishTimeout bounds how long a single MQTT publish may take.
const publishTimeout = 5 * time.Second
