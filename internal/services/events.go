package services

import "feedbackboard/internal/logger"

// Routing keys of the domain events.
const (
	EventUserRegistered  = "user.registered"
	EventUserDeleted     = "user.deleted"
	EventFeedbackCreated = "feedback.created"
	EventFeedbackUpdated = "feedback.updated"
	EventFeedbackDeleted = "feedback.deleted"
)

// EventPublisher delivers domain events to a broker.
type EventPublisher interface {
	Publish(routingKey string, payload interface{}) error
}

// publish sends an event if a publisher is configured. Failures are logged
// and never undo the mutation that triggered them.
func publish(events EventPublisher, routingKey string, payload interface{}) {
	if events == nil {
		return
	}
	if err := events.Publish(routingKey, payload); err != nil {
		logger.Log.Warnw("failed to publish event", "event", routingKey, "error", err)
	}
}
