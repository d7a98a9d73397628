package worker

import (
	"github.com/spec-kit/salon-service/internal/events"
	"github.com/spec-kit/salon-service/internal/service"
)

// StartNotificationWorker registers notification handlers and, when configured, the Kafka
// publisher on the dispatcher.
func StartNotificationWorker(dispatcher events.Dispatcher, notificationService *service.NotificationService, kafkaPublisher *events.KafkaPublisher) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	if kafkaPublisher != nil && dispatcher != nil {
		kafkaPublisher.Register(dispatcher)
	}
}
