package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/salon-service/internal/config"
	"github.com/spec-kit/salon-service/internal/events"
)

// NotificationService handles emitting notifications for booking events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAppointmentBooked, n.handleAppointmentBooked)
	n.dispatcher.Subscribe(events.EventAppointmentCancelled, n.handleAppointmentChanged)
	n.dispatcher.Subscribe(events.EventAppointmentCompleted, n.handleAppointmentChanged)
	n.dispatcher.Subscribe(events.EventPaymentRequested, n.handlePaymentRequested)
	n.dispatcher.Subscribe(events.EventPaymentPaid, n.handlePaymentPaid)
}

func (n *NotificationService) handleAppointmentBooked(ctx context.Context, event events.Event) error {
	n.logger.Info("AppointmentBooked", zap.String("appointment_id", event.AppointmentID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAppointmentChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("AppointmentStatusChanged",
		zap.String("appointment_id", event.AppointmentID),
		zap.String("event_type", string(event.Type)),
		zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handlePaymentRequested(ctx context.Context, event events.Event) error {
	n.logger.Info("PaymentRequested", zap.String("appointment_id", event.AppointmentID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handlePaymentPaid(ctx context.Context, event events.Event) error {
	n.logger.Info("PaymentPaid", zap.String("appointment_id", event.AppointmentID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("appointment_id", event.AppointmentID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("appointment_id", event.AppointmentID),
		zap.String("event_type", string(event.Type)))
}
