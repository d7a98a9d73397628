package events

import (
	"time"

	"github.com/spec-kit/salon-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAppointmentBooked    EventType = "appointment_booked"
	EventAppointmentCancelled EventType = "appointment_cancelled"
	EventAppointmentCompleted EventType = "appointment_completed"
	EventPaymentRequested     EventType = "payment_requested"
	EventPaymentPaid          EventType = "payment_paid"
)

// AllEventTypes lists every published type.
var AllEventTypes = []EventType{
	EventAppointmentBooked,
	EventAppointmentCancelled,
	EventAppointmentCompleted,
	EventPaymentRequested,
	EventPaymentPaid,
}

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	AppointmentID string      `json:"appointment_id"`
	Actor         Actor       `json:"actor"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
}

// AppointmentPayload describes the appointment at the time of the event.
type AppointmentPayload struct {
	CustomerID  string                   `json:"customer_id"`
	StaffID     *string                  `json:"staff_id,omitempty"`
	Service     domain.ServiceType       `json:"service"`
	StylistName string                   `json:"stylist_name"`
	DateTime    time.Time                `json:"appointment_datetime"`
	OldStatus   domain.AppointmentStatus `json:"old_status,omitempty"`
	NewStatus   domain.AppointmentStatus `json:"new_status"`
}

// PaymentPayload describes a payment transition.
type PaymentPayload struct {
	PaymentID string               `json:"payment_id"`
	Amount    string               `json:"amount"`
	Method    domain.PaymentMethod `json:"method"`
	OldStatus domain.PaymentStatus `json:"old_status"`
	NewStatus domain.PaymentStatus `json:"new_status"`
	Reference string               `json:"transaction_reference,omitempty"`
	PaidAt    *time.Time           `json:"paid_at,omitempty"`
}
