package dto

import "time"

// CreateAppointmentRequest books a slot. AppointmentDateTime is RFC 3339.
type CreateAppointmentRequest struct {
	Staff               string `json:"staff" validate:"required"`
	Service             string `json:"service" validate:"required"`
	AppointmentDateTime string `json:"appointment_datetime" validate:"required"`
	Notes               string `json:"notes" validate:"max=2000"`
}

// AppointmentResponse mirrors an appointment row with display labels.
type AppointmentResponse struct {
	ID                  string    `json:"id"`
	Customer            string    `json:"customer"`
	CustomerUsername    string    `json:"customer_username"`
	Staff               *string   `json:"staff"`
	StaffUsername       string    `json:"staff_username"`
	Service             string    `json:"service"`
	ServiceDisplay      string    `json:"service_display"`
	StylistName         string    `json:"stylist_name"`
	AppointmentDateTime time.Time `json:"appointment_datetime"`
	DurationMinutes     int       `json:"duration_minutes"`
	Notes               string    `json:"notes"`
	Status              string    `json:"status"`
	StatusDisplay       string    `json:"status_display"`
	CreatedAt           time.Time `json:"created_at"`
}

// AppointmentActionResponse acknowledges a lifecycle action.
type AppointmentActionResponse struct {
	Detail      string              `json:"detail"`
	Appointment AppointmentResponse `json:"appointment"`
}
