package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SlotDuration is the fixed length of every appointment.
const SlotDuration = 30 * time.Minute

// SlotMinutes is SlotDuration in minutes.
const SlotMinutes = 30

// ServiceType enumerates bookable salon services.
type ServiceType string

const (
	ServiceHaircut  ServiceType = "HAIRCUT"
	ServiceFacial   ServiceType = "FACIAL"
	ServiceManicure ServiceType = "MANICURE"
	ServicePedicure ServiceType = "PEDICURE"
)

var servicePrices = map[ServiceType]decimal.Decimal{
	ServiceHaircut:  decimal.NewFromInt(20),
	ServiceFacial:   decimal.NewFromInt(35),
	ServiceManicure: decimal.NewFromInt(25),
	ServicePedicure: decimal.NewFromInt(30),
}

var serviceLabels = map[ServiceType]string{
	ServiceHaircut:  "Haircut",
	ServiceFacial:   "Facial",
	ServiceManicure: "Manicure",
	ServicePedicure: "Pedicure",
}

// Valid reports whether s is a known service.
func (s ServiceType) Valid() bool {
	_, ok := servicePrices[s]
	return ok
}

// Price returns the fixed price of the service, zero when unknown.
func (s ServiceType) Price() decimal.Decimal {
	if p, ok := servicePrices[s]; ok {
		return p
	}
	return decimal.Zero
}

// Label is the human readable service name.
func (s ServiceType) Label() string {
	if l, ok := serviceLabels[s]; ok {
		return l
	}
	return string(s)
}

// AppointmentStatus enumerates appointment lifecycle states.
type AppointmentStatus string

const (
	AppointmentBooked    AppointmentStatus = "BOOKED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
)

// Valid reports whether s is a known status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentBooked, AppointmentCancelled, AppointmentCompleted:
		return true
	}
	return false
}

// Label is the human readable status.
func (s AppointmentStatus) Label() string {
	switch s {
	case AppointmentBooked:
		return "Booked"
	case AppointmentCancelled:
		return "Cancelled"
	case AppointmentCompleted:
		return "Completed"
	}
	return string(s)
}

// Appointment links a customer, a staff member and a 30-minute slot.
type Appointment struct {
	ID               string
	CustomerID       string
	CustomerUsername string
	StaffID          *string
	StaffUsername    string
	Service          ServiceType
	StylistName      string
	DateTime         time.Time
	DurationMinutes  int
	Notes            string
	Status           AppointmentStatus
	CreatedAt        time.Time
}

// AlignedToSlot reports whether t starts on a 30-minute boundary with no seconds.
func AlignedToSlot(t time.Time) bool {
	return (t.Minute() == 0 || t.Minute() == 30) && t.Second() == 0 && t.Nanosecond() == 0
}
