package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus enumerates payment lifecycle states.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentRequested PaymentStatus = "REQUESTED"
	PaymentPaid      PaymentStatus = "PAID"
)

// Label is the human readable status.
func (s PaymentStatus) Label() string {
	switch s {
	case PaymentPending:
		return "Pending"
	case PaymentRequested:
		return "Requested"
	case PaymentPaid:
		return "Paid"
	}
	return string(s)
}

// PaymentMethod enumerates accepted payment methods.
type PaymentMethod string

const (
	MethodCash PaymentMethod = "CASH"
	MethodCard PaymentMethod = "CARD"
	MethodUPI  PaymentMethod = "UPI"
)

// Valid reports whether m is a known method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodUPI:
		return true
	}
	return false
}

// Label is the human readable method.
func (m PaymentMethod) Label() string {
	switch m {
	case MethodCash:
		return "Cash"
	case MethodCard:
		return "Card"
	case MethodUPI:
		return "UPI"
	}
	return string(m)
}

// Payment is owned one-to-one by an appointment.
type Payment struct {
	ID                   string
	AppointmentID        string
	CustomerID           string
	CustomerUsername     string
	Service              ServiceType
	Amount               decimal.Decimal
	Method               PaymentMethod
	Status               PaymentStatus
	TransactionReference string
	PaidAt               *time.Time
	CreatedAt            time.Time
}
