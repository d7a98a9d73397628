package dto

import "time"

// MarkPaidRequest optionally sets the method and reference.
type MarkPaidRequest struct {
	Method               string  `json:"method" validate:"omitempty,max=10"`
	TransactionReference *string `json:"transaction_reference" validate:"omitempty,max=100"`
}

// PaymentResponse mirrors a payment row with display labels.
type PaymentResponse struct {
	ID                   string     `json:"id"`
	Appointment          string     `json:"appointment"`
	CustomerUsername     string     `json:"customer_username"`
	ServiceDisplay       string     `json:"service_display"`
	Amount               string     `json:"amount"`
	Method               string     `json:"method"`
	MethodDisplay        string     `json:"method_display"`
	Status               string     `json:"status"`
	StatusDisplay        string     `json:"status_display"`
	TransactionReference string     `json:"transaction_reference"`
	PaidAt               *time.Time `json:"paid_at"`
	CreatedAt            time.Time  `json:"created_at"`
}

// MarkPaidResponse acknowledges a payment step.
type MarkPaidResponse struct {
	Detail  string          `json:"detail"`
	Payment PaymentResponse `json:"payment"`
}
