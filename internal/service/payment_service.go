package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/salon-service/internal/auth"
	"github.com/spec-kit/salon-service/internal/domain"
	"github.com/spec-kit/salon-service/internal/events"
	"github.com/spec-kit/salon-service/internal/repository"
	apperrors "github.com/spec-kit/salon-service/pkg/util/errorutil"
)

// PaymentService runs the two-step payment approval workflow.
type PaymentService struct {
	payments repository.PaymentRepository
	events   publisher
	now      Clock
}

// PaymentDependencies bundles repositories and the dispatcher.
type PaymentDependencies struct {
	PaymentRepo repository.PaymentRepository
	Dispatcher  events.Dispatcher
	Clock       Clock
}

// MarkPaidInput carries the optional method and reference.
type MarkPaidInput struct {
	Method    string
	Reference *string
}

// PaymentQuery filters List.
type PaymentQuery struct {
	Status string
	Limit  int
	Offset int
}

// MarkPaidResult tells which step was applied.
type MarkPaidResult struct {
	Payment *domain.Payment
	// Submitted is true for a customer submission (PENDING to REQUESTED) and false for an approval.
	Submitted bool
}

// NewPaymentService creates the service.
func NewPaymentService(deps PaymentDependencies) *PaymentService {
	now := clockOrNow(deps.Clock)
	return &PaymentService{
		payments: deps.PaymentRepo,
		events:   publisher{dispatcher: deps.Dispatcher, now: now},
		now:      now,
	}
}

// List returns payments newest first, restricted to the caller's own for customers.
func (s *PaymentService) List(ctx context.Context, actor *domain.User, query PaymentQuery) ([]domain.Payment, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	filter := repository.PaymentFilter{
		CustomerID: auth.CustomerScope(actor),
		Limit:      query.Limit,
		Offset:     query.Offset,
	}
	if query.Status != "" {
		status := domain.PaymentStatus(strings.ToUpper(query.Status))
		switch status {
		case domain.PaymentPending, domain.PaymentRequested, domain.PaymentPaid:
			filter.Status = &status
		default:
			return nil, apperrors.NewFieldError("status", "status must be one of PENDING, REQUESTED, PAID")
		}
	}
	payments, err := s.payments.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return payments, nil
}

// MarkPaid advances the payment one step. Customers submit their own PENDING payment; admins and
// staff approve a REQUESTED one, which stamps paid_at.
func (s *PaymentService) MarkPaid(ctx context.Context, actor *domain.User, id string, input MarkPaidInput) (*MarkPaidResult, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "payment", "payment_id", id)
	}

	transition := repository.PaymentTransition{
		ID:        payment.ID,
		From:      payment.Status,
		Method:    payment.Method,
		Reference: payment.TransactionReference,
	}
	var (
		submitted bool
		eventType events.EventType
	)
	switch {
	case actor.Role == domain.RoleCustomer:
		if !auth.CanSubmitPayment(actor, payment) {
			return nil, apperrors.NewForbidden("you do not have access to update this payment")
		}
		if payment.Status != domain.PaymentPending {
			return nil, apperrors.NewStateConflict("payment can only be submitted once from pending state", paymentDetails(payment.Status))
		}
		transition.To = domain.PaymentRequested
		submitted = true
		eventType = events.EventPaymentRequested
	case auth.CanApprovePayment(actor.Role):
		if payment.Status != domain.PaymentRequested {
			return nil, apperrors.NewStateConflict("customer has not submitted this payment for approval yet", paymentDetails(payment.Status))
		}
		paidAt := s.now()
		transition.To = domain.PaymentPaid
		transition.PaidAt = &paidAt
		eventType = events.EventPaymentPaid
	default:
		return nil, apperrors.NewForbidden("you do not have access to update this payment")
	}

	if strings.TrimSpace(input.Method) != "" {
		method := domain.PaymentMethod(strings.ToUpper(strings.TrimSpace(input.Method)))
		if !method.Valid() {
			return nil, apperrors.NewFieldError("method", "method must be one of CASH, CARD, UPI")
		}
		transition.Method = method
	}
	if input.Reference != nil {
		transition.Reference = strings.TrimSpace(*input.Reference)
	}

	updated, err := s.payments.Transition(ctx, transition)
	if err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, apperrors.NewStateConflict("payment status changed, reload and retry", nil)
		}
		return nil, notFoundOr(err, "payment", "payment_id", id)
	}

	s.events.publish(ctx, events.Event{
		Type:          eventType,
		AppointmentID: updated.AppointmentID,
		Actor:         actorOf(actor),
		Payload: events.PaymentPayload{
			PaymentID: updated.ID,
			Amount:    updated.Amount.StringFixed(2),
			Method:    updated.Method,
			OldStatus: transition.From,
			NewStatus: updated.Status,
			Reference: updated.TransactionReference,
			PaidAt:    updated.PaidAt,
		},
	})
	return &MarkPaidResult{Payment: updated, Submitted: submitted}, nil
}

func paymentDetails(status domain.PaymentStatus) map[string]any {
	return map[string]any{"status": string(status)}
}
