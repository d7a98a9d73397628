package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/salon-service/internal/auth"
	"github.com/spec-kit/salon-service/internal/domain"
	"github.com/spec-kit/salon-service/internal/events"
	"github.com/spec-kit/salon-service/internal/observability"
	"github.com/spec-kit/salon-service/internal/repository"
	apperrors "github.com/spec-kit/salon-service/pkg/util/errorutil"
)

const slotTakenMessage = "this staff member is already booked for this slot"

// BookingRecorder counts booking outcomes.
type BookingRecorder interface {
	RecordBooking(outcome string)
}

// AppointmentService coordinates booking workflows.
type AppointmentService struct {
	users        repository.UserRepository
	schedules    repository.ScheduleRepository
	appointments repository.AppointmentRepository
	events       publisher
	metrics      BookingRecorder
	loc          *time.Location
	now          Clock
}

// AppointmentDependencies bundles repositories, the dispatcher and time settings.
type AppointmentDependencies struct {
	UserRepo        repository.UserRepository
	ScheduleRepo    repository.ScheduleRepository
	AppointmentRepo repository.AppointmentRepository
	Dispatcher      events.Dispatcher
	Metrics         BookingRecorder
	Location        *time.Location
	Clock           Clock
}

// AppointmentInput describes a booking request.
type AppointmentInput struct {
	StaffID  string
	Service  string
	DateTime time.Time
	Notes    string
}

// AppointmentQuery filters List.
type AppointmentQuery struct {
	Status string
	Search string
	Limit  int
	Offset int
}

// NewAppointmentService constructs the service.
func NewAppointmentService(deps AppointmentDependencies) *AppointmentService {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	now := clockOrNow(deps.Clock)
	return &AppointmentService{
		users:        deps.UserRepo,
		schedules:    deps.ScheduleRepo,
		appointments: deps.AppointmentRepo,
		events:       publisher{dispatcher: deps.Dispatcher, now: now},
		metrics:      deps.Metrics,
		loc:          loc,
		now:          now,
	}
}

// Create books a slot for the calling customer and opens its PENDING payment.
func (s *AppointmentService) Create(ctx context.Context, actor *domain.User, input AppointmentInput) (*domain.Appointment, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if !auth.CanCreateAppointment(actor.Role) {
		return nil, apperrors.NewForbidden("only customers can create appointments")
	}

	appt, err := s.validate(ctx, input)
	if err != nil {
		s.record(err)
		return nil, err
	}
	appt.CustomerID = actor.ID

	payment := &domain.Payment{
		Amount: appt.Service.Price(),
		Method: domain.MethodCash,
		Status: domain.PaymentPending,
	}
	if err := s.appointments.CreateWithPayment(ctx, appt, payment); err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotTaken):
			err = apperrors.NewConflict(slotTakenMessage, map[string]any{"appointment_datetime": slotTakenMessage})
		case errors.Is(err, repository.ErrNotFound):
			err = apperrors.NewFieldError("staff", "invalid staff id")
		default:
			err = apperrors.MapError(err)
		}
		s.record(err)
		return nil, err
	}
	s.record(nil)

	appt.CustomerUsername = actor.Username
	s.events.publish(ctx, events.Event{
		Type:          events.EventAppointmentBooked,
		AppointmentID: appt.ID,
		Actor:         actorOf(actor),
		Payload:       appointmentPayload(appt, "", appt.Status),
	})
	return appt, nil
}

// validate runs every write-time precondition and returns the appointment to insert.
func (s *AppointmentService) validate(ctx context.Context, input AppointmentInput) (*domain.Appointment, error) {
	service := domain.ServiceType(strings.ToUpper(strings.TrimSpace(input.Service)))
	if !service.Valid() {
		return nil, apperrors.NewFieldError("service", "service must be one of HAIRCUT, FACIAL, MANICURE, PEDICURE")
	}
	staff, err := loadStaff(ctx, s.users, input.StaffID, "staff")
	if err != nil {
		return nil, err
	}

	at := input.DateTime
	if at.IsZero() {
		return nil, apperrors.NewFieldError("appointment_datetime", "appointment time is required")
	}
	if !at.After(s.now()) {
		return nil, apperrors.NewFieldError("appointment_datetime", "appointment time must be in the future")
	}
	local := at.In(s.loc)
	if !domain.AlignedToSlot(local) {
		return nil, apperrors.NewFieldError("appointment_datetime", "appointments start on the hour or half hour")
	}

	day := domain.DateOf(at, s.loc)
	windows, err := s.schedules.List(ctx, repository.ScheduleFilter{
		StaffID:       &staff.ID,
		Date:          &day,
		AvailableOnly: true,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	covered := false
	for i := range windows {
		if windows[i].Covers(at, s.loc) {
			covered = true
			break
		}
	}
	if !covered {
		return nil, apperrors.NewFieldError("appointment_datetime", "staff member is not available at this time")
	}

	taken, err := s.appointments.HasBooking(ctx, staff.ID, at)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if taken {
		return nil, apperrors.NewConflict(slotTakenMessage, map[string]any{"appointment_datetime": slotTakenMessage})
	}

	staffID := staff.ID
	return &domain.Appointment{
		StaffID:         &staffID,
		StaffUsername:   staff.Username,
		Service:         service,
		StylistName:     staff.DisplayName(),
		DateTime:        at,
		DurationMinutes: domain.SlotMinutes,
		Notes:           strings.TrimSpace(input.Notes),
		Status:          domain.AppointmentBooked,
	}, nil
}

func (s *AppointmentService) record(err error) {
	if s.metrics == nil {
		return
	}
	switch de := apperrors.ToDomainError(err); {
	case de == nil:
		s.metrics.RecordBooking(observability.BookingCreated)
	case de.Code == "CONFLICT":
		s.metrics.RecordBooking(observability.BookingConflict)
	default:
		s.metrics.RecordBooking(observability.BookingRejected)
	}
}

// List returns appointments visible to the actor ordered by appointment time.
func (s *AppointmentService) List(ctx context.Context, actor *domain.User, query AppointmentQuery) ([]domain.Appointment, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	filter := repository.AppointmentFilter{
		CustomerID: auth.CustomerScope(actor),
		Limit:      query.Limit,
		Offset:     query.Offset,
	}
	if query.Status != "" {
		status := domain.AppointmentStatus(strings.ToUpper(query.Status))
		if !status.Valid() {
			return nil, apperrors.NewFieldError("status", "status must be one of BOOKED, CANCELLED, COMPLETED")
		}
		filter.Status = &status
	}
	if search := strings.TrimSpace(query.Search); search != "" {
		filter.SearchTerm = &search
	}
	appts, err := s.appointments.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return appts, nil
}

// Cancel moves a BOOKED appointment to CANCELLED. The payment is left untouched.
func (s *AppointmentService) Cancel(ctx context.Context, actor *domain.User, id string) (*domain.Appointment, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	appt, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanCancelAppointment(actor, appt) {
		return nil, apperrors.NewForbidden("you do not have access to cancel this appointment")
	}
	switch appt.Status {
	case domain.AppointmentCompleted:
		return nil, apperrors.NewStateConflict("completed appointments cannot be cancelled", statusDetails(appt.Status))
	case domain.AppointmentCancelled:
		return nil, apperrors.NewStateConflict("appointment is already cancelled", statusDetails(appt.Status))
	}
	return s.transition(ctx, actor, appt, domain.AppointmentCancelled, events.EventAppointmentCancelled)
}

// Complete moves a BOOKED appointment to COMPLETED.
func (s *AppointmentService) Complete(ctx context.Context, actor *domain.User, id string) (*domain.Appointment, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if !auth.CanCompleteAppointment(actor.Role) {
		return nil, apperrors.NewForbidden("only staff can complete appointments")
	}
	appt, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status != domain.AppointmentBooked {
		return nil, apperrors.NewStateConflict("only booked appointments can be completed", statusDetails(appt.Status))
	}
	return s.transition(ctx, actor, appt, domain.AppointmentCompleted, events.EventAppointmentCompleted)
}

func (s *AppointmentService) transition(ctx context.Context, actor *domain.User, appt *domain.Appointment, to domain.AppointmentStatus, eventType events.EventType) (*domain.Appointment, error) {
	from := appt.Status
	if err := s.appointments.UpdateStatus(ctx, appt.ID, from, to); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, apperrors.NewStateConflict("appointment status changed, reload and retry", nil)
		}
		return nil, notFoundOr(err, "appointment", "appointment_id", appt.ID)
	}
	appt.Status = to
	s.events.publish(ctx, events.Event{
		Type:          eventType,
		AppointmentID: appt.ID,
		Actor:         actorOf(actor),
		Payload:       appointmentPayload(appt, from, to),
	})
	return appt, nil
}

func (s *AppointmentService) get(ctx context.Context, id string) (*domain.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "appointment", "appointment_id", id)
	}
	return appt, nil
}

func statusDetails(status domain.AppointmentStatus) map[string]any {
	return map[string]any{"status": string(status)}
}

func appointmentPayload(appt *domain.Appointment, from, to domain.AppointmentStatus) events.AppointmentPayload {
	return events.AppointmentPayload{
		CustomerID:  appt.CustomerID,
		StaffID:     appt.StaffID,
		Service:     appt.Service,
		StylistName: appt.StylistName,
		DateTime:    appt.DateTime,
		OldStatus:   from,
		NewStatus:   to,
	}
}
