package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/salon-service/internal/config"
	"github.com/spec-kit/salon-service/internal/domain"
	"github.com/spec-kit/salon-service/internal/events"
	"github.com/spec-kit/salon-service/internal/repository/memory"
	apperrors "github.com/spec-kit/salon-service/pkg/util/errorutil"
)

var testNow = time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)

type recordedEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordedEvents) Publish(_ context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordedEvents) Subscribe(events.EventType, events.EventHandler) {}

func (r *recordedEvents) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type bookingCounter struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (b *bookingCounter) RecordBooking(outcome string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.outcomes == nil {
		b.outcomes = map[string]int{}
	}
	b.outcomes[outcome]++
}

type fixture struct {
	store        *memory.Store
	clock        time.Time
	events       *recordedEvents
	metrics      *bookingCounter
	auth         *AuthService
	schedules    *ScheduleService
	slots        *SlotService
	appointments *AppointmentService
	payments     *PaymentService
	dashboard    *DashboardService

	admin    *domain.User
	staff    *domain.User
	customer *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:   memory.NewStore(),
		clock:   testNow,
		events:  &recordedEvents{},
		metrics: &bookingCounter{},
	}
	clock := func() time.Time { return f.clock }

	f.auth = NewAuthService(config.AuthConfig{JWTSecret: "test-secret", BcryptCost: bcrypt.MinCost}, AuthDependencies{
		UserRepo: f.store.Users(),
	})
	f.schedules = NewScheduleService(ScheduleDependencies{
		UserRepo:     f.store.Users(),
		ScheduleRepo: f.store.Schedules(),
	})
	f.slots = NewSlotService(SlotDependencies{
		UserRepo:        f.store.Users(),
		ScheduleRepo:    f.store.Schedules(),
		AppointmentRepo: f.store.Appointments(),
		Location:        time.UTC,
		Clock:           clock,
	})
	f.appointments = NewAppointmentService(AppointmentDependencies{
		UserRepo:        f.store.Users(),
		ScheduleRepo:    f.store.Schedules(),
		AppointmentRepo: f.store.Appointments(),
		Dispatcher:      f.events,
		Metrics:         f.metrics,
		Location:        time.UTC,
		Clock:           clock,
	})
	f.payments = NewPaymentService(PaymentDependencies{
		PaymentRepo: f.store.Payments(),
		Dispatcher:  f.events,
		Clock:       clock,
	})
	f.dashboard = NewDashboardService(DashboardDependencies{
		DashboardRepo:   f.store.Dashboard(),
		AppointmentRepo: f.store.Appointments(),
		Location:        time.UTC,
		Clock:           clock,
	})

	f.admin = f.user(t, "admin", domain.RoleAdmin)
	f.staff = f.user(t, "stylist", domain.RoleStaff)
	f.customer = f.user(t, "carol", domain.RoleCustomer)
	return f
}

func (f *fixture) user(t *testing.T, username string, role domain.Role) *domain.User {
	t.Helper()
	user, err := f.auth.Bootstrap(context.Background(), AccountInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) window(t *testing.T, start, end string) {
	t.Helper()
	_, err := f.schedules.Create(context.Background(), f.admin, ScheduleInput{
		StaffID:     f.staff.ID,
		Date:        "2030-01-01",
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
	})
	require.NoError(t, err)
}

func (f *fixture) book(t *testing.T, customer *domain.User, hour, minute int) *domain.Appointment {
	t.Helper()
	appt, err := f.appointments.Create(context.Background(), customer, AppointmentInput{
		StaffID:  f.staff.ID,
		Service:  "HAIRCUT",
		DateTime: at(hour, minute),
	})
	require.NoError(t, err)
	return appt
}

func at(hour, minute int) time.Time {
	return time.Date(2030, 1, 1, hour, minute, 0, 0, time.UTC)
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, apperrors.ToDomainError(err).Code, err.Error())
}

func assertField(t *testing.T, err error, field string) {
	t.Helper()
	assertCode(t, err, "VALIDATION_FAILED")
	assert.Contains(t, apperrors.ToDomainError(err).Details, field)
}
