package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/spec-kit/salon-service/internal/domain"
	"github.com/spec-kit/salon-service/internal/persistence"
	"github.com/spec-kit/salon-service/internal/repository"
)

var slot = time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)

type pgEnv struct {
	users        repository.UserRepository
	appointments repository.AppointmentRepository
	payments     repository.PaymentRepository
	dashboard    repository.DashboardRepository

	staff *domain.User
}

func newPostgres(t *testing.T) *pgEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container tests are skipped in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	container, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tcpostgres.WithDatabase("salon_test"),
		tcpostgres.WithUsername("salon"),
		tcpostgres.WithPassword("salon"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, persistence.RunMigrations(ctx, pool, "../../migrations", zap.NewNop()))

	env := &pgEnv{
		users:        repository.NewUserRepository(pool),
		appointments: repository.NewAppointmentRepository(pool),
		payments:     repository.NewPaymentRepository(pool),
		dashboard:    repository.NewDashboardRepository(pool),
	}
	env.staff = env.user(t, "stylist", domain.RoleStaff)
	return env
}

func (e *pgEnv) user(t *testing.T, username string, role domain.Role) *domain.User {
	t.Helper()
	user := &domain.User{Username: username, PasswordHash: "x", Role: role}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func (e *pgEnv) book(ctx context.Context, customer *domain.User, at time.Time) (*domain.Appointment, *domain.Payment, error) {
	staffID := e.staff.ID
	appt := &domain.Appointment{
		CustomerID:      customer.ID,
		StaffID:         &staffID,
		Service:         domain.ServiceHaircut,
		StylistName:     "stylist",
		DateTime:        at,
		DurationMinutes: domain.SlotMinutes,
		Status:          domain.AppointmentBooked,
	}
	payment := &domain.Payment{
		Amount: domain.ServiceHaircut.Price(),
		Method: domain.MethodCash,
		Status: domain.PaymentPending,
	}
	err := e.appointments.CreateWithPayment(ctx, appt, payment)
	return appt, payment, err
}

func TestPostgresRejectsSecondBookingOfSameSlot(t *testing.T) {
	env := newPostgres(t)
	ctx := context.Background()
	customers := []*domain.User{
		env.user(t, "carol", domain.RoleCustomer),
		env.user(t, "dave", domain.RoleCustomer),
	}

	var wg sync.WaitGroup
	errs := make([]error, len(customers))
	for i, customer := range customers {
		wg.Add(1)
		go func(i int, customer *domain.User) {
			defer wg.Done()
			_, _, errs[i] = env.book(ctx, customer, slot)
		}(i, customer)
	}
	wg.Wait()

	var ok, taken int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, repository.ErrSlotTaken):
			taken++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, taken)

	payments, err := env.payments.List(ctx, repository.PaymentFilter{})
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestPostgresCancelledSlotCanBeRebooked(t *testing.T) {
	env := newPostgres(t)
	ctx := context.Background()
	carol := env.user(t, "carol", domain.RoleCustomer)

	appt, _, err := env.book(ctx, carol, slot)
	require.NoError(t, err)
	require.NoError(t, env.appointments.UpdateStatus(ctx, appt.ID, domain.AppointmentBooked, domain.AppointmentCancelled))
	assert.ErrorIs(t, env.appointments.UpdateStatus(ctx, appt.ID, domain.AppointmentBooked, domain.AppointmentCancelled), repository.ErrStaleState)

	_, _, err = env.book(ctx, carol, slot)
	assert.NoError(t, err)
}

func TestPostgresPaymentTransitionIsGuarded(t *testing.T) {
	env := newPostgres(t)
	ctx := context.Background()
	carol := env.user(t, "carol", domain.RoleCustomer)
	_, payment, err := env.book(ctx, carol, slot)
	require.NoError(t, err)

	requested, err := env.payments.Transition(ctx, repository.PaymentTransition{
		ID:        payment.ID,
		From:      domain.PaymentPending,
		To:        domain.PaymentRequested,
		Method:    domain.MethodUPI,
		Reference: "TXN-1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRequested, requested.Status)
	assert.Equal(t, domain.MethodUPI, requested.Method)
	assert.Equal(t, domain.ServiceHaircut.Price().StringFixed(2), requested.Amount.StringFixed(2))

	_, err = env.payments.Transition(ctx, repository.PaymentTransition{
		ID:     payment.ID,
		From:   domain.PaymentPending,
		To:     domain.PaymentRequested,
		Method: domain.MethodCash,
	})
	assert.ErrorIs(t, err, repository.ErrStaleState)

	paidAt := slot.Add(-time.Hour)
	paid, err := env.payments.Transition(ctx, repository.PaymentTransition{
		ID:        payment.ID,
		From:      domain.PaymentRequested,
		To:        domain.PaymentPaid,
		Method:    requested.Method,
		Reference: requested.TransactionReference,
		PaidAt:    &paidAt,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
	assert.True(t, paid.PaidAt.Equal(paidAt))
}

func TestPostgresDashboardCounts(t *testing.T) {
	env := newPostgres(t)
	ctx := context.Background()
	carol := env.user(t, "carol", domain.RoleCustomer)
	dave := env.user(t, "dave", domain.RoleCustomer)

	_, _, err := env.book(ctx, carol, slot)
	require.NoError(t, err)
	_, _, err = env.book(ctx, carol, slot.Add(30*time.Minute))
	require.NoError(t, err)
	_, _, err = env.book(ctx, dave, slot.Add(24*time.Hour))
	require.NoError(t, err)

	dayStart := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	query := repository.DashboardQuery{
		Now:        dayStart.Add(8 * time.Hour),
		TodayStart: dayStart,
		TodayEnd:   dayStart.AddDate(0, 0, 1),
		WeekEnd:    dayStart.AddDate(0, 0, 7),
	}

	all, err := env.dashboard.Counts(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, repository.DashboardCounts{
		Appointments:    3,
		Upcoming:        3,
		Today:           2,
		Week:            3,
		PendingPayments: 3,
	}, all)

	query.CustomerID = &dave.ID
	own, err := env.dashboard.Counts(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, repository.DashboardCounts{
		Appointments:    1,
		Upcoming:        1,
		Week:            1,
		PendingPayments: 1,
	}, own)

	load, err := env.dashboard.StaffLoad(ctx, query.TodayStart, query.TodayEnd)
	require.NoError(t, err)
	assert.Equal(t, []repository.StaffLoad{{StaffUsername: "stylist", BookedSlots: 2}}, load)
}
