package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/salon-service/internal/api/http/handlers"
	"github.com/spec-kit/salon-service/internal/auth"
	"github.com/spec-kit/salon-service/internal/config"
	"github.com/spec-kit/salon-service/internal/domain"
	"github.com/spec-kit/salon-service/internal/events"
	"github.com/spec-kit/salon-service/internal/observability"
	"github.com/spec-kit/salon-service/internal/repository/memory"
	"github.com/spec-kit/salon-service/internal/service"
)

var testNow = time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)

type testServer struct {
	app   *fiber.App
	auth  *service.AuthService
	staff *domain.User
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	store := memory.NewStore()
	dispatcher := events.NewInMemoryDispatcher(logger)
	clock := func() time.Time { return testNow }

	authService := service.NewAuthService(config.AuthConfig{JWTSecret: "test-secret", BcryptCost: bcrypt.MinCost}, service.AuthDependencies{
		UserRepo: store.Users(),
	})
	scheduleService := service.NewScheduleService(service.ScheduleDependencies{
		UserRepo:     store.Users(),
		ScheduleRepo: store.Schedules(),
	})
	slotService := service.NewSlotService(service.SlotDependencies{
		UserRepo:        store.Users(),
		ScheduleRepo:    store.Schedules(),
		AppointmentRepo: store.Appointments(),
		Clock:           clock,
	})
	appointmentService := service.NewAppointmentService(service.AppointmentDependencies{
		UserRepo:        store.Users(),
		ScheduleRepo:    store.Schedules(),
		AppointmentRepo: store.Appointments(),
		Dispatcher:      dispatcher,
		Metrics:         metrics,
		Clock:           clock,
	})
	paymentService := service.NewPaymentService(service.PaymentDependencies{
		PaymentRepo: store.Payments(),
		Dispatcher:  dispatcher,
		Clock:       clock,
	})
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		DashboardRepo:   store.Dashboard(),
		AppointmentRepo: store.Appointments(),
		Clock:           clock,
	})

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger, metrics)})
	RegisterMiddlewares(app, logger, metrics, time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("salon-service", "test",
			handlers.Backend{Concern: "storage", Mode: "memory"},
			handlers.Backend{Concern: "token_blacklist", Mode: "memory"},
		),
		Accounts:       handlers.NewAccountsHandler(authService),
		Appointments:   handlers.NewAppointmentsHandler(appointmentService, time.UTC),
		Schedules:      handlers.NewSchedulesHandler(scheduleService, slotService),
		Payments:       handlers.NewPaymentsHandler(paymentService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService, time.UTC),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), store.Users()),
		Metrics:        metrics,
		AuthPerMinute:  3,
	})

	s := &testServer{app: app, auth: authService}
	s.seed(t, "admin", domain.RoleAdmin)
	s.staff = s.seed(t, "stylist", domain.RoleStaff)
	return s
}

func (s *testServer) seed(t *testing.T, username string, role domain.Role) *domain.User {
	t.Helper()
	user, err := s.auth.Bootstrap(context.Background(), service.AccountInput{
		Username: username,
		Password: "password123",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func (s *testServer) call(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func (s *testServer) login(t *testing.T, username string) string {
	t.Helper()
	status, body := s.call(t, nethttp.MethodPost, "/api/accounts/login", "", map[string]string{
		"username": username, "password": "password123",
	})
	require.Equal(t, nethttp.StatusOK, status, string(body))
	var tokens struct {
		Access string `json:"access"`
	}
	require.NoError(t, json.Unmarshal(body, &tokens))
	return tokens.Access
}

func (s *testServer) register(t *testing.T, username string) (access, refresh string) {
	t.Helper()
	status, body := s.call(t, nethttp.MethodPost, "/api/accounts/register", "", map[string]string{
		"username": username, "password": "password123",
	})
	require.Equal(t, nethttp.StatusCreated, status, string(body))
	var tokens struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
		User    struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(body, &tokens))
	require.Equal(t, "CUSTOMER", tokens.User.Role)
	return tokens.Access, tokens.Refresh
}

type errorBody struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, body []byte) errorBody {
	t.Helper()
	var out errorBody
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

func TestBookingAndPaymentFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin")
	staff := s.login(t, "stylist")
	carol, _ := s.register(t, "carol")
	dave, _ := s.register(t, "dave")

	status, body := s.call(t, nethttp.MethodPost, "/api/staff-schedules", admin, map[string]any{
		"staff": s.staff.ID, "schedule_date": "2030-01-01", "start_time": "09:00", "end_time": "10:00",
	})
	require.Equal(t, nethttp.StatusCreated, status, string(body))

	slotsPath := "/api/available-slots?staff_id=" + s.staff.ID + "&date=2030-01-01"
	status, body = s.call(t, nethttp.MethodGet, slotsPath, carol, nil)
	require.Equal(t, nethttp.StatusOK, status, string(body))
	var slots struct {
		StaffUsername string   `json:"staff_username"`
		Duration      int      `json:"slot_duration_minutes"`
		Slots         []string `json:"available_slots"`
	}
	require.NoError(t, json.Unmarshal(body, &slots))
	assert.Equal(t, "stylist", slots.StaffUsername)
	assert.Equal(t, 30, slots.Duration)
	assert.Equal(t, []string{"2030-01-01T09:00:00Z", "2030-01-01T09:30:00Z"}, slots.Slots)

	booking := map[string]any{"staff": s.staff.ID, "service": "HAIRCUT", "appointment_datetime": "2030-01-01T09:00:00Z"}
	status, body = s.call(t, nethttp.MethodPost, "/api/appointments", carol, booking)
	require.Equal(t, nethttp.StatusCreated, status, string(body))
	var appt struct {
		ID             string `json:"id"`
		Status         string `json:"status"`
		ServiceDisplay string `json:"service_display"`
		StaffUsername  string `json:"staff_username"`
	}
	require.NoError(t, json.Unmarshal(body, &appt))
	assert.Equal(t, "BOOKED", appt.Status)
	assert.Equal(t, "stylist", appt.StaffUsername)

	status, body = s.call(t, nethttp.MethodPost, "/api/appointments", dave, booking)
	require.Equal(t, nethttp.StatusConflict, status, string(body))
	assert.Equal(t, "CONFLICT", decodeError(t, body).Error.Code)

	status, body = s.call(t, nethttp.MethodGet, slotsPath, dave, nil)
	require.Equal(t, nethttp.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &slots))
	assert.Equal(t, []string{"2030-01-01T09:30:00Z"}, slots.Slots)

	status, body = s.call(t, nethttp.MethodGet, "/api/payments", carol, nil)
	require.Equal(t, nethttp.StatusOK, status)
	var payments []struct {
		ID          string `json:"id"`
		Appointment string `json:"appointment"`
		Amount      string `json:"amount"`
		Status      string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(body, &payments))
	require.Len(t, payments, 1)
	assert.Equal(t, appt.ID, payments[0].Appointment)
	assert.Equal(t, "20.00", payments[0].Amount)
	assert.Equal(t, "PENDING", payments[0].Status)
	markPaid := "/api/payments/" + payments[0].ID + "/mark-paid"

	status, body = s.call(t, nethttp.MethodPost, markPaid, staff, nil)
	require.Equal(t, nethttp.StatusConflict, status, string(body))
	assert.Equal(t, "STATE_CONFLICT", decodeError(t, body).Error.Code)

	status, _ = s.call(t, nethttp.MethodPost, markPaid, dave, map[string]any{"method": "CARD"})
	assert.Equal(t, nethttp.StatusForbidden, status)

	status, body = s.call(t, nethttp.MethodPost, markPaid, carol, map[string]any{"method": "CARD", "transaction_reference": "abc"})
	require.Equal(t, nethttp.StatusAccepted, status, string(body))
	assert.Contains(t, string(body), `"status":"REQUESTED"`)

	status, body = s.call(t, nethttp.MethodPost, markPaid, staff, nil)
	require.Equal(t, nethttp.StatusOK, status, string(body))
	var paid struct {
		Payment struct {
			Status string  `json:"status"`
			Method string  `json:"method"`
			PaidAt *string `json:"paid_at"`
		} `json:"payment"`
	}
	require.NoError(t, json.Unmarshal(body, &paid))
	assert.Equal(t, "PAID", paid.Payment.Status)
	assert.Equal(t, "CARD", paid.Payment.Method)
	assert.NotNil(t, paid.Payment.PaidAt)

	status, body = s.call(t, nethttp.MethodGet, "/api/dashboard", admin, nil)
	require.Equal(t, nethttp.StatusOK, status)
	var dash map[string]any
	require.NoError(t, json.Unmarshal(body, &dash))
	assert.EqualValues(t, 1, dash["appointments_count"])
	assert.EqualValues(t, 0, dash["pending_payments"])
	assert.Equal(t, []any{map[string]any{"staff": "stylist", "booked_slots": float64(1)}}, dash["staff_today_load"])

	status, body = s.call(t, nethttp.MethodGet, "/api/dashboard", dave, nil)
	require.Equal(t, nethttp.StatusOK, status)
	dash = map[string]any{}
	require.NoError(t, json.Unmarshal(body, &dash))
	assert.EqualValues(t, 0, dash["appointments_count"])
	assert.Equal(t, []any{}, dash["recent_appointments"])
	assert.NotContains(t, dash, "staff_today_load")
}

func TestCancelAndComplete(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin")
	staff := s.login(t, "stylist")
	carol, _ := s.register(t, "carol")

	status, _ := s.call(t, nethttp.MethodPost, "/api/staff-schedules", admin, map[string]any{
		"staff": s.staff.ID, "schedule_date": "2030-01-01", "start_time": "09:00:00", "end_time": "11:00:00",
	})
	require.Equal(t, nethttp.StatusCreated, status)

	book := func(at string) string {
		status, body := s.call(t, nethttp.MethodPost, "/api/appointments", carol, map[string]any{
			"staff": s.staff.ID, "service": "facial", "appointment_datetime": at,
		})
		require.Equal(t, nethttp.StatusCreated, status, string(body))
		var appt struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(body, &appt))
		return appt.ID
	}
	first := book("2030-01-01T09:00:00Z")
	second := book("2030-01-01T10:00:00Z")

	status, body := s.call(t, nethttp.MethodPost, "/api/appointments/"+first+"/cancel", carol, nil)
	require.Equal(t, nethttp.StatusOK, status, string(body))
	assert.Contains(t, string(body), "Appointment cancelled.")

	status, body = s.call(t, nethttp.MethodPost, "/api/appointments/"+first+"/cancel", carol, nil)
	require.Equal(t, nethttp.StatusConflict, status)
	assert.Equal(t, "STATE_CONFLICT", decodeError(t, body).Error.Code)

	status, _ = s.call(t, nethttp.MethodPost, "/api/appointments/"+second+"/complete", carol, nil)
	assert.Equal(t, nethttp.StatusForbidden, status)

	status, _ = s.call(t, nethttp.MethodPost, "/api/appointments/"+second+"/complete", staff, nil)
	require.Equal(t, nethttp.StatusOK, status)

	status, _ = s.call(t, nethttp.MethodPost, "/api/appointments/"+second+"/cancel", admin, nil)
	assert.Equal(t, nethttp.StatusConflict, status)

	status, body = s.call(t, nethttp.MethodGet, "/api/appointments?status=COMPLETED", carol, nil)
	require.Equal(t, nethttp.StatusOK, status)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, second, list[0]["id"])
	assert.Equal(t, "Facial", list[0]["service_display"])
}

func TestBookingValidationErrors(t *testing.T) {
	s := newTestServer(t)
	carol, _ := s.register(t, "carol")

	status, body := s.call(t, nethttp.MethodPost, "/api/appointments", carol, map[string]any{"service": "HAIRCUT"})
	require.Equal(t, nethttp.StatusBadRequest, status)
	errBody := decodeError(t, body)
	assert.Equal(t, "VALIDATION_FAILED", errBody.Error.Code)
	assert.Contains(t, errBody.Error.Details, "staff")
	assert.Contains(t, errBody.Error.Details, "appointment_datetime")

	status, body = s.call(t, nethttp.MethodPost, "/api/appointments", carol, map[string]any{
		"staff": s.staff.ID, "service": "HAIRCUT", "appointment_datetime": "tomorrow",
	})
	require.Equal(t, nethttp.StatusBadRequest, status)
	assert.Contains(t, decodeError(t, body).Error.Details, "appointment_datetime")

	status, body = s.call(t, nethttp.MethodPost, "/api/appointments", carol, map[string]any{
		"staff": s.staff.ID, "service": "HAIRCUT", "appointment_datetime": "2030-01-01T09:15:00Z",
	})
	require.Equal(t, nethttp.StatusBadRequest, status)
	assert.Contains(t, decodeError(t, body).Error.Details, "appointment_datetime")

	status, body = s.call(t, nethttp.MethodGet, "/api/available-slots?staff_id="+s.staff.ID+"&date=2029-12-31", carol, nil)
	require.Equal(t, nethttp.StatusBadRequest, status)
	assert.Contains(t, decodeError(t, body).Error.Details, "date")
}

func TestAccountEndpoints(t *testing.T) {
	s := newTestServer(t)

	status, body := s.call(t, nethttp.MethodPost, "/api/accounts/register", "", map[string]string{"username": "erin", "password": "short"})
	require.Equal(t, nethttp.StatusBadRequest, status)
	assert.Contains(t, decodeError(t, body).Error.Details, "password")

	access, refresh := s.register(t, "erin")

	status, body = s.call(t, nethttp.MethodPost, "/api/accounts/register", "", map[string]string{"username": "erin", "password": "password123"})
	require.Equal(t, nethttp.StatusBadRequest, status)
	assert.Contains(t, decodeError(t, body).Error.Details, "username")

	status, body = s.call(t, nethttp.MethodGet, "/api/accounts/profile", access, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Contains(t, string(body), `"username":"erin"`)

	status, body = s.call(t, nethttp.MethodPost, "/api/accounts/token/refresh", "", map[string]string{"refresh": refresh})
	require.Equal(t, nethttp.StatusOK, status, string(body))
	assert.Contains(t, string(body), `"access"`)

	status, _ = s.call(t, nethttp.MethodPost, "/api/accounts/logout", access, map[string]string{"refresh": refresh})
	assert.Equal(t, nethttp.StatusResetContent, status)

	status, body = s.call(t, nethttp.MethodPost, "/api/accounts/logout", access, map[string]string{"refresh": refresh})
	require.Equal(t, nethttp.StatusBadRequest, status)
	assert.Contains(t, decodeError(t, body).Error.Details, "refresh")

	status, _ = s.call(t, nethttp.MethodPost, "/api/accounts/token/refresh", "", map[string]string{"refresh": refresh})
	assert.Equal(t, nethttp.StatusUnauthorized, status)

	status, _ = s.call(t, nethttp.MethodPost, "/api/accounts/password/change", access, map[string]string{
		"current_password": "password123", "new_password": "password456",
	})
	assert.Equal(t, nethttp.StatusOK, status)
	status, _ = s.call(t, nethttp.MethodPost, "/api/accounts/login", "", map[string]string{"username": "erin", "password": "password456"})
	assert.Equal(t, nethttp.StatusOK, status)
}

func TestOverlongPasswordsAreRejected(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin")
	long := strings.Repeat("a", 80)

	status, body := s.call(t, nethttp.MethodPost, "/api/accounts/register", "", map[string]string{"username": "longpw", "password": long})
	require.Equal(t, nethttp.StatusBadRequest, status, string(body))
	assert.Contains(t, decodeError(t, body).Error.Details, "password")

	status, body = s.call(t, nethttp.MethodPost, "/api/accounts/users", admin, map[string]string{"username": "longpw", "password": long, "role": "STAFF"})
	require.Equal(t, nethttp.StatusBadRequest, status, string(body))
	assert.Contains(t, decodeError(t, body).Error.Details, "password")

	status, body = s.call(t, nethttp.MethodPost, "/api/accounts/password/change", admin, map[string]string{
		"current_password": "password123", "new_password": long,
	})
	require.Equal(t, nethttp.StatusBadRequest, status, string(body))
	assert.Contains(t, decodeError(t, body).Error.Details, "new_password")
}

func TestAdminUserManagement(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin")
	carol, _ := s.register(t, "carol")

	newStaff := map[string]string{"username": "gina", "password": "password123", "role": "STAFF"}
	status, _ := s.call(t, nethttp.MethodPost, "/api/accounts/users", carol, newStaff)
	assert.Equal(t, nethttp.StatusForbidden, status)

	status, body := s.call(t, nethttp.MethodPost, "/api/accounts/users", admin, map[string]string{"username": "hal", "password": "password123", "role": "OWNER"})
	require.Equal(t, nethttp.StatusBadRequest, status)
	assert.Contains(t, decodeError(t, body).Error.Details, "role")

	status, body = s.call(t, nethttp.MethodPost, "/api/accounts/users", admin, newStaff)
	require.Equal(t, nethttp.StatusCreated, status, string(body))
	var gina struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(body, &gina))
	assert.Equal(t, "STAFF", gina.Role)

	status, body = s.call(t, nethttp.MethodGet, "/api/staff", carol, nil)
	require.Equal(t, nethttp.StatusOK, status)
	var staff []struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(body, &staff))
	require.Len(t, staff, 2)
	assert.Equal(t, "gina", staff[0].Username)
	assert.Equal(t, "stylist", staff[1].Username)

	status, _ = s.call(t, nethttp.MethodDelete, "/api/accounts/users/"+gina.ID, admin, nil)
	assert.Equal(t, nethttp.StatusNoContent, status)
	status, _ = s.call(t, nethttp.MethodDelete, "/api/accounts/users/"+gina.ID, admin, nil)
	assert.Equal(t, nethttp.StatusNotFound, status)
}

func TestRoleGates(t *testing.T) {
	s := newTestServer(t)
	staff := s.login(t, "stylist")
	carol, _ := s.register(t, "carol")

	status, body := s.call(t, nethttp.MethodGet, "/api/appointments", "", nil)
	require.Equal(t, nethttp.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, body).Error.Code)

	status, _ = s.call(t, nethttp.MethodGet, "/api/staff-schedules", carol, nil)
	assert.Equal(t, nethttp.StatusForbidden, status)
	status, _ = s.call(t, nethttp.MethodGet, "/api/staff-schedules", staff, nil)
	assert.Equal(t, nethttp.StatusForbidden, status)

	status, body = s.call(t, nethttp.MethodPost, "/api/appointments", staff, map[string]any{
		"staff": s.staff.ID, "service": "HAIRCUT", "appointment_datetime": "2030-01-01T09:00:00Z",
	})
	require.Equal(t, nethttp.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", decodeError(t, body).Error.Code)
}

func TestLoginIsRateLimited(t *testing.T) {
	s := newTestServer(t)
	creds := map[string]string{"username": "admin", "password": "wrong-password"}
	for i := 0; i < 3; i++ {
		status, _ := s.call(t, nethttp.MethodPost, "/api/accounts/login", "", creds)
		require.Equal(t, nethttp.StatusUnauthorized, status)
	}
	status, body := s.call(t, nethttp.MethodPost, "/api/accounts/login", "", creds)
	require.Equal(t, nethttp.StatusTooManyRequests, status)
	assert.Equal(t, "RATE_LIMITED", decodeError(t, body).Error.Code)
}

func TestUnknownRouteUsesErrorEnvelope(t *testing.T) {
	s := newTestServer(t)
	status, body := s.call(t, nethttp.MethodGet, "/nothing-here", "", nil)
	require.Equal(t, nethttp.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decodeError(t, body).Error.Code)
}

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestReadinessFailsWhenExternalBackendIsDown(t *testing.T) {
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger, metrics)})
	health := handlers.NewHealthHandler("salon-service", "test",
		handlers.Backend{Concern: "storage", Mode: "postgres", Check: pingFunc(func(context.Context) error { return nil })},
		handlers.Backend{Concern: "token_blacklist", Mode: "redis", Check: pingFunc(func(context.Context) error { return errors.New("connection refused") })},
		handlers.Backend{Concern: "events", Mode: "in-process"},
	)
	app.Get("/health/ready", health.Ready)

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Equal(t, nethttp.StatusServiceUnavailable, resp.StatusCode)
	envelope := decodeError(t, body)
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", envelope.Error.Code)
	assert.Equal(t, map[string]any{"redis": "connection refused"}, envelope.Error.Details)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	status, body := s.call(t, nethttp.MethodGet, "/health/ready", "", nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Contains(t, string(body), `"storage":"memory"`)
	assert.Contains(t, string(body), `"token_blacklist":"memory"`)

	status, _ = s.call(t, nethttp.MethodGet, "/health/live", "", nil)
	require.Equal(t, nethttp.StatusOK, status)

	status, body = s.call(t, nethttp.MethodGet, "/metrics", "", nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.True(t, strings.Contains(string(body), "salon_http_requests_total"), "request counter exported")
}
