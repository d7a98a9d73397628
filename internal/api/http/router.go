package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/salon-service/internal/api/http/handlers"
	"github.com/spec-kit/salon-service/internal/auth"
	"github.com/spec-kit/salon-service/internal/domain"
	"github.com/spec-kit/salon-service/internal/observability"
	apperrors "github.com/spec-kit/salon-service/pkg/util/errorutil"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Accounts       *handlers.AccountsHandler
	Appointments   *handlers.AppointmentsHandler
	Schedules      *handlers.SchedulesHandler
	Payments       *handlers.PaymentsHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
	CORSOrigins    string
	// AuthPerMinute caps register and login attempts per client IP, counted per endpoint. Zero
	// disables the limit.
	AuthPerMinute int
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	if cfg.CORSOrigins != "" {
		api.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CORSOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		}))
	}

	requireAuth := cfg.AuthMiddleware.Handle
	adminOnly := auth.RequireRole(domain.RoleAdmin)

	accounts := api.Group("/accounts")
	accounts.Post("/register", authLimiter(cfg.AuthPerMinute), cfg.Accounts.Register)
	accounts.Post("/login", authLimiter(cfg.AuthPerMinute), cfg.Accounts.Login)
	accounts.Post("/token/refresh", cfg.Accounts.Refresh)
	accounts.Post("/logout", requireAuth, cfg.Accounts.Logout)
	accounts.Get("/profile", requireAuth, cfg.Accounts.Profile)
	accounts.Post("/password/change", requireAuth, cfg.Accounts.ChangePassword)
	accounts.Post("/users", requireAuth, adminOnly, cfg.Accounts.CreateUser)
	accounts.Delete("/users/:id", requireAuth, adminOnly, cfg.Accounts.DeleteUser)

	protected := api.Group("", requireAuth)
	protected.Get("/appointments", cfg.Appointments.List)
	protected.Post("/appointments", auth.RequireRole(domain.RoleCustomer), cfg.Appointments.Create)
	protected.Post("/appointments/:id/cancel", cfg.Appointments.Cancel)
	protected.Post("/appointments/:id/complete", auth.RequireStaff(), cfg.Appointments.Complete)

	protected.Get("/available-slots", cfg.Schedules.AvailableSlots)
	protected.Get("/staff", cfg.Schedules.Staff)
	protected.Get("/staff-schedules", adminOnly, cfg.Schedules.List)
	protected.Post("/staff-schedules", adminOnly, cfg.Schedules.Create)

	protected.Get("/dashboard", cfg.Dashboard.Summary)

	protected.Get("/payments", cfg.Payments.List)
	protected.Post("/payments/:id/mark-paid", cfg.Payments.MarkPaid)
}

func authLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return apperrors.NewDomainError("RATE_LIMITED", "too many attempts, try again later", fiber.StatusTooManyRequests, nil)
		},
	})
}
