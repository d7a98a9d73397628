package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/salon-service/internal/api/http"
	"github.com/spec-kit/salon-service/internal/api/http/handlers"
	"github.com/spec-kit/salon-service/internal/auth"
	"github.com/spec-kit/salon-service/internal/config"
	"github.com/spec-kit/salon-service/internal/events"
	"github.com/spec-kit/salon-service/internal/observability"
	"github.com/spec-kit/salon-service/internal/persistence"
	"github.com/spec-kit/salon-service/internal/repository"
	"github.com/spec-kit/salon-service/internal/repository/memory"
	"github.com/spec-kit/salon-service/internal/service"
	"github.com/spec-kit/salon-service/internal/worker"
)

type repositories struct {
	users        repository.UserRepository
	schedules    repository.ScheduleRepository
	appointments repository.AppointmentRepository
	payments     repository.PaymentRepository
	dashboard    repository.DashboardRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	loc, err := cfg.Booking.Location()
	if err != nil {
		logger.Fatal("invalid booking time zone", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	repos := buildRepositories(pg.PoolHandle(), logger)
	metrics := observability.NewMetrics()

	var blacklist auth.TokenBlacklist = auth.NewMemoryBlacklist()
	if client := redis.Handle(); client != nil {
		blacklist = auth.NewRedisBlacklist(client, cfg.Redis.KeyPrefix)
	}

	dispatcher := events.NewInMemoryDispatcher(logger)
	var kafkaPublisher *events.KafkaPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher = events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger), logger)
		defer kafkaPublisher.Close() //nolint:errcheck
		logger.Info("publishing booking events to kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(dispatcher, notificationService, kafkaPublisher)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:  repos.users,
		Blacklist: blacklist,
	})
	scheduleService := service.NewScheduleService(service.ScheduleDependencies{
		UserRepo:     repos.users,
		ScheduleRepo: repos.schedules,
	})
	slotService := service.NewSlotService(service.SlotDependencies{
		UserRepo:        repos.users,
		ScheduleRepo:    repos.schedules,
		AppointmentRepo: repos.appointments,
		Location:        loc,
	})
	appointmentService := service.NewAppointmentService(service.AppointmentDependencies{
		UserRepo:        repos.users,
		ScheduleRepo:    repos.schedules,
		AppointmentRepo: repos.appointments,
		Dispatcher:      dispatcher,
		Metrics:         metrics,
		Location:        loc,
	})
	paymentService := service.NewPaymentService(service.PaymentDependencies{
		PaymentRepo: repos.payments,
		Dispatcher:  dispatcher,
	})
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		DashboardRepo:      repos.dashboard,
		AppointmentRepo:    repos.appointments,
		RecentAppointments: cfg.Booking.RecentAppointments,
		Location:           loc,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, healthBackends(pg, redis, kafkaPublisher != nil)...),
		Accounts:       handlers.NewAccountsHandler(authService),
		Appointments:   handlers.NewAppointmentsHandler(appointmentService, loc),
		Schedules:      handlers.NewSchedulesHandler(scheduleService, slotService),
		Payments:       handlers.NewPaymentsHandler(paymentService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService, loc),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), repos.users),
		Metrics:        metrics,
		CORSOrigins:    cfg.App.CORSOrigins,
		AuthPerMinute:  cfg.RateLimit.AuthPerMinute,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func buildRepositories(pool *pgxpool.Pool, logger *zap.Logger) repositories {
	if pool == nil {
		logger.Warn("running on the in-memory store; data is lost on restart")
		store := memory.NewStore()
		return repositories{
			users:        store.Users(),
			schedules:    store.Schedules(),
			appointments: store.Appointments(),
			payments:     store.Payments(),
			dashboard:    store.Dashboard(),
		}
	}
	return repositories{
		users:        repository.NewUserRepository(pool),
		schedules:    repository.NewScheduleRepository(pool),
		appointments: repository.NewAppointmentRepository(pool),
		payments:     repository.NewPaymentRepository(pool),
		dashboard:    repository.NewDashboardRepository(pool),
	}
}

func healthBackends(pg *persistence.Postgres, redis *persistence.Redis, kafka bool) []handlers.Backend {
	storage := handlers.Backend{Concern: "storage", Mode: "memory"}
	if pg.PoolHandle() != nil {
		storage = handlers.Backend{Concern: "storage", Mode: "postgres", Check: pg}
	}
	blacklist := handlers.Backend{Concern: "token_blacklist", Mode: "memory"}
	if redis.Handle() != nil {
		blacklist = handlers.Backend{Concern: "token_blacklist", Mode: "redis", Check: redis}
	}
	publishing := handlers.Backend{Concern: "events", Mode: "in-process"}
	if kafka {
		publishing.Mode = "kafka"
	}
	return []handlers.Backend{storage, blacklist, publishing}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
