package service

import (
	"context"
	"time"

	"github.com/spec-kit/salon-service/internal/auth"
	"github.com/spec-kit/salon-service/internal/domain"
	"github.com/spec-kit/salon-service/internal/repository"
	apperrors "github.com/spec-kit/salon-service/pkg/util/errorutil"
)

// Dashboard is the role-sensitive summary.
type Dashboard struct {
	repository.DashboardCounts
	RecentAppointments []domain.Appointment
	// StaffTodayLoad is only set for administrators.
	StaffTodayLoad []repository.StaffLoad
}

// DashboardService aggregates read-only figures.
type DashboardService struct {
	dashboard    repository.DashboardRepository
	appointments repository.AppointmentRepository
	recent       int
	loc          *time.Location
	now          Clock
}

// DashboardDependencies bundles repositories and settings.
type DashboardDependencies struct {
	DashboardRepo      repository.DashboardRepository
	AppointmentRepo    repository.AppointmentRepository
	RecentAppointments int
	Location           *time.Location
	Clock              Clock
}

// NewDashboardService creates the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	recent := deps.RecentAppointments
	if recent <= 0 {
		recent = 6
	}
	return &DashboardService{
		dashboard:    deps.DashboardRepo,
		appointments: deps.AppointmentRepo,
		recent:       recent,
		loc:          loc,
		now:          clockOrNow(deps.Clock),
	}
}

// Summary builds the dashboard for the actor. Empty scopes yield zeros and empty lists.
func (s *DashboardService) Summary(ctx context.Context, actor *domain.User) (*Dashboard, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	now := s.now()
	local := now.In(s.loc)
	todayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	todayEnd := todayStart.AddDate(0, 0, 1)
	scope := auth.CustomerScope(actor)

	counts, err := s.dashboard.Counts(ctx, repository.DashboardQuery{
		CustomerID: scope,
		Now:        now,
		TodayStart: todayStart,
		TodayEnd:   todayEnd,
		WeekEnd:    todayStart.AddDate(0, 0, 7),
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	recent, err := s.appointments.List(ctx, repository.AppointmentFilter{
		CustomerID:  scope,
		NewestFirst: true,
		Limit:       s.recent,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	summary := &Dashboard{DashboardCounts: counts, RecentAppointments: recent}
	if auth.CanSeeStaffLoad(actor.Role) {
		load, err := s.dashboard.StaffLoad(ctx, todayStart, todayEnd)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if load == nil {
			load = []repository.StaffLoad{}
		}
		summary.StaffTodayLoad = load
	}
	return summary, nil
}
