package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/spec-kit/salon-service/internal/auth"
	"github.com/spec-kit/salon-service/internal/domain"
	"github.com/spec-kit/salon-service/internal/repository"
	apperrors "github.com/spec-kit/salon-service/pkg/util/errorutil"
)

// ScheduleService manages staff availability windows and the staff directory.
type ScheduleService struct {
	users     repository.UserRepository
	schedules repository.ScheduleRepository
}

// ScheduleDependencies bundles repositories.
type ScheduleDependencies struct {
	UserRepo     repository.UserRepository
	ScheduleRepo repository.ScheduleRepository
}

// ScheduleInput describes a new availability window.
type ScheduleInput struct {
	StaffID     string
	Date        string
	StartTime   string
	EndTime     string
	IsAvailable bool
}

// NewScheduleService creates the service.
func NewScheduleService(deps ScheduleDependencies) *ScheduleService {
	return &ScheduleService{users: deps.UserRepo, schedules: deps.ScheduleRepo}
}

// Create stores a window for a STAFF user.
func (s *ScheduleService) Create(ctx context.Context, actor *domain.User, input ScheduleInput) (*domain.StaffSchedule, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if !auth.CanManageSchedules(actor.Role) {
		return nil, apperrors.NewForbidden("only administrators can manage schedules")
	}

	date, err := parseDate(input.Date)
	if err != nil {
		return nil, apperrors.NewFieldError("schedule_date", "date must be formatted as YYYY-MM-DD")
	}
	start, err := domain.ParseTimeOfDay(input.StartTime)
	if err != nil {
		return nil, apperrors.NewFieldError("start_time", "time must be formatted as HH:MM or HH:MM:SS")
	}
	end, err := domain.ParseTimeOfDay(input.EndTime)
	if err != nil {
		return nil, apperrors.NewFieldError("end_time", "time must be formatted as HH:MM or HH:MM:SS")
	}
	if start >= end {
		return nil, apperrors.NewFieldError("end_time", "end time must be after start time")
	}
	if _, err := loadStaff(ctx, s.users, input.StaffID, "staff"); err != nil {
		return nil, err
	}

	schedule := &domain.StaffSchedule{
		StaffID:     input.StaffID,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: input.IsAvailable,
	}
	if err := s.schedules.Create(ctx, schedule); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, apperrors.NewValidationError("schedule already exists", map[string]any{
				"non_field_errors": "staff member already has this schedule block",
			})
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.NewFieldError("staff", "selected user is not a staff member")
		}
		return nil, apperrors.MapError(err)
	}
	return schedule, nil
}

// ScheduleQuery filters List.
type ScheduleQuery struct {
	StaffID string
	Date    string
	Limit   int
	Offset  int
}

// List returns windows ordered by date then start time.
func (s *ScheduleService) List(ctx context.Context, actor *domain.User, query ScheduleQuery) ([]domain.StaffSchedule, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if !auth.CanManageSchedules(actor.Role) {
		return nil, apperrors.NewForbidden("only administrators can manage schedules")
	}
	filter := repository.ScheduleFilter{Limit: query.Limit, Offset: query.Offset}
	if query.StaffID != "" {
		if _, err := uuid.Parse(query.StaffID); err != nil {
			return nil, apperrors.NewFieldError("staff_id", "invalid staff id")
		}
		filter.StaffID = &query.StaffID
	}
	if query.Date != "" {
		date, err := parseDate(query.Date)
		if err != nil {
			return nil, apperrors.NewFieldError("date", "date must be formatted as YYYY-MM-DD")
		}
		filter.Date = &date
	}
	schedules, err := s.schedules.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return schedules, nil
}

// ListStaff returns STAFF users ordered by username.
func (s *ScheduleService) ListStaff(ctx context.Context) ([]domain.User, error) {
	role := domain.RoleStaff
	staff, err := s.users.List(ctx, repository.UserFilter{Role: &role, Limit: 500})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

// loadStaff fetches a STAFF user, blaming field on failure.
func loadStaff(ctx context.Context, users repository.UserRepository, id, field string) (*domain.User, error) {
	if id == "" {
		return nil, apperrors.NewFieldError(field, "please select a staff member")
	}
	user, err := users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewFieldError(field, "invalid staff id")
		}
		return nil, apperrors.MapError(err)
	}
	if user.Role != domain.RoleStaff {
		return nil, apperrors.NewFieldError(field, "selected user is not a staff member")
	}
	return user, nil
}
