package service

import (
	"context"
	"sort"
	"time"

	"github.com/spec-kit/salon-service/internal/domain"
	"github.com/spec-kit/salon-service/internal/repository"
	apperrors "github.com/spec-kit/salon-service/pkg/util/errorutil"
)

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// GenerateSlots enumerates open slot starts. Each available window is walked independently in
// start-time order, so overlapping windows can yield the same instant twice. A step is emitted
// when it fits in the window, is strictly after now and is not booked.
func GenerateSlots(windows []domain.StaffSchedule, booked []time.Time, now time.Time, loc *time.Location) []time.Time {
	ordered := make([]domain.StaffSchedule, 0, len(windows))
	for _, w := range windows {
		if w.IsAvailable {
			ordered = append(ordered, w)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].StartTime < ordered[j].StartTime })

	taken := make(map[int64]struct{}, len(booked))
	for _, b := range booked {
		taken[b.UnixNano()] = struct{}{}
	}

	slots := []time.Time{}
	for i := range ordered {
		start, end := ordered[i].Bounds(loc)
		for cursor := start; !cursor.Add(domain.SlotDuration).After(end); cursor = cursor.Add(domain.SlotDuration) {
			if _, ok := taken[cursor.UnixNano()]; ok {
				continue
			}
			if !cursor.After(now) {
				continue
			}
			slots = append(slots, cursor)
		}
	}
	return slots
}

// AvailableSlots is the slot listing of one staff member on one date.
type AvailableSlots struct {
	StaffID             string
	StaffUsername       string
	Date                time.Time
	SlotDurationMinutes int
	Slots               []time.Time
}

// SlotService answers availability queries.
type SlotService struct {
	users        repository.UserRepository
	schedules    repository.ScheduleRepository
	appointments repository.AppointmentRepository
	loc          *time.Location
	now          Clock
}

// SlotDependencies bundles repositories and time settings.
type SlotDependencies struct {
	UserRepo        repository.UserRepository
	ScheduleRepo    repository.ScheduleRepository
	AppointmentRepo repository.AppointmentRepository
	Location        *time.Location
	Clock           Clock
}

// NewSlotService creates the service.
func NewSlotService(deps SlotDependencies) *SlotService {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	return &SlotService{
		users:        deps.UserRepo,
		schedules:    deps.ScheduleRepo,
		appointments: deps.AppointmentRepo,
		loc:          loc,
		now:          clockOrNow(deps.Clock),
	}
}

// AvailableSlots lists open slots for a STAFF user on a date that is not in the past.
func (s *SlotService) AvailableSlots(ctx context.Context, staffID, date string) (*AvailableSlots, error) {
	staff, err := loadStaff(ctx, s.users, staffID, "staff_id")
	if err != nil {
		return nil, err
	}
	day, err := parseDate(date)
	if err != nil {
		return nil, apperrors.NewFieldError("date", "date must be formatted as YYYY-MM-DD")
	}
	now := s.now()
	if day.Before(domain.DateOf(now, s.loc)) {
		return nil, apperrors.NewFieldError("date", "date cannot be in the past")
	}

	windows, err := s.schedules.List(ctx, repository.ScheduleFilter{
		StaffID:       &staff.ID,
		Date:          &day,
		AvailableOnly: true,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.loc)
	booked, err := s.appointments.BookedTimes(ctx, staff.ID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &AvailableSlots{
		StaffID:             staff.ID,
		StaffUsername:       staff.Username,
		Date:                day,
		SlotDurationMinutes: domain.SlotMinutes,
		Slots:               GenerateSlots(windows, booked, now, s.loc),
	}, nil
}
