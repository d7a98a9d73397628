// Package memory provides in-process implementations of the repository interfaces. It is used
// when no Postgres DSN is configured and by tests. It enforces the same uniqueness, status-guard
// and cascade rules as the SQL schema under a single mutex.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/salon-service/internal/domain"
	"github.com/spec-kit/salon-service/internal/repository"
)

// Store holds all tables.
type Store struct {
	mu           sync.RWMutex
	now          func() time.Time
	users        map[string]domain.User
	schedules    map[string]domain.StaffSchedule
	appointments map[string]domain.Appointment
	payments     map[string]domain.Payment
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		now:          time.Now,
		users:        make(map[string]domain.User),
		schedules:    make(map[string]domain.StaffSchedule),
		appointments: make(map[string]domain.Appointment),
		payments:     make(map[string]domain.Payment),
	}
}

// Users returns the user repository view.
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

// Schedules returns the schedule repository view.
func (s *Store) Schedules() repository.ScheduleRepository { return &scheduleRepo{s} }

// Appointments returns the appointment repository view.
func (s *Store) Appointments() repository.AppointmentRepository { return &appointmentRepo{s} }

// Payments returns the payment repository view.
func (s *Store) Payments() repository.PaymentRepository { return &paymentRepo{s} }

// Dashboard returns the dashboard repository view.
func (s *Store) Dashboard() repository.DashboardRepository { return &dashboardRepo{s} }

func (s *Store) username(id string) string {
	return s.users[id].Username
}

// hydrateAppointment fills the joined columns. Caller holds the lock.
func (s *Store) hydrateAppointment(a domain.Appointment) domain.Appointment {
	a.CustomerUsername = s.username(a.CustomerID)
	a.StaffUsername = ""
	if a.StaffID != nil {
		staffID := *a.StaffID
		a.StaffID = &staffID
		a.StaffUsername = s.username(staffID)
	}
	return a
}

// hydratePayment fills the joined columns. Caller holds the lock.
func (s *Store) hydratePayment(p domain.Payment) domain.Payment {
	appt := s.appointments[p.AppointmentID]
	p.CustomerID = appt.CustomerID
	p.CustomerUsername = s.username(appt.CustomerID)
	p.Service = appt.Service
	if p.PaidAt != nil {
		paidAt := *p.PaidAt
		p.PaidAt = &paidAt
	}
	return p
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

func page[T any](items []T, limit, offset, defaultLimit int) []T {
	if limit <= 0 {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	now := r.s.now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) Update(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Email = user.Email
	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.PasswordHash = user.PasswordHash
	existing.UpdatedAt = r.s.now()
	r.s.users[user.ID] = existing
	user.UpdatedAt = existing.UpdatedAt
	return nil
}

func (r *userRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.users, id)
	for sid, schedule := range r.s.schedules {
		if schedule.StaffID == id {
			delete(r.s.schedules, sid)
		}
	}
	for aid, appt := range r.s.appointments {
		if appt.CustomerID == id || (appt.StaffID != nil && *appt.StaffID == id) {
			delete(r.s.appointments, aid)
		}
	}
	for pid, payment := range r.s.payments {
		if _, ok := r.s.appointments[payment.AppointmentID]; !ok {
			delete(r.s.payments, pid)
		}
	}
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, user := range r.s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := []domain.User{}
	for _, user := range r.s.users {
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return page(result, filter.Limit, filter.Offset, 100), nil
}

type scheduleRepo struct{ s *Store }

func (r *scheduleRepo) Create(_ context.Context, schedule *domain.StaffSchedule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[schedule.StaffID]; !ok {
		return repository.ErrNotFound
	}
	for _, existing := range r.s.schedules {
		if existing.StaffID == schedule.StaffID &&
			domain.SameDate(existing.Date, schedule.Date) &&
			existing.StartTime == schedule.StartTime &&
			existing.EndTime == schedule.EndTime {
			return repository.ErrDuplicate
		}
	}
	schedule.ID = uuid.NewString()
	schedule.CreatedAt = r.s.now()
	schedule.StaffUsername = r.s.username(schedule.StaffID)
	r.s.schedules[schedule.ID] = *schedule
	return nil
}

func (r *scheduleRepo) List(_ context.Context, filter repository.ScheduleFilter) ([]domain.StaffSchedule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := []domain.StaffSchedule{}
	for _, schedule := range r.s.schedules {
		if filter.StaffID != nil && schedule.StaffID != *filter.StaffID {
			continue
		}
		if filter.Date != nil && !domain.SameDate(schedule.Date, *filter.Date) {
			continue
		}
		if filter.AvailableOnly && !schedule.IsAvailable {
			continue
		}
		schedule.StaffUsername = r.s.username(schedule.StaffID)
		result = append(result, schedule)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		if result[i].StartTime != result[j].StartTime {
			return result[i].StartTime < result[j].StartTime
		}
		return result[i].ID < result[j].ID
	})
	return page(result, filter.Limit, filter.Offset, 200), nil
}
