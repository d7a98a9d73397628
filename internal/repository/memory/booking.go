package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/salon-service/internal/domain"
	"github.com/spec-kit/salon-service/internal/repository"
)

type appointmentRepo struct{ s *Store }

func (r *appointmentRepo) CreateWithPayment(_ context.Context, appt *domain.Appointment, payment *domain.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[appt.CustomerID]; !ok {
		return repository.ErrNotFound
	}
	if appt.StaffID != nil {
		if _, ok := r.s.users[*appt.StaffID]; !ok {
			return repository.ErrNotFound
		}
		if appt.Status == domain.AppointmentBooked && r.s.hasBooking(*appt.StaffID, appt.DateTime) {
			return repository.ErrSlotTaken
		}
	}

	now := r.s.now()
	appt.ID = uuid.NewString()
	appt.CreatedAt = now
	stored := *appt
	if appt.StaffID != nil {
		staffID := *appt.StaffID
		stored.StaffID = &staffID
	}
	r.s.appointments[appt.ID] = stored

	payment.ID = uuid.NewString()
	payment.AppointmentID = appt.ID
	payment.CreatedAt = now
	r.s.payments[payment.ID] = *payment
	return nil
}

// hasBooking reports a BOOKED appointment at the exact instant. Caller holds the lock.
func (s *Store) hasBooking(staffID string, at time.Time) bool {
	for _, existing := range s.appointments {
		if existing.Status == domain.AppointmentBooked &&
			existing.StaffID != nil && *existing.StaffID == staffID &&
			existing.DateTime.Equal(at) {
			return true
		}
	}
	return false
}

func (r *appointmentRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	appt, ok := r.s.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	hydrated := r.s.hydrateAppointment(appt)
	return &hydrated, nil
}

func (r *appointmentRepo) UpdateStatus(_ context.Context, id string, from, to domain.AppointmentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	appt, ok := r.s.appointments[id]
	if !ok {
		return repository.ErrNotFound
	}
	if appt.Status != from {
		return repository.ErrStaleState
	}
	if to == domain.AppointmentBooked && appt.StaffID != nil && r.s.hasBooking(*appt.StaffID, appt.DateTime) {
		return repository.ErrSlotTaken
	}
	appt.Status = to
	r.s.appointments[id] = appt
	return nil
}

func (r *appointmentRepo) List(_ context.Context, filter repository.AppointmentFilter) ([]domain.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	search := ""
	if filter.SearchTerm != nil {
		search = strings.ToLower(strings.TrimSpace(*filter.SearchTerm))
	}

	result := []domain.Appointment{}
	for _, appt := range r.s.appointments {
		appt = r.s.hydrateAppointment(appt)
		if filter.CustomerID != nil && appt.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.StaffID != nil && (appt.StaffID == nil || *appt.StaffID != *filter.StaffID) {
			continue
		}
		if filter.Status != nil && appt.Status != *filter.Status {
			continue
		}
		if filter.From != nil && appt.DateTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !appt.DateTime.Before(*filter.To) {
			continue
		}
		if search != "" &&
			!containsFold(string(appt.Service), search) &&
			!containsFold(appt.StaffUsername, search) &&
			!containsFold(appt.CustomerUsername, search) {
			continue
		}
		result = append(result, appt)
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if filter.NewestFirst {
			a, b = b, a
		}
		if !a.DateTime.Equal(b.DateTime) {
			return a.DateTime.Before(b.DateTime)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return page(result, filter.Limit, filter.Offset, 100), nil
}

func (r *appointmentRepo) BookedTimes(_ context.Context, staffID string, from, to time.Time) ([]time.Time, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var result []time.Time
	for _, appt := range r.s.appointments {
		if appt.Status != domain.AppointmentBooked || appt.StaffID == nil || *appt.StaffID != staffID {
			continue
		}
		if appt.DateTime.Before(from) || !appt.DateTime.Before(to) {
			continue
		}
		result = append(result, appt.DateTime)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Before(result[j]) })
	return result, nil
}

func (r *appointmentRepo) HasBooking(_ context.Context, staffID string, at time.Time) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.hasBooking(staffID, at), nil
}

type paymentRepo struct{ s *Store }

func (r *paymentRepo) GetByID(_ context.Context, id string) (*domain.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	payment, ok := r.s.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	hydrated := r.s.hydratePayment(payment)
	return &hydrated, nil
}

func (r *paymentRepo) GetByAppointment(_ context.Context, appointmentID string) (*domain.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, payment := range r.s.payments {
		if payment.AppointmentID == appointmentID {
			hydrated := r.s.hydratePayment(payment)
			return &hydrated, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *paymentRepo) List(_ context.Context, filter repository.PaymentFilter) ([]domain.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := []domain.Payment{}
	for _, payment := range r.s.payments {
		payment = r.s.hydratePayment(payment)
		if filter.CustomerID != nil && payment.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.Status != nil && payment.Status != *filter.Status {
			continue
		}
		result = append(result, payment)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return page(result, filter.Limit, filter.Offset, 100), nil
}

func (r *paymentRepo) Transition(_ context.Context, t repository.PaymentTransition) (*domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	payment, ok := r.s.payments[t.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if payment.Status != t.From {
		return nil, repository.ErrStaleState
	}
	payment.Status = t.To
	payment.Method = t.Method
	payment.TransactionReference = t.Reference
	payment.PaidAt = t.PaidAt
	r.s.payments[t.ID] = payment
	hydrated := r.s.hydratePayment(payment)
	return &hydrated, nil
}

type dashboardRepo struct{ s *Store }

func (r *dashboardRepo) Counts(_ context.Context, q repository.DashboardQuery) (repository.DashboardCounts, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var c repository.DashboardCounts
	inScope := make(map[string]bool)
	for id, appt := range r.s.appointments {
		if q.CustomerID != nil && appt.CustomerID != *q.CustomerID {
			continue
		}
		inScope[id] = true
		c.Appointments++
		if appt.Status == domain.AppointmentBooked && !appt.DateTime.Before(q.Now) {
			c.Upcoming++
		}
		if !appt.DateTime.Before(q.TodayStart) && appt.DateTime.Before(q.TodayEnd) {
			c.Today++
		}
		if !appt.DateTime.Before(q.TodayStart) && appt.DateTime.Before(q.WeekEnd) {
			c.Week++
		}
	}
	for _, payment := range r.s.payments {
		if !inScope[payment.AppointmentID] {
			continue
		}
		switch payment.Status {
		case domain.PaymentRequested:
			c.RequestedPayments++
			c.PendingPayments++
		case domain.PaymentPending:
			c.PendingPayments++
		}
	}
	return c, nil
}

func (r *dashboardRepo) StaffLoad(_ context.Context, from, to time.Time) ([]repository.StaffLoad, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[string]int64)
	for _, appt := range r.s.appointments {
		if appt.Status != domain.AppointmentBooked || appt.StaffID == nil {
			continue
		}
		if appt.DateTime.Before(from) || !appt.DateTime.Before(to) {
			continue
		}
		counts[r.s.username(*appt.StaffID)]++
	}
	result := make([]repository.StaffLoad, 0, len(counts))
	for username, n := range counts {
		result = append(result, repository.StaffLoad{StaffUsername: username, BookedSlots: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StaffUsername < result[j].StaffUsername })
	return result, nil
}
