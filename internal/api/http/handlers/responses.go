package handlers

import (
	"time"

	"github.com/spec-kit/salon-service/internal/api/dto"
	"github.com/spec-kit/salon-service/internal/domain"
	"github.com/spec-kit/salon-service/internal/service"
)

const dateLayout = "2006-01-02"

func userResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func tokenResponse(u *domain.User, pair domain.TokenPair) dto.TokenResponse {
	return dto.TokenResponse{
		Access:           pair.Access,
		AccessExpiresAt:  pair.AccessExpiresAt,
		Refresh:          pair.Refresh,
		RefreshExpiresAt: pair.RefreshExpiresAt,
		User:             userResponse(u),
	}
}

func staffResponse(u *domain.User) dto.StaffResponse {
	return dto.StaffResponse{ID: u.ID, Username: u.Username, FirstName: u.FirstName, LastName: u.LastName}
}

func appointmentResponse(a *domain.Appointment, loc *time.Location) dto.AppointmentResponse {
	return dto.AppointmentResponse{
		ID:                  a.ID,
		Customer:            a.CustomerID,
		CustomerUsername:    a.CustomerUsername,
		Staff:               a.StaffID,
		StaffUsername:       a.StaffUsername,
		Service:             string(a.Service),
		ServiceDisplay:      a.Service.Label(),
		StylistName:         a.StylistName,
		AppointmentDateTime: a.DateTime.In(loc),
		DurationMinutes:     a.DurationMinutes,
		Notes:               a.Notes,
		Status:              string(a.Status),
		StatusDisplay:       a.Status.Label(),
		CreatedAt:           a.CreatedAt,
	}
}

func appointmentList(items []domain.Appointment, loc *time.Location) []dto.AppointmentResponse {
	out := make([]dto.AppointmentResponse, 0, len(items))
	for i := range items {
		out = append(out, appointmentResponse(&items[i], loc))
	}
	return out
}

func scheduleResponse(s *domain.StaffSchedule) dto.ScheduleResponse {
	return dto.ScheduleResponse{
		ID:            s.ID,
		Staff:         s.StaffID,
		StaffUsername: s.StaffUsername,
		ScheduleDate:  s.Date.Format(dateLayout),
		StartTime:     s.StartTime.String(),
		EndTime:       s.EndTime.String(),
		IsAvailable:   s.IsAvailable,
		CreatedAt:     s.CreatedAt,
	}
}

func slotsResponse(s *service.AvailableSlots) dto.AvailableSlotsResponse {
	slots := s.Slots
	if slots == nil {
		slots = []time.Time{}
	}
	return dto.AvailableSlotsResponse{
		StaffID:             s.StaffID,
		StaffUsername:       s.StaffUsername,
		Date:                s.Date.Format(dateLayout),
		SlotDurationMinutes: s.SlotDurationMinutes,
		AvailableSlots:      slots,
	}
}

func paymentResponse(p *domain.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:                   p.ID,
		Appointment:          p.AppointmentID,
		CustomerUsername:     p.CustomerUsername,
		ServiceDisplay:       p.Service.Label(),
		Amount:               p.Amount.StringFixed(2),
		Method:               string(p.Method),
		MethodDisplay:        p.Method.Label(),
		Status:               string(p.Status),
		StatusDisplay:        p.Status.Label(),
		TransactionReference: p.TransactionReference,
		PaidAt:               p.PaidAt,
		CreatedAt:            p.CreatedAt,
	}
}

func dashboardResponse(d *service.Dashboard, loc *time.Location) dto.DashboardResponse {
	recent := make([]dto.RecentAppointment, 0, len(d.RecentAppointments))
	for _, a := range d.RecentAppointments {
		staff := a.StaffUsername
		if staff == "" {
			staff = a.StylistName
		}
		recent = append(recent, dto.RecentAppointment{
			ID:                  a.ID,
			Customer:            a.CustomerUsername,
			Staff:               staff,
			Service:             a.Service.Label(),
			AppointmentDateTime: a.DateTime.In(loc),
			Status:              string(a.Status),
			StatusDisplay:       a.Status.Label(),
		})
	}
	resp := dto.DashboardResponse{
		AppointmentsCount:  d.Appointments,
		UpcomingCount:      d.Upcoming,
		TodayCount:         d.Today,
		WeekCount:          d.Week,
		PendingPayments:    d.PendingPayments,
		RequestedPayments:  d.RequestedPayments,
		RecentAppointments: recent,
	}
	if d.StaffTodayLoad != nil {
		load := make([]dto.StaffLoadResponse, 0, len(d.StaffTodayLoad))
		for _, l := range d.StaffTodayLoad {
			load = append(load, dto.StaffLoadResponse{Staff: l.StaffUsername, BookedSlots: l.BookedSlots})
		}
		resp.StaffTodayLoad = &load
	}
	return resp
}
