package dto

import "time"

// DashboardResponse is the role-sensitive summary. StaffTodayLoad is present for administrators only.
type DashboardResponse struct {
	AppointmentsCount  int64                `json:"appointments_count"`
	UpcomingCount      int64                `json:"upcoming_count"`
	TodayCount         int64                `json:"today_count"`
	WeekCount          int64                `json:"week_count"`
	PendingPayments    int64                `json:"pending_payments"`
	RequestedPayments  int64                `json:"requested_payments"`
	RecentAppointments []RecentAppointment  `json:"recent_appointments"`
	StaffTodayLoad     *[]StaffLoadResponse `json:"staff_today_load,omitempty"`
}

// RecentAppointment is a compact appointment row.
type RecentAppointment struct {
	ID                  string    `json:"id"`
	Customer            string    `json:"customer"`
	Staff               string    `json:"staff"`
	Service             string    `json:"service"`
	AppointmentDateTime time.Time `json:"appointment_datetime"`
	Status              string    `json:"status"`
	StatusDisplay       string    `json:"status_display"`
}

// StaffLoadResponse counts today's booked slots of one staff member.
type StaffLoadResponse struct {
	Staff       string `json:"staff"`
	BookedSlots        int64                `json:"booked_slots"`
}
