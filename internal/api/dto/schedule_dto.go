package dto

import "time"

// CreateScheduleRequest adds an availability window. Times accept HH:MM or HH:MM:SS.
type CreateScheduleRequest struct {
	Staff        string `json:"staff" validate:"required"`
	ScheduleDate string `json:"schedule_date" validate:"required,datetime=2006-01-02"`
	StartTime    string `json:"start_time" validate:"required"`
	EndTime      string `json:"end_time" validate:"required"`
	IsAvailable  *bool  `json:"is_available"`
}

// ScheduleResponse mirrors a schedule row.
type ScheduleResponse struct {
	ID            string    `json:"id"`
	Staff         string    `json:"staff"`
	StaffUsername string    `json:"staff_username"`
	ScheduleDate  string    `json:"schedule_date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	IsAvailable   bool      `json:"is_available"`
	CreatedAt     time.Time `json:"created_at"`
}

// AvailableSlotsResponse lists open slot starts.
type AvailableSlotsResponse struct {
	StaffID             string      `json:"staff_id"`
	StaffUsername       string      `json:"staff_username"`
	Date                string      `json:"date"`
	SlotDurationMinutes int         `json:"slot_duration_minutes"`
	AvailableSlots      []time.Time `json:"available_slots"`
}
