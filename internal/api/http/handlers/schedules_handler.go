package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-service/internal/api/dto"
	"github.com/spec-kit/salon-service/internal/auth"
	"github.com/spec-kit/salon-service/internal/service"
)

// SchedulesHandler serves staff schedules, the staff directory and open slots.
type SchedulesHandler struct {
	schedules *service.ScheduleService
	slots     *service.SlotService
}

// NewSchedulesHandler constructs handler.
func NewSchedulesHandler(schedules *service.ScheduleService, slots *service.SlotService) *SchedulesHandler {
	return &SchedulesHandler{schedules: schedules, slots: slots}
}

// List GET /api/staff-schedules.
func (h *SchedulesHandler) List(c *fiber.Ctx) error {
	principal, err := auth.MustPrincipal(c)
	if err != nil {
		return err
	}
	limit, offset := pageParams(c)
	items, err := h.schedules.List(c.UserContext(), principal.User, service.ScheduleQuery{
		StaffID: c.Query("staff_id"),
		Date:    c.Query("date"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return err
	}
	out := make([]dto.ScheduleResponse, 0, len(items))
	for i := range items {
		out = append(out, scheduleResponse(&items[i]))
	}
	return c.JSON(out)
}

// Create POST /api/staff-schedules.
func (h *SchedulesHandler) Create(c *fiber.Ctx) error {
	principal, err := auth.MustPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateScheduleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	schedule, err := h.schedules.Create(c.UserContext(), principal.User, service.ScheduleInput{
		StaffID:     req.Staff,
		Date:        req.ScheduleDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: available,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(scheduleResponse(schedule))
}

// Staff GET /api/staff.
func (h *SchedulesHandler) Staff(c *fiber.Ctx) error {
	staff, err := h.schedules.ListStaff(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.StaffResponse, 0, len(staff))
	for i := range staff {
		out = append(out, staffResponse(&staff[i]))
	}
	return c.JSON(out)
}

// AvailableSlots GET /api/available-slots?staff_id=&date=.
func (h *SchedulesHandler) AvailableSlots(c *fiber.Ctx) error {
	result, err := h.slots.AvailableSlots(c.UserContext(), c.Query("staff_id"), c.Query("date"))
	if err != nil {
		return err
	}
	return c.JSON(slotsResponse(result))
}
