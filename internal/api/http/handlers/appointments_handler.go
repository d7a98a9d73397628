package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-service/internal/api/dto"
	"github.com/spec-kit/salon-service/internal/auth"
	"github.com/spec-kit/salon-service/internal/service"
	apperrors "github.com/spec-kit/salon-service/pkg/util/errorutil"
)

// AppointmentsHandler manages booking endpoints.
type AppointmentsHandler struct {
	service *service.AppointmentService
	loc     *time.Location
}

// NewAppointmentsHandler constructs handler. Times are rendered in loc.
func NewAppointmentsHandler(appointmentService *service.AppointmentService, loc *time.Location) *AppointmentsHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AppointmentsHandler{service: appointmentService, loc: loc}
}

// List GET /api/appointments.
func (h *AppointmentsHandler) List(c *fiber.Ctx) error {
	principal, err := auth.MustPrincipal(c)
	if err != nil {
		return err
	}
	limit, offset := pageParams(c)
	appts, err := h.service.List(c.UserContext(), principal.User, service.AppointmentQuery{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(appointmentList(appts, h.loc))
}

// Create POST /api/appointments.
func (h *AppointmentsHandler) Create(c *fiber.Ctx) error {
	principal, err := auth.MustPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateAppointmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	at, err := time.Parse(time.RFC3339, req.AppointmentDateTime)
	if err != nil {
		return apperrors.NewFieldError("appointment_datetime", "invalid datetime, use RFC 3339")
	}
	appt, err := h.service.Create(c.UserContext(), principal.User, service.AppointmentInput{
		StaffID:  req.Staff,
		Service:  req.Service,
		DateTime: at,
		Notes:    req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(appointmentResponse(appt, h.loc))
}

// Cancel POST /api/appointments/:id/cancel.
func (h *AppointmentsHandler) Cancel(c *fiber.Ctx) error {
	principal, err := auth.MustPrincipal(c)
	if err != nil {
		return err
	}
	appt, err := h.service.Cancel(c.UserContext(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.AppointmentActionResponse{
		Detail:      "Appointment cancelled.",
		Appointment: appointmentResponse(appt, h.loc),
	})
}

// Complete POST /api/appointments/:id/complete.
func (h *AppointmentsHandler) Complete(c *fiber.Ctx) error {
	principal, err := auth.MustPrincipal(c)
	if err != nil {
		return err
	}
	appt, err := h.service.Complete(c.UserContext(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.AppointmentActionResponse{
		Detail:      "Appointment completed.",
		Appointment: appointmentResponse(appt, h.loc),
	})
}

func pageParams(c *fiber.Ctx) (int, int) {
	limit := c.QueryInt("limit", 0)
	if limit > 100 {
		limit = 100
	}
	return limit, c.QueryInt("offset", 0)
}
