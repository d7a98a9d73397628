package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-service/internal/auth"
	"github.com/spec-kit/salon-service/internal/service"
)

// DashboardHandler serves the summary view.
type DashboardHandler struct {
	service *service.DashboardService
	loc     *time.Location
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService, loc *time.Location) *DashboardHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardHandler{service: dashboardService, loc: loc}
}

// Summary GET /api/dashboard.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	principal, err := auth.MustPrincipal(c)
	if err != nil {
		return err
	}
	summary, err := h.service.Summary(c.UserContext(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(dashboardResponse(summary, h.loc))
}
