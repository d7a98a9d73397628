package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/salon-service/pkg/util/errorutil"
)

const readinessTimeout = 2 * time.Second

// Pinger is satisfied by *persistence.Postgres and *persistence.Redis.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Backend names the implementation serving one concern. A nil Check means the backend is
// in-process and always ready.
type Backend struct {
	Concern string
	Mode    string
	Check   Pinger
}

// HealthHandler responds to liveness and readiness checks.
type HealthHandler struct {
	serviceName string
	version     string
	backends    []Backend
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, backends ...Backend) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, backends: backends}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready pings every external backend. In-process backends are reported but never fail readiness.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
	defer cancel()

	modes := fiber.Map{}
	failed := map[string]any{}
	for _, b := range h.backends {
		modes[b.Concern] = b.Mode
		if b.Check == nil {
			continue
		}
		if err := b.Check.Ping(ctx); err != nil {
			failed[b.Mode] = err.Error()
		}
	}

	if len(failed) > 0 {
		return apperrors.NewDomainError("DEPENDENCY_UNAVAILABLE", "one or more dependencies unavailable", http.StatusServiceUnavailable, failed)
	}
	return c.JSON(fiber.Map{
		"status":   "ready",
		"service":  h.serviceName,
		"backends": modes,
	})
}
