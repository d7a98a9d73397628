package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-service/internal/api/dto"
	"github.com/spec-kit/salon-service/internal/auth"
	"github.com/spec-kit/salon-service/internal/service"
)

// PaymentsHandler exposes payment listing and the approval workflow.
type PaymentsHandler struct {
	service *service.PaymentService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(paymentService *service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{service: paymentService}
}

// List GET /api/payments.
func (h *PaymentsHandler) List(c *fiber.Ctx) error {
	principal, err := auth.MustPrincipal(c)
	if err != nil {
		return err
	}
	limit, offset := pageParams(c)
	payments, err := h.service.List(c.UserContext(), principal.User, service.PaymentQuery{
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return err
	}
	out := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, paymentResponse(&payments[i]))
	}
	return c.JSON(out)
}

// MarkPaid POST /api/payments/:id/mark-paid. A customer submission answers 202, an approval 200.
func (h *PaymentsHandler) MarkPaid(c *fiber.Ctx) error {
	principal, err := auth.MustPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.MarkPaidRequest
	if len(c.Body()) > 0 {
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
	}
	result, err := h.service.MarkPaid(c.UserContext(), principal.User, c.Params("id"), service.MarkPaidInput{
		Method:    req.Method,
		Reference: req.TransactionReference,
	})
	if err != nil {
		return err
	}
	if result.Submitted {
		return c.Status(http.StatusAccepted).JSON(dto.MarkPaidResponse{
			Detail:  "Payment submitted for approval.",
			Payment: paymentResponse(result.Payment),
		})
	}
	return c.JSON(dto.MarkPaidResponse{
		Detail:  "Payment marked as paid.",
		Payment: paymentResponse(result.Payment),
	})
}
