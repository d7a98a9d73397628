package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-service/internal/api/dto"
	"github.com/spec-kit/salon-service/internal/auth"
	"github.com/spec-kit/salon-service/internal/domain"
	"github.com/spec-kit/salon-service/internal/service"
)

// AccountsHandler exposes registration, token and account management endpoints.
type AccountsHandler struct {
	auth *service.AuthService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(authService *service.AuthService) *AccountsHandler {
	return &AccountsHandler{auth: authService}
}

// Register handles POST /api/accounts/register.
func (h *AccountsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, pair, err := h.auth.Register(c.UserContext(), accountInput(req, domain.RoleCustomer))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(tokenResponse(user, pair))
}

// Login handles POST /api/accounts/login.
func (h *AccountsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, pair, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(tokenResponse(user, pair))
}

// Refresh handles POST /api/accounts/token/refresh.
func (h *AccountsHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	access, exp, err := h.auth.Refresh(c.UserContext(), req.Refresh)
	if err != nil {
		return err
	}
	return c.JSON(dto.AccessResponse{Access: access, ExpiresAt: exp})
}

// Logout handles POST /api/accounts/logout. Success is 205 with no body.
func (h *AccountsHandler) Logout(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.auth.Logout(c.UserContext(), req.Refresh); err != nil {
		return err
	}
	return c.SendStatus(http.StatusResetContent)
}

// Profile handles GET /api/accounts/profile.
func (h *AccountsHandler) Profile(c *fiber.Ctx) error {
	principal, err := auth.MustPrincipal(c)
	if err != nil {
		return err
	}
	user, err := h.auth.Profile(c.UserContext(), principal.ID())
	if err != nil {
		return err
	}
	return c.JSON(userResponse(user))
}

// ChangePassword handles POST /api/accounts/password/change.
func (h *AccountsHandler) ChangePassword(c *fiber.Ctx) error {
	principal, err := auth.MustPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.auth.ChangePassword(c.UserContext(), principal.ID(), req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"detail": "Password updated."})
}

// CreateUser handles POST /api/accounts/users.
func (h *AccountsHandler) CreateUser(c *fiber.Ctx) error {
	principal, err := auth.MustPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.auth.CreateUser(c.UserContext(), principal.User, accountInput(req.RegisterRequest, domain.Role(req.Role)))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(userResponse(user))
}

// DeleteUser handles DELETE /api/accounts/users/:id.
func (h *AccountsHandler) DeleteUser(c *fiber.Ctx) error {
	principal, err := auth.MustPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.auth.DeleteUser(c.UserContext(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func accountInput(req dto.RegisterRequest, role domain.Role) service.AccountInput {
	return service.AccountInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Role:      role,
	}
}
