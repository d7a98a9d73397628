package dto

import "time"

// RegisterRequest payload for new customers.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,max=150"`
	Email     string `json:"email" validate:"omitempty,email,max=254"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

// CreateUserRequest lets an administrator pick the role.
type CreateUserRequest struct {
	RegisterRequest
	Role string `json:"role" validate:"required,oneof=CUSTOMER STAFF ADMIN"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries a refresh token for refresh and logout.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

// UserResponse is the public account representation.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	Access           string       `json:"access"`
	AccessExpiresAt  time.Time    `json:"access_expires_at"`
	Refresh          string       `json:"refresh"`
	RefreshExpiresAt time.Time    `json:"refresh_expires_at"`
	User             UserResponse `json:"user"`
}

// AccessResponse is returned by token refresh.
type AccessResponse struct {
	Access    string    `json:"access"`
	ExpiresAt time.Time `json:"access_expires_at"`
}

// StaffResponse lists bookable staff members.
type StaffResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
