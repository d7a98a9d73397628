package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/salon-service/internal/auth"
	"github.com/spec-kit/salon-service/internal/config"
	"github.com/spec-kit/salon-service/internal/domain"
	"github.com/spec-kit/salon-service/internal/repository"
	apperrors "github.com/spec-kit/salon-service/pkg/util/errorutil"
)

// MinPasswordLength applies to registration, admin-created users and password changes.
const MinPasswordLength = 8

// AuthService coordinates registration, login and token lifecycle flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	blacklist  auth.TokenBlacklist
	bcryptCost int
}

// AuthDependencies encapsulates requirements for auth service.
type AuthDependencies struct {
	UserRepo  repository.UserRepository
	Tokens    *auth.TokenManager
	Blacklist auth.TokenBlacklist
}

// AccountInput describes a new account.
type AccountInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	Role      domain.Role
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	tokens := deps.Tokens
	if tokens == nil {
		tokens = auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTTL(), cfg.RefreshTTL())
	}
	blacklist := deps.Blacklist
	if blacklist == nil {
		blacklist = auth.NewMemoryBlacklist()
	}
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   tokens,
		blacklist:  blacklist,
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a CUSTOMER account and issues a token pair.
func (s *AuthService) Register(ctx context.Context, input AccountInput) (*domain.User, domain.TokenPair, error) {
	input.Role = domain.RoleCustomer
	user, err := s.createAccount(ctx, input)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}
	pair, err := s.tokenMgr.Issue(user)
	if err != nil {
		return nil, domain.TokenPair{}, apperrors.NewInternalError(err)
	}
	return user, pair, nil
}

// Login authenticates by username and password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, domain.TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.TokenPair{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, domain.TokenPair{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, domain.TokenPair{}, apperrors.NewUnauthorized("invalid credentials")
	}
	pair, err := s.tokenMgr.Issue(user)
	if err != nil {
		return nil, domain.TokenPair{}, apperrors.NewInternalError(err)
	}
	return user, pair, nil
}

// Refresh exchanges a valid, unrevoked refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.tokenMgr.Parse(refreshToken, domain.TokenTypeRefresh)
	if err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid refresh token")
	}
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	if revoked {
		return "", time.Time{}, apperrors.NewUnauthorized("refresh token revoked")
	}
	user, err := s.users.GetByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", time.Time{}, apperrors.NewUnauthorized("user not found")
		}
		return "", time.Time{}, apperrors.MapError(err)
	}
	access, exp, err := s.tokenMgr.IssueAccess(user)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return access, exp, nil
}

// Logout revokes the refresh token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokenMgr.Parse(refreshToken, domain.TokenTypeRefresh)
	if err != nil {
		return apperrors.NewFieldError("refresh", "invalid refresh token")
	}
	expiresAt := time.Now().Add(time.Minute)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	revoked, err := s.blacklist.Revoke(ctx, claims.ID, expiresAt)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if !revoked {
		return apperrors.NewFieldError("refresh", "invalid refresh token")
	}
	return nil
}

// Profile returns the account by id.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "user", "user_id", userID)
	}
	return user, nil
}

// ChangePassword verifies current password before updating to new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if err := checkPassword("new_password", newPassword); err != nil {
		return err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return notFoundOr(err, "user", "user_id", userID)
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewFieldError("current_password", "current password is incorrect")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	user.PasswordHash = hash
	return apperrors.MapError(s.users.Update(ctx, user))
}

// CreateUser lets an administrator create an account of any role.
func (s *AuthService) CreateUser(ctx context.Context, actor *domain.User, input AccountInput) (*domain.User, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if !auth.CanManageUsers(actor.Role) {
		return nil, apperrors.NewForbidden("only administrators can create users")
	}
	return s.createAccount(ctx, input)
}

// Bootstrap creates an account without an acting user. Used by the seeding command.
func (s *AuthService) Bootstrap(ctx context.Context, input AccountInput) (*domain.User, error) {
	return s.createAccount(ctx, input)
}

// DeleteUser removes an account and everything it owns.
func (s *AuthService) DeleteUser(ctx context.Context, actor *domain.User, userID string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if !auth.CanManageUsers(actor.Role) {
		return apperrors.NewForbidden("only administrators can delete users")
	}
	if actor.ID == userID {
		return apperrors.NewFieldError("id", "administrators cannot delete their own account")
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return notFoundOr(err, "user", "user_id", userID)
	}
	return nil
}

func (s *AuthService) createAccount(ctx context.Context, input AccountInput) (*domain.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" {
		return nil, apperrors.NewFieldError("username", "username is required")
	}
	if !input.Role.Valid() {
		return nil, apperrors.NewFieldError("role", "role must be one of CUSTOMER, STAFF, ADMIN")
	}
	if err := checkPassword("password", input.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	user := &domain.User{
		Username:     input.Username,
		Email:        strings.TrimSpace(input.Email),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: hash,
		Role:         input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewFieldError("username", "a user with that username already exists")
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

func checkPassword(field, password string) error {
	switch {
	case len(password) < MinPasswordLength:
		return apperrors.NewFieldError(field, "password must be at least 8 characters")
	case len(password) > auth.MaxPasswordBytes:
		return apperrors.NewFieldError(field, "password must be at most 72 bytes")
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
