package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// SignupInput carries a registration request.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput carries a login request.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult bundles the authenticated user with their bearer token.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// AuthService handles signup, login and password management.
type AuthService struct {
	users     repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(users repository.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// issueToken signs a bearer token with the user id in the sub claim.
func (s *AuthService) issueToken(userID uint) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": fmt.Sprintf("%d", userID),
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	})
	return token.SignedString([]byte(s.jwtSecret))
}

// Signup registers a new user and returns a session token.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: strings.TrimSpace(in.Username),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: string(hashed),
		Role:     models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, models.NewInternalError(err)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password return the same error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// AdminLogin authenticates like Login but additionally requires the
// admin role. A valid non-admin login gets Forbidden, not Unauthorized.
func (s *AuthService) AdminLogin(ctx context.Context, in LoginInput) (*AuthResult, error) {
	result, err := s.Login(ctx, in)
	if err != nil {
		return nil, err
	}
	if !result.User.IsAdmin() {
		return nil, models.NewForbiddenError("Admin access required")
	}
	return result, nil
}

// GetUser returns the user for an authenticated session.
func (s *AuthService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, models.NewNotFoundError("User", userID)
	}
	return user, nil
}

// ResetPassword changes the caller's password after verifying the
// current one.
func (s *AuthService) ResetPassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.NewNotFoundError("User", userID)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return models.NewUnauthorizedError("Current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	return s.users.UpdatePassword(ctx, userID, string(hashed))
}
