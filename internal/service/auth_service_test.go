package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-for-auth-service-tests"

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Signup(t *testing.T) {
	t.Run("success issues a token", func(t *testing.T) {
		users := &stubUserRepo{
			createFn: func(_ context.Context, user *models.User) error {
				user.ID = 1
				return nil
			},
		}
		svc := NewAuthService(users, testSecret, time.Hour)

		result, err := svc.Signup(context.Background(), SignupInput{
			Username: "gopher",
			Email:    "Gopher@Example.com",
			Password: "secret123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "gopher@example.com", result.User.Email)
		assert.Equal(t, models.RoleUser, result.User.Role)
	})

	t.Run("weak password", func(t *testing.T) {
		svc := NewAuthService(&stubUserRepo{}, testSecret, time.Hour)
		_, err := svc.Signup(context.Background(), SignupInput{
			Username: "gopher",
			Email:    "g@example.com",
			Password: "short",
		})
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeValidation, appErr.Code)
	})

	t.Run("duplicate surfaces the conflict", func(t *testing.T) {
		users := &stubUserRepo{
			createFn: func(_ context.Context, user *models.User) error {
				return models.NewConflictError("Username or email already taken")
			},
		}
		svc := NewAuthService(users, testSecret, time.Hour)
		_, err := svc.Signup(context.Background(), SignupInput{
			Username: "gopher",
			Email:    "g@example.com",
			Password: "secret123",
		})
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeConflict, appErr.Code)
	})
}

func TestAuthService_Login(t *testing.T) {
	hashed := hashOf(t, "secret123")
	users := &stubUserRepo{
		getByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			if email == "g@example.com" {
				return &models.User{ID: 1, Email: email, Password: hashed, Role: models.RoleUser}, nil
			}
			return nil, nil
		},
	}
	svc := NewAuthService(users, testSecret, time.Hour)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		result, err := svc.Login(ctx, LoginInput{Email: "g@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		_, errUnknown := svc.Login(ctx, LoginInput{Email: "x@example.com", Password: "secret123"})
		_, errWrong := svc.Login(ctx, LoginInput{Email: "g@example.com", Password: "wrong"})

		var appErr1, appErr2 *models.AppError
		require.True(t, errors.As(errUnknown, &appErr1))
		require.True(t, errors.As(errWrong, &appErr2))
		assert.Equal(t, models.CodeUnauthorized, appErr1.Code)
		assert.Equal(t, appErr1.Message, appErr2.Message)
	})
}

func TestAuthService_AdminLogin(t *testing.T) {
	hashed := hashOf(t, "secret123")
	users := &stubUserRepo{
		getByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			switch email {
			case "admin@example.com":
				return &models.User{ID: 1, Email: email, Password: hashed, Role: models.RoleAdmin}, nil
			case "user@example.com":
				return &models.User{ID: 2, Email: email, Password: hashed, Role: models.RoleUser}, nil
			}
			return nil, nil
		},
	}
	svc := NewAuthService(users, testSecret, time.Hour)
	ctx := context.Background()

	result, err := svc.AdminLogin(ctx, LoginInput{Email: "admin@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.True(t, result.User.IsAdmin())

	// A valid non-admin credential is a role failure, not a credential
	// failure.
	_, err = svc.AdminLogin(ctx, LoginInput{Email: "user@example.com", Password: "secret123"})
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeForbidden, appErr.Code)
}

func TestAuthService_ResetPassword(t *testing.T) {
	hashed := hashOf(t, "oldpass123")
	var updatedHash string
	users := &stubUserRepo{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Password: hashed}, nil
		},
		updatePasswordFn: func(_ context.Context, id uint, newHash string) error {
			updatedHash = newHash
			return nil
		},
	}
	svc := NewAuthService(users, testSecret, time.Hour)
	ctx := context.Background()

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ResetPassword(ctx, 1, "nope", "newpass123")
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeUnauthorized, appErr.Code)
	})

	t.Run("success stores a new hash", func(t *testing.T) {
		require.NoError(t, svc.ResetPassword(ctx, 1, "oldpass123", "newpass123"))
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updatedHash), []byte("newpass123")))
	})
}
