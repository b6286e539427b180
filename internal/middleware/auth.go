package middleware

import (
	"strconv"
	"strings"

	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// userIDFromBearer validates the Authorization header and returns the
// user id from the token's "sub" claim.
func userIDFromBearer(c *fiber.Ctx, secret string) (uint, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, models.NewUnauthorizedError("Authorization header required")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, models.NewUnauthorizedError("Invalid authorization header format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid token claims")
	}

	// Subject claim carries the user id per RFC 7519.
	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid token subject")
	}

	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, models.NewUnauthorizedError("Invalid user ID in token")
	}

	return uint(userID), nil
}

// AuthRequired returns a middleware that enforces authentication for protected routes.
func AuthRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := userIDFromBearer(c, cfg.JWTSecret)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}
		c.Locals("userID", userID)
		return c.Next()
	}
}

// OptionalAuth returns a middleware that attaches the user id when a
// valid bearer token is present but lets anonymous requests through.
func OptionalAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID, err := userIDFromBearer(c, cfg.JWTSecret); err == nil {
			c.Locals("userID", userID)
		}
		return c.Next()
	}
}

// AdminRequired returns a middleware that enforces the admin role. It must
// run after AuthRequired. A valid credential with the wrong role yields
// 403, not 401.
func AdminRequired(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userID").(uint)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authentication required"))
		}

		var user models.User
		if err := db.WithContext(c.Context()).Select("role").First(&user, userID).Error; err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Unknown user"))
		}
		if !user.IsAdmin() {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("You do not have admin access"))
		}

		return c.Next()
	}
}
