package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Signup handles user registration
func (s *Server) Signup(c *fiber.Ctx) error {
	var input service.SignupInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.authService.Signup(c.Context(), input)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// Login handles user authentication
func (s *Server) Login(c *fiber.Ctx) error {
	var input service.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.authService.Login(c.Context(), input)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(result)
}

// AdminLogin authenticates and additionally requires the admin role.
func (s *Server) AdminLogin(c *fiber.Ctx) error {
	var input service.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.authService.AdminLogin(c.Context(), input)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(result)
}

// Me returns the authenticated user's profile.
func (s *Server) Me(c *fiber.Ctx) error {
	userID, ok := sessionUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	user, err := s.authService.GetUser(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(user)
}

// ResetPassword changes the caller's password.
func (s *Server) ResetPassword(c *fiber.Ctx) error {
	userID, ok := sessionUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	var input struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.authService.ResetPassword(c.Context(), userID, input.CurrentPassword, input.NewPassword); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}
