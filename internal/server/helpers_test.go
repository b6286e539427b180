package server

import (
	"net/http/httptest"
	"testing"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageQuery(t *testing.T) {
	tests := []struct {
		name          string
		url           string
		expectedPage  int
		expectedLimit int
	}{
		{"defaults", "/?", 1, 6},
		{"explicit", "/?page=3&limit=10", 3, 10},
		{"zero page falls back", "/?page=0", 1, 6},
		{"negative limit falls back", "/?limit=-5", 1, 6},
		{"garbage falls back", "/?page=abc&limit=xyz", 1, 6},
		{"limit capped", "/?limit=5000", 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			var q pageQuery
			app.Get("/", func(c *fiber.Ctx) error {
				q = parsePageQuery(c)
				return c.SendStatus(fiber.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest("GET", tt.url, nil))
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, tt.expectedPage, q.Page)
			assert.Equal(t, tt.expectedLimit, q.Limit)
		})
	}
}

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"validation", models.NewValidationError("bad input"), fiber.StatusBadRequest},
		{"not found", models.NewNotFoundError("Post", 1), fiber.StatusNotFound},
		{"conflict", models.NewConflictError("duplicate"), fiber.StatusConflict},
		{"unauthorized", models.NewUnauthorizedError("no token"), fiber.StatusUnauthorized},
		{"forbidden", models.NewForbiddenError("no access"), fiber.StatusForbidden},
		{"internal", models.NewInternalError(assert.AnError), fiber.StatusInternalServerError},
		{"plain error", assert.AnError, fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return mapServiceError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}
