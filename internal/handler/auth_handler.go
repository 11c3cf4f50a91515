package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/orzutravel/api/internal/service"
)

// AuthHandler handles HTTP requests for admin authentication
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /v1/auth/login
// Exchanges a Firebase ID token for a first-party admin session token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		FirebaseToken string `json:"firebase_token"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}
	if req.FirebaseToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "missing 'firebase_token' field",
		})
	}

	resp, err := h.authService.Login(c.Context(), req.FirebaseToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "authentication failed",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    resp,
	})
}
