package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/orzutravel/api/internal/domain"
)

// Context keys for storing admin info
const (
	AdminEmailKey = "adminEmail"
	AdminUIDKey   = "adminUID"
)

// VerifyAdminToken validates the session JWT and extracts claims.
// Guards every /v1/admin route.
func VerifyAdminToken(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get token from Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization token",
			})
		}

		// Extract token (format: "Bearer <token>")
		tokenString := authHeader
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenString = authHeader[7:]
		}

		token, err := jwt.ParseWithClaims(tokenString, &domain.AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
			// Verify signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		claims, ok := token.Claims.(*domain.AdminClaims)
		if !ok || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token claims",
			})
		}

		c.Locals(AdminEmailKey, claims.Email)
		c.Locals(AdminUIDKey, claims.Subject)

		return c.Next()
	}
}

// GetAdminEmail extracts the admin email from Fiber context
// Should only be called after VerifyAdminToken middleware
func GetAdminEmail(c *fiber.Ctx) string {
	email, ok := c.Locals(AdminEmailKey).(string)
	if !ok {
		return ""
	}
	return email
}
