package middleware

import (
	"strings"

	"partner-growth-system/models"
	"partner-growth-system/services"

	"github.com/gofiber/fiber/v2"
)

const partnerLocal = "partner"

// AuthRequired verifies the Bearer token and attaches the acting partner
// to the request context.
func AuthRequired(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		}

		partner, err := auth.PartnerFromToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		}

		c.Locals(partnerLocal, partner)
		return c.Next()
	}
}

// Partner returns the partner resolved by AuthRequired.
func Partner(c *fiber.Ctx) *models.Partner {
	return c.Locals(partnerLocal).(*models.Partner)
}
