package handlers

import (
	"errors"

	"partner-growth-system/middleware"
	"partner-growth-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, auth *services.AuthService) {
	group := app.Group("/api/auth")

	group.Post("/register", func(c *fiber.Ctx) error {
		type Req struct {
			Name        string `json:"name" validate:"required"`
			Email       string `json:"email" validate:"required,email"`
			PhoneNumber string `json:"phone_number" validate:"required"`
			Password    string `json:"password" validate:"required,min=8"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid JSON body", nil)
		}
		if errs := validationErrors(req); errs != nil {
			return badRequest(c, "Validation error", errs)
		}

		partner, token, err := auth.Register(req.Name, req.Email, req.PhoneNumber, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrEmailTaken) {
				return badRequest(c, "Email already registered", nil)
			}
			return internalError(c, "auth", err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"partner": partner,
			"token":   token,
		})
	})

	group.Post("/login", func(c *fiber.Ctx) error {
		type Req struct {
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid JSON body", nil)
		}
		if errs := validationErrors(req); errs != nil {
			return badRequest(c, "Validation error", errs)
		}

		partner, token, err := auth.Login(req.Email, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Invalid credentials",
				})
			}
			return internalError(c, "auth", err)
		}

		return c.JSON(fiber.Map{
			"partner": partner,
			"token":   token,
		})
	})

	// Tokens are stateless; logout exists so the client has a hook to
	// discard its copy.
	group.Post("/logout", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Logged out successfully"})
	})

	group.Get("/me", middleware.AuthRequired(auth), func(c *fiber.Ctx) error {
		return c.JSON(middleware.Partner(c))
	})
}
