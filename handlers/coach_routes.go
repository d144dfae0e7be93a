package handlers

import (
	"partner-growth-system/middleware"
	"partner-growth-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCoachRoutes(app *fiber.App, auth *services.AuthService, coach *services.CoachService) {
	group := app.Group("/api/coach", middleware.AuthRequired(auth))

	group.Get("/chat/history", func(c *fiber.Ctx) error {
		history, err := coach.History(middleware.Partner(c).ID)
		if err != nil {
			return internalError(c, "coach", err)
		}
		return c.JSON(history)
	})

	group.Post("/chat", func(c *fiber.Ctx) error {
		type Req struct {
			Message string `json:"message" validate:"required,min=1"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid JSON body", nil)
		}
		if errs := validationErrors(req); errs != nil {
			return badRequest(c, "Validation error", errs)
		}

		reply, err := coach.Send(middleware.Partner(c).ID, req.Message)
		if err != nil {
			return internalError(c, "coach", err)
		}
		return c.JSON(fiber.Map{"response": reply})
	})
}
