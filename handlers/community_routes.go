package handlers

import (
	"errors"
	"strconv"

	"partner-growth-system/middleware"
	"partner-growth-system/services"
	"partner-growth-system/store"

	"github.com/gofiber/fiber/v2"
)

func SetupCommunityRoutes(app *fiber.App, auth *services.AuthService, community *services.CommunityService) {
	group := app.Group("/api/community", middleware.AuthRequired(auth))

	group.Get("/", func(c *fiber.Ctx) error {
		view, err := community.Overview(c.Context())
		if err != nil {
			return internalError(c, "community", err)
		}
		return c.JSON(view)
	})

	group.Post("/best-practices", func(c *fiber.Ctx) error {
		type Req struct {
			Content string `json:"content" validate:"required,min=10"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid JSON body", nil)
		}
		if errs := validationErrors(req); errs != nil {
			return badRequest(c, "Validation error", errs)
		}

		post, err := community.ShareBestPractice(middleware.Partner(c).ID, req.Content)
		if err != nil {
			return internalError(c, "community", err)
		}
		return c.Status(fiber.StatusCreated).JSON(post)
	})

	group.Post("/best-practices/:id/like", func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return badRequest(c, "Invalid best practice id", nil)
		}

		post, err := community.LikeBestPractice(uint(id))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return notFound(c)
			}
			return internalError(c, "community", err)
		}
		return c.JSON(post)
	})
}
