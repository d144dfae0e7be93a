package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"partner-growth-system/middleware"
	"partner-growth-system/models"
	"partner-growth-system/services"
	"partner-growth-system/store"
	"partner-growth-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func SetupPartnerRoutes(app *fiber.App, auth *services.AuthService, partners *services.PartnerService, uploads *utils.R2Client) {
	group := app.Group("/api/partners", middleware.AuthRequired(auth))

	group.Get("/dashboard", func(c *fiber.Ctx) error {
		dashboard, err := partners.Dashboard(middleware.Partner(c))
		if err != nil {
			return internalError(c, "dashboard", err)
		}
		return c.JSON(dashboard)
	})

	group.Get("/leads", func(c *fiber.Ctx) error {
		leads, err := partners.Leads(middleware.Partner(c).ID)
		if err != nil {
			return internalError(c, "leads", err)
		}
		if leads == nil {
			leads = []models.Lead{}
		}
		return c.JSON(leads)
	})

	group.Post("/leads", func(c *fiber.Ctx) error {
		type Req struct {
			Name            string   `json:"name" validate:"required"`
			PhoneNumber     string   `json:"phone_number" validate:"required"`
			ProductInterest []string `json:"product_interest"`
			LeadSource      string   `json:"lead_source"`
			AIMatchScore    *int     `json:"ai_match_score" validate:"omitempty,min=0,max=100"`
			AIPitchTip      string   `json:"ai_pitch_tip"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid JSON body", nil)
		}
		if errs := validationErrors(req); errs != nil {
			return badRequest(c, "Validation error", errs)
		}

		lead := &models.Lead{
			Name:            req.Name,
			PhoneNumber:     req.PhoneNumber,
			ProductInterest: req.ProductInterest,
			LeadSource:      req.LeadSource,
			AIMatchScore:    req.AIMatchScore,
			AIPitchTip:      req.AIPitchTip,
		}
		if err := partners.CreateLead(middleware.Partner(c).ID, lead); err != nil {
			return internalError(c, "leads", err)
		}
		return c.Status(fiber.StatusCreated).JSON(lead)
	})

	group.Patch("/leads/:id/status", func(c *fiber.Ctx) error {
		leadID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return badRequest(c, "Invalid lead id", nil)
		}
		type Req struct {
			Status string `json:"status" validate:"required,oneof=new contacted converted lost"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid JSON body", nil)
		}
		if errs := validationErrors(req); errs != nil {
			return badRequest(c, "Validation error", errs)
		}

		lead, err := partners.UpdateLeadStatus(middleware.Partner(c).ID, uint(leadID), req.Status)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) || errors.Is(err, services.ErrNotOwned) {
				return notFound(c)
			}
			return internalError(c, "leads", err)
		}
		return c.JSON(lead)
	})

	group.Get("/leads/recommended", func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 0)
		recommended, err := partners.RecommendedLeads(middleware.Partner(c).ID, limit)
		if err != nil {
			return internalError(c, "leads", err)
		}
		return c.JSON(recommended)
	})

	group.Put("/me", func(c *fiber.Ctx) error {
		type Req struct {
			Name        *string `json:"name" validate:"omitempty,min=1"`
			PhoneNumber *string `json:"phone_number" validate:"omitempty,min=1"`
			Location    *string `json:"location"`
			Bio         *string `json:"bio"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid JSON body", nil)
		}
		if errs := validationErrors(req); errs != nil {
			return badRequest(c, "Validation error", errs)
		}

		partner := middleware.Partner(c)
		err := partners.UpdateProfile(partner, services.ProfileUpdate{
			Name:        req.Name,
			PhoneNumber: req.PhoneNumber,
			Location:    req.Location,
			Bio:         req.Bio,
		})
		if err != nil {
			return internalError(c, "profile", err)
		}
		return c.JSON(partner)
	})

	group.Post("/me/avatar", func(c *fiber.Ctx) error {
		if uploads == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"message": "Image uploads are not configured",
			})
		}
		file, err := c.FormFile("image")
		if err != nil {
			return badRequest(c, "Missing image file", nil)
		}

		partner := middleware.Partner(c)
		key := fmt.Sprintf("avatars/%d/%s%s", partner.ID, uuid.NewString(), filepath.Ext(file.Filename))
		url, err := uploads.Upload(c.Context(), file, key)
		if err != nil {
			return internalError(c, "avatar", err)
		}
		if err := partners.SetProfileImage(partner, url); err != nil {
			return internalError(c, "avatar", err)
		}
		return c.JSON(fiber.Map{"profile_image_url": url})
	})

	group.Post("/sales", func(c *fiber.Ctx) error {
		type Req struct {
			LeadID           *uint  `json:"lead_id"`
			ProductName      string `json:"product_name" validate:"required"`
			ProductCategory  string `json:"product_category" validate:"required"`
			SaleAmount       int64  `json:"sale_amount" validate:"required,min=1"`
			CommissionEarned int64  `json:"commission_earned" validate:"min=0"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid JSON body", nil)
		}
		if errs := validationErrors(req); errs != nil {
			return badRequest(c, "Validation error", errs)
		}

		sale := &models.Sale{
			LeadID:           req.LeadID,
			ProductName:      req.ProductName,
			ProductCategory:  req.ProductCategory,
			SaleAmount:       req.SaleAmount,
			CommissionEarned: req.CommissionEarned,
		}
		awarded, err := partners.RecordSale(middleware.Partner(c), sale)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) || errors.Is(err, services.ErrNotOwned) {
				return notFound(c)
			}
			return internalError(c, "sales", err)
		}
		if awarded == nil {
			awarded = []models.Achievement{}
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"sale":                 sale,
			"achievements_awarded": awarded,
		})
	})
}
