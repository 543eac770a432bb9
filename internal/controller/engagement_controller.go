package controller

import (
	"cv-builder-be/internal/dto"
	"cv-builder-be/internal/pkg/serverutils"
	"cv-builder-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IEngagementController interface {
	RegisterRoutes(r fiber.Router)
	TrackEvent(ctx *fiber.Ctx) error
	Summary(ctx *fiber.Ctx) error
}

type engagementController struct {
	service service.IEngagementService
}

func NewEngagementController(service service.IEngagementService) IEngagementController {
	return &engagementController{service: service}
}

func (c *engagementController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/engagement/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("events", c.TrackEvent)
	h.Get("summary", c.Summary)
}

func (c *engagementController) TrackEvent(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.TrackEventRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.UserId = userId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.TrackEvent(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success track engagement event", res))
}

func (c *engagementController) Summary(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	feature := ctx.Query("feature", "premium")

	res, err := c.service.Summary(ctx.Context(), userId, feature)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get engagement summary", res))
}
