package controller

import (
	"cv-builder-be/internal/dto"
	"cv-builder-be/internal/pkg/serverutils"
	"cv-builder-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQueueController interface {
	RegisterRoutes(r fiber.Router)
	QueueAction(ctx *fiber.Ctx) error
	Sync(ctx *fiber.Ctx) error
	GetPending(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
	SetConnectivity(ctx *fiber.Ctx) error
}

type queueController struct {
	service service.IQueueService
}

func NewQueueController(service service.IQueueService) IQueueController {
	return &queueController{service: service}
}

func (c *queueController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/queue/v1")
	h.Post("", c.QueueAction)
	h.Put("connectivity", c.SetConnectivity)
	h.Get(":sessionId", c.GetPending)
	h.Post(":sessionId/sync", c.Sync)
	h.Delete(":sessionId", c.Clear)
}

func (c *queueController) QueueAction(ctx *fiber.Ctx) error {
	var req dto.QueueActionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.QueueAction(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success queue action", res))
}

func (c *queueController) Sync(ctx *fiber.Ctx) error {
	sessionId, err := parseSessionId(ctx.Params("sessionId"))
	if err != nil {
		return err
	}

	res, err := c.service.SyncPendingActions(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success sync pending actions", res))
}

func (c *queueController) GetPending(ctx *fiber.Ctx) error {
	sessionId, err := parseSessionId(ctx.Params("sessionId"))
	if err != nil {
		return err
	}

	res, err := c.service.GetPendingActions(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get pending actions", res))
}

func (c *queueController) Clear(ctx *fiber.Ctx) error {
	sessionId, err := parseSessionId(ctx.Params("sessionId"))
	if err != nil {
		return err
	}

	res, err := c.service.ClearActionQueue(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success clear action queue", res))
}

func (c *queueController) SetConnectivity(ctx *fiber.Ctx) error {
	var req dto.ConnectivityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SetConnectivity(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update connectivity", res))
}
