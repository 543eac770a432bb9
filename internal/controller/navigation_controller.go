package controller

import (
	"cv-builder-be/internal/dto"
	"cv-builder-be/internal/pkg/serverutils"
	"cv-builder-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INavigationController interface {
	RegisterRoutes(r fiber.Router)
	GetContext(ctx *fiber.Ctx) error
	Navigate(ctx *fiber.Ctx) error
	Back(ctx *fiber.Ctx) error
	PushState(ctx *fiber.Ctx) error
	Restore(ctx *fiber.Ctx) error
}

type navigationController struct {
	service service.INavigationService
}

func NewNavigationController(service service.INavigationService) INavigationController {
	return &navigationController{service: service}
}

func (c *navigationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/navigation/v1")
	h.Post("navigate", c.Navigate)
	h.Post("history", c.PushState)
	h.Post("restore", c.Restore)
	h.Get(":sessionId/context", c.GetContext)
	h.Post(":sessionId/back", c.Back)
}

func (c *navigationController) GetContext(ctx *fiber.Ctx) error {
	sessionId, err := parseSessionId(ctx.Params("sessionId"))
	if err != nil {
		return err
	}

	res, err := c.service.GetNavigationContext(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get navigation context", res))
}

func (c *navigationController) Navigate(ctx *fiber.Ctx) error {
	var req dto.NavigateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.NavigateWithDebounce(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success navigate", res))
}

func (c *navigationController) Back(ctx *fiber.Ctx) error {
	sessionId, err := parseSessionId(ctx.Params("sessionId"))
	if err != nil {
		return err
	}

	res, err := c.service.HandleBackNavigation(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success back navigation", res))
}

func (c *navigationController) PushState(ctx *fiber.Ctx) error {
	var req dto.NavigateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.PushStateToHistory(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success push navigation state", res))
}

func (c *navigationController) Restore(ctx *fiber.Ctx) error {
	var req dto.RestoreStateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RestoreFromURL(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success restore navigation state", res))
}
