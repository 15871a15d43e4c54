package controller

import (
	"strconv"

	"ai-poemreview-be/internal/dto"
	"ai-poemreview-be/internal/pkg/serverutils"
	"ai-poemreview-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGuideController interface {
	RegisterRoutes(r fiber.Router)
	Current(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	VersionAt(ctx *fiber.Ctx) error
}

type guideController struct {
	service service.IGuideService
}

func NewGuideController(service service.IGuideService) IGuideController {
	return &guideController{service: service}
}

func (c *guideController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/guide")
	h.Get("", c.Current)
	h.Post("", c.Update)
	h.Get("/history", c.History)
	h.Get("/version/:version", c.VersionAt)
}

func (c *guideController) Current(ctx *fiber.Ctx) error {
	res, err := c.service.Current(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Current guide", res))
}

func (c *guideController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateGuideRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Guide updated", res))
}

func (c *guideController) History(ctx *fiber.Ctx) error {
	res, err := c.service.History(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Guide history", res))
}

func (c *guideController) VersionAt(ctx *fiber.Ctx) error {
	version, err := strconv.Atoi(ctx.Params("version"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid version number"))
	}

	res, err := c.service.VersionAt(ctx.Context(), version)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Guide version", res))
}
