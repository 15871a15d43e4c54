package controller

import (
	"ai-poemreview-be/internal/dto"
	"ai-poemreview-be/internal/pkg/serverutils"
	"ai-poemreview-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRevisionController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Review(ctx *fiber.Ctx) error
}

type revisionController struct {
	service service.IRevisionService
}

func NewRevisionController(service service.IRevisionService) IRevisionController {
	return &revisionController{service: service}
}

func (c *revisionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/revisions")
	h.Get(":id", c.Show)
	h.Post(":id/review", c.Review)
}

func (c *revisionController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid revision ID"))
	}

	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get revision", res))
}

func (c *revisionController) Review(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid revision ID"))
	}

	var req dto.ReviewRevisionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	res, err := c.service.Review(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Revision reviewed", res))
}
