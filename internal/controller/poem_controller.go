package controller

import (
	"ai-poemreview-be/internal/dto"
	"ai-poemreview-be/internal/pkg/serverutils"
	"ai-poemreview-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPoemController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type poemController struct {
	service service.IPoemService
}

func NewPoemController(service service.IPoemService) IPoemController {
	return &poemController{service: service}
}

func (c *poemController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/poems")
	h.Post("/generate", c.Generate)
	h.Get("", c.GetAll)
	h.Get(":id", c.Show)
}

func (c *poemController) Generate(ctx *fiber.Ctx) error {
	var req dto.GeneratePoemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Generate(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Poem generated", res))
}

func (c *poemController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all poems", res))
}

func (c *poemController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid poem ID"))
	}

	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get poem", res))
}
