package controller

import (
	"ai-poemreview-be/internal/dto"
	"ai-poemreview-be/internal/pkg/serverutils"
	"ai-poemreview-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFeedbackController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	AddComment(ctx *fiber.Ctx) error
	DeleteComment(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
	Process(ctx *fiber.Ctx) error
}

type feedbackController struct {
	service service.IFeedbackService
}

func NewFeedbackController(service service.IFeedbackService) IFeedbackController {
	return &feedbackController{service: service}
}

func (c *feedbackController) RegisterRoutes(r fiber.Router) {
	r.Post("/poems/:poemId/feedback/start", c.Start)

	h := r.Group("/feedback")
	h.Get(":sessionId", c.Show)
	h.Post(":sessionId/comment", c.AddComment)
	h.Delete(":sessionId/comment/:commentId", c.DeleteComment)
	h.Put(":sessionId", c.Update)
	h.Post(":sessionId/submit", c.Submit)
	h.Post(":sessionId/process", c.Process)
}

func (c *feedbackController) Start(ctx *fiber.Ctx) error {
	poemId, err := uuid.Parse(ctx.Params("poemId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid poem ID"))
	}

	res, err := c.service.Start(ctx.Context(), poemId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Feedback session started", res))
}

func (c *feedbackController) Show(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}

	res, err := c.service.Show(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get feedback session", res))
}

func (c *feedbackController) AddComment(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}

	var req dto.AddCommentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AddComment(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Comment added", res))
}

func (c *feedbackController) DeleteComment(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}
	commentId, err := uuid.Parse(ctx.Params("commentId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid comment ID"))
	}

	if err := c.service.DeleteComment(ctx.Context(), sessionId, commentId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Comment deleted", nil))
}

func (c *feedbackController) Update(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}

	var req dto.UpdateFeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Feedback updated", res))
}

func (c *feedbackController) Submit(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}

	res, err := c.service.Submit(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Feedback submitted", res))
}

func (c *feedbackController) Process(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}

	res, err := c.service.Process(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Feedback processed", res))
}
