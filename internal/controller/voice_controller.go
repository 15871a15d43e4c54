package controller

import (
	"io"

	"ai-poemreview-be/internal/dto"
	"ai-poemreview-be/internal/pkg/serverutils"
	"ai-poemreview-be/internal/service"
	"ai-poemreview-be/pkg/audiostore"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IVoiceController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	Complete(ctx *fiber.Ctx) error
	Confirm(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
}

type voiceController struct {
	service service.IVoiceService
}

func NewVoiceController(service service.IVoiceService) IVoiceController {
	return &voiceController{service: service}
}

func (c *voiceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/voice")
	h.Post("/start/:poemId", c.Start)
	h.Post(":sessionId/message", c.SendMessage)
	h.Post(":sessionId/complete", c.Complete)
	h.Post(":sessionId/confirm", c.Confirm)
	h.Get(":sessionId", c.Show)
	h.Delete(":sessionId", c.Cancel)
}

func (c *voiceController) Start(ctx *fiber.Ctx) error {
	poemId, err := uuid.Parse(ctx.Params("poemId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid poem ID"))
	}

	res, err := c.service.Start(ctx.Context(), poemId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Voice session started", res))
}

// SendMessage accepts multipart form data: a "text" field, an "audio_file"
// upload, or both (audio wins).
func (c *voiceController) SendMessage(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}

	input := dto.VoiceMessageInput{
		Text: ctx.FormValue("text"),
	}

	if fileHeader, err := ctx.FormFile("audio_file"); err == nil && fileHeader != nil {
		if fileHeader.Size > audiostore.MaxAudioSize {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "File too large. Maximum size is 25MB"))
		}

		file, err := fileHeader.Open()
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Unreadable audio file"))
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Unreadable audio file"))
		}

		input.AudioContent = content
		input.AudioFilename = fileHeader.Filename
	}

	res, err := c.service.SendMessage(ctx.Context(), sessionId, &input)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Message processed", res))
}

func (c *voiceController) Complete(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}

	res, err := c.service.Complete(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Voice session completed", res))
}

func (c *voiceController) Confirm(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}

	var req dto.ConfirmFeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	res, err := c.service.Confirm(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Feedback confirmed", res))
}

func (c *voiceController) Show(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}

	res, err := c.service.Show(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get voice session", res))
}

func (c *voiceController) Cancel(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}

	res, err := c.service.Cancel(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Voice session cancelled", res))
}
