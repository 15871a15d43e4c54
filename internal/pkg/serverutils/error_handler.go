package serverutils

import (
	"errors"

	"ai-poemreview-be/internal/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps service errors to HTTP responses so handlers
// can just `return err`.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			code = fiber.StatusNotFound
		case errors.Is(err, apperr.ErrValidation):
			code = fiber.StatusBadRequest
		case errors.Is(err, apperr.ErrInvalidState):
			code = fiber.StatusConflict
		case errors.Is(err, apperr.ErrExternalCapability):
			code = fiber.StatusBadGateway
		default:
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
		}

		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
