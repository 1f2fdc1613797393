package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps service errors onto JSON responses.
// AppError carries its own status; anything else is a 500 with the
// message suppressed.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			return ctx.Status(appErr.Status).JSON(ErrorBody{
				Code:    appErr.Code,
				Message: appErr.Message,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorBody{
				Code:    "HTTP_ERROR",
				Message: fiberErr.Message,
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorBody{
			Code:    "INTERNAL_ERROR",
			Message: "Internal server error",
		})
	}
}
