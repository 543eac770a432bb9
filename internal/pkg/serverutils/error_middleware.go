package serverutils

import (
	"errors"

	"cv-builder-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts classified errors bubbling up from services
// into JSON error responses. Unclassified errors render as 500 with a
// generic message so internals never leak to the client.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message, ""))
		}

		code := apperror.CodeOf(err)
		status := apperror.HTTPStatus(code)

		message := err.Error()
		if code == apperror.CodeInternal {
			message = "Internal server error"
		}

		return ctx.Status(status).JSON(ErrorResponse(message, string(code)))
	}
}
