// FILE: internal/pkg/serverutils/error_handler.go
package serverutils

import (
	"errors"

	"healthlink-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts application errors escaping controllers
// into a consistent JSON shape. Unknown errors become a generic 500 so
// internals never leak to clients.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"code":    fiberErr.Code,
				"message": fiberErr.Message,
			})
		}

		status := statusForKind(apperror.KindOf(err))
		message := err.Error()
		if status == fiber.StatusInternalServerError {
			message = "Something went wrong"
		}
		return ctx.Status(status).JSON(fiber.Map{
			"success": false,
			"code":    status,
			"message": message,
		})
	}
}

func statusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindAccessDenied:
		return fiber.StatusForbidden
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindAuthentication:
		return fiber.StatusUnauthorized
	case apperror.KindConflict:
		return fiber.StatusNotAcceptable
	default:
		return fiber.StatusInternalServerError
	}
}
