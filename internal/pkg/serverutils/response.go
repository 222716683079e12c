package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func SuccessResponse(message string, data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"code":    200,
		"message": message,
		"data":    data,
	}
}

// ErrorHandlerMiddleware catches errors escaping the controllers and
// shapes them into the standard envelope. Unknown errors become a 500
// with a generic message; detail stays server-side.
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

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    500,
			"message": "internal server error",
		})
	}
}
