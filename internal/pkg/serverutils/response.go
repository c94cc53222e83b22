package serverutils

import (
	"github.com/gofiber/fiber/v2"

	"ai-studybuddy-be/internal/apperr"
)

type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

// ErrorHandlerMiddleware converts service errors bubbling out of handlers
// into JSON responses. Application errors keep their Kind so clients can
// branch on it (e.g. prompt an upgrade on ACCESS_DENIED instead of
// reporting data loss).
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if kind := apperr.KindOf(err); kind != "" {
			return ctx.Status(apperr.HTTPStatus(kind)).JSON(errorBody{
				Success: false,
				Message: err.Error(),
				Kind:    string(kind),
			})
		}

		if fe, ok := err.(*fiber.Error); ok {
			return ctx.Status(fe.Code).JSON(errorBody{
				Success: false,
				Message: fe.Message,
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(errorBody{
			Success: false,
			Message: "Internal server error",
		})
	}
}
