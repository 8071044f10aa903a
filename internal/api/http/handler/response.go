package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/reqtrace/internal/api/http/middleware"
	"github.com/Alijeyrad/reqtrace/pkg/reqctx"
)

func ok(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"data": data})
}

// fail writes an error body carrying the request id, so clients can quote it
// when reporting a problem.
func fail(c fiber.Ctx, status int, msg string) error {
	body := fiber.Map{"error": msg}
	if rid := requestID(c); rid != "" {
		body["request_id"] = rid
	}
	return c.Status(status).JSON(body)
}

// requestID reads the scope first; ErrorHandler runs after the scope has
// closed, so it falls back to the id kept in locals.
func requestID(c fiber.Ctx) string {
	if rid := reqctx.RequestIDFromContext(c.Context()); rid != "" {
		return rid
	}
	rid, _ := middleware.RequestIDFromFiber(c)
	return rid
}

func notFound(c fiber.Ctx, msg string) error {
	return fail(c, fiber.StatusNotFound, msg)
}

func internalError(c fiber.Ctx) error {
	return fail(c, fiber.StatusInternalServerError, "internal server error")
}

// ErrorHandler renders errors that reach Fiber as JSON in the same shape as
// the handlers do.
func ErrorHandler(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= fiber.StatusInternalServerError {
			return internalError(c)
		}
		return fail(c, fe.Code, fe.Message)
	}
	return internalError(c)
}
