package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/reqtrace/internal/service/inspect"
)

type InspectHandler struct {
	svc inspect.Service
}

func NewInspectHandler(svc inspect.Service) *InspectHandler {
	return &InspectHandler{svc: svc}
}

func (h *InspectHandler) Describe(c fiber.Ctx) error {
	report, err := h.svc.Describe(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return ok(c, report)
}

func (h *InspectHandler) DescribeAsync(c fiber.Ctx) error {
	report, err := h.svc.DescribeAsync(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return ok(c, report)
}

func (h *InspectHandler) handleError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, inspect.ErrNoScope):
		return notFound(c, err.Error())
	default:
		slog.ErrorContext(c.Context(), "inspect handler failed", "error", err)
		return internalError(c)
	}
}
