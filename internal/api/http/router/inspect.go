package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/reqtrace/internal/api/http/handler"
)

func (r *Router) registerInspectRoutes(api fiber.Router, h *handler.InspectHandler) {
	g := api.Group("/context")
	g.Get("/", h.Describe)
	g.Get("/async", h.DescribeAsync)
}
