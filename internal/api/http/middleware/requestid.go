package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/reqtrace/pkg/reqctx"
)

const (
	LocalRequestID = "request_id"
)

// RequestIDConfig configures the request id middleware.
type RequestIDConfig struct {
	// Header names both the HTTP header and the scope key.
	// Defaults to the store's header.
	Header string
}

func (c RequestIDConfig) header(store *reqctx.Store) string {
	if c.Header != "" {
		return c.Header
	}
	return store.Header()
}

// RequestID preserves or generates the request id, echoes it on the response
// and runs the rest of the chain inside a request scope seeded with it.
func RequestID(store *reqctx.Store, cfg RequestIDConfig) fiber.Handler {
	header := cfg.header(store)

	return func(c fiber.Ctx) error {
		// prefer incoming, else generate
		rid := c.Get(header)
		if rid == "" {
			rid = store.NewID()
		}

		// send back to client before anything downstream can flush
		c.Set(header, rid)
		c.Locals(LocalRequestID, rid)
		// set it on the request headers so adaptor/http handlers can read it
		c.Request().Header.Set(header, rid)

		seed := reqctx.Values{header: rid}
		return store.Run(c.Context(), seed, func(ctx context.Context) error {
			c.SetContext(ctx)
			return c.Next()
		}, reqctx.WithHeader(header))
	}
}

// RequestIDFromFiber retrieves the request ID from Fiber locals.
func RequestIDFromFiber(c fiber.Ctx) (string, bool) {
	v := c.Locals(LocalRequestID)
	s, ok := v.(string)
	return s, ok && s != ""
}
