package http

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/reqtrace/config"
	"github.com/Alijeyrad/reqtrace/internal/api/http/handler"
	"github.com/Alijeyrad/reqtrace/internal/api/http/middleware"
	"github.com/Alijeyrad/reqtrace/internal/api/http/router"
	"github.com/Alijeyrad/reqtrace/pkg/observability"
	"github.com/Alijeyrad/reqtrace/pkg/reqctx"
)

// Module provides the HTTP Server to the fx graph.
var Module = fx.Module("http", fx.Provide(NewServer))

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Cfg       *config.Config
	Store     *reqctx.Store
	Router    *router.Router
	Redis     *redis.Client           `optional:"true"`
	OTel      *observability.Provider `optional:"true"`
}

func NewServer(p Params) *fiber.App {
	timeout := time.Duration(p.Cfg.Server.TimeoutSeconds) * time.Second
	app := fiber.New(fiber.Config{
		AppName:      p.Cfg.Observability.ServiceName,
		ErrorHandler: handler.ErrorHandler,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	configureGlobalMiddleware(app, p)

	p.Router.Register(app)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			addr := fmt.Sprintf(":%d", p.Cfg.Server.Port)
			go func() {
				if err := app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
					slog.Error("HTTP server error", "error", err)
				}
			}()
			slog.Info("HTTP server listening", "addr", addr, "request_id_header", p.Cfg.RequestID.Header)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})

	return app
}

func configureGlobalMiddleware(app *fiber.App, p Params) {
	// Opens the request scope; everything below runs inside it.
	app.Use(middleware.RequestID(p.Store, middleware.RequestIDConfig{Header: p.Cfg.RequestID.Header}))
	app.Use(recoverer.New())

	if p.OTel != nil && p.Cfg.Observability.Tracing.Enabled {
		app.Use(observability.FiberMiddleware())
	}

	if p.Cfg.Server.Environment == "production" {
		app.Use(helmet.New())
		if p.Cfg.Server.CORS.Enabled {
			app.Use(cors.New(cors.Config{
				AllowOrigins:  p.Cfg.Server.CORS.AllowOrigins,
				ExposeHeaders: []string{p.Cfg.RequestID.Header},
			}))
		}
	}

	if p.Cfg.RateLimit.Enabled && p.Redis != nil {
		app.Use(middleware.NewLimiterWithRedis(p.Redis, p.Cfg.RateLimit))
	}

	app.Use(logger.New(logger.Config{
		Format: "${ip} - [${time}] [req_id=${locals:" + middleware.LocalRequestID + "}] ${method} ${url} ${status}\n",
	}))
}
