package http

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/Alijeyrad/reqtrace/config"
	"github.com/Alijeyrad/reqtrace/internal/api/admin"
	"github.com/Alijeyrad/reqtrace/internal/api/http/router"
	"github.com/Alijeyrad/reqtrace/internal/app"
)

// Options assembles the fx graph of the HTTP service.
func Options(cfg *config.Config, timeout time.Duration) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		app.InfraModule,
		app.ServiceModule,
		router.Module,
		admin.Module,
		Module, // This is the http.Module from server.go

		// Invoke *fiber.App because that's what NewServer returns.
		// This forces the creation of fiber.App, triggering the OnStart hook
		fx.Invoke(func(*fiber.App) {}),
		fx.Invoke(func(*admin.Server) {}),

		fx.StopTimeout(timeout),
		fx.WithLogger(func() fxevent.Logger { return fxevent.NopLogger }),
	)
}

// Start runs the HTTP service until it receives a shutdown signal.
func Start(cfg *config.Config, timeout time.Duration) {
	fx.New(Options(cfg, timeout)).Run()
}
