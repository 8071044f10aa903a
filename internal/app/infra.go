package app

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/reqtrace/config"
	"github.com/Alijeyrad/reqtrace/pkg/observability"
	redispkg "github.com/Alijeyrad/reqtrace/pkg/redis"
	"github.com/Alijeyrad/reqtrace/pkg/reqctx"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideOTel),
	fx.Provide(ProvideScopeMetrics),
	fx.Provide(ProvideStore),
	fx.Provide(ProvideRedis),
)

// ProvideStore builds the single request context store of the process.
func ProvideStore(cfg *config.Config, metrics *observability.ScopeMetrics) *reqctx.Store {
	opts := []reqctx.StoreOption{
		reqctx.WithDefaultHeader(cfg.RequestID.Header),
	}
	if metrics != nil {
		opts = append(opts, reqctx.WithObserver(metrics))
	}
	return reqctx.NewStore(opts...)
}

// ProvideRedis returns nil when nothing needs Redis.
func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	if !cfg.RateLimit.Enabled {
		return nil, nil
	}
	rdb, err := redispkg.NewRedisFromCentral(cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.InitTelemetry(context.Background(), observability.FromCentralConfig(cfg))
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}

// ProvideScopeMetrics returns nil unless metrics are enabled.
func ProvideScopeMetrics(cfg *config.Config, provider *observability.Provider) (*observability.ScopeMetrics, error) {
	if provider == nil || !cfg.Observability.Metrics.Enabled {
		return nil, nil
	}
	return observability.NewScopeMetrics(provider.MeterProvider)
}
