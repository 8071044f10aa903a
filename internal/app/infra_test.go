package app

import (
	"context"
	"testing"

	"github.com/Alijeyrad/reqtrace/config"
	"github.com/Alijeyrad/reqtrace/pkg/reqctx"
)

func TestProvideStore_UsesConfiguredHeader(t *testing.T) {
	cfg := &config.Config{RequestID: config.RequestIDConfig{Header: "CorrelationId"}}
	store := ProvideStore(cfg, nil)

	if store.Header() != "CorrelationId" {
		t.Fatalf("Header() = %q, want CorrelationId", store.Header())
	}

	_ = store.Run(context.Background(), reqctx.Values{}, func(ctx context.Context) error {
		if reqctx.GetString(ctx, "CorrelationId") == "" {
			t.Error("generated id not stored under the configured header")
		}
		return nil
	})
}

func TestProvideRedis_DisabledReturnsNil(t *testing.T) {
	rdb, err := ProvideRedis(nil, &config.Config{})
	if err != nil {
		t.Fatalf("ProvideRedis() error = %v", err)
	}
	if rdb != nil {
		t.Error("ProvideRedis() returned a client with rate limiting disabled")
	}
}
