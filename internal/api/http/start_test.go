package http

import (
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/Alijeyrad/reqtrace/config"
)

func TestOptions_GraphIsComplete(t *testing.T) {
	cfg := &config.Config{
		Server:    config.ServerConfig{Port: 8080, AdminPort: 8081},
		RequestID: config.RequestIDConfig{Header: "X-Request-ID"},
	}

	if err := fx.ValidateApp(Options(cfg, time.Second)); err != nil {
		t.Fatalf("fx graph invalid: %v", err)
	}
}
