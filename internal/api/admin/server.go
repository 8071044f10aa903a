// Package admin serves operational endpoints on a separate net/http listener.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/Alijeyrad/reqtrace/config"
	"github.com/Alijeyrad/reqtrace/internal/api/http/middleware"
	"github.com/Alijeyrad/reqtrace/internal/service/inspect"
	"github.com/Alijeyrad/reqtrace/pkg/reqctx"
)

// Module provides the admin Server to the fx graph.
var Module = fx.Module("admin", fx.Provide(NewServer))

type Params struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Cfg        *config.Config
	Store      *reqctx.Store
	InspectSvc inspect.Service
}

// Server is the admin listener. It is inert when server.admin_port is 0.
type Server struct {
	srv *http.Server
}

func NewServer(p Params) *Server {
	if p.Cfg.Server.AdminPort == 0 {
		return &Server{}
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", p.Cfg.Server.AdminPort),
		Handler:           NewRouter(p.Cfg, p.Store, p.InspectSvc),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ErrorLog:          slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					slog.Error("admin server error", "error", err)
				}
			}()
			slog.Info("admin server listening", "addr", srv.Addr)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return &Server{srv: srv}
}

// NewRouter registers the admin endpoints.
func NewRouter(cfg *config.Config, store *reqctx.Store, svc inspect.Service) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.HTTPRequestID(store, middleware.RequestIDConfig{Header: cfg.RequestID.Header}))

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/debug/context", handleContext(svc)).Methods(http.MethodGet)

	return r
}

func handleContext(svc inspect.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := svc.Describe(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "admin: describe failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":      "internal server error",
				"request_id": reqctx.RequestIDFromContext(r.Context()),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": report})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
