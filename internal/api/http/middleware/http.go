package middleware

import (
	"context"
	"net/http"

	"github.com/Alijeyrad/reqtrace/pkg/reqctx"
)

// HTTPRequestID is RequestID for plain net/http handler chains.
// Its signature matches mux.MiddlewareFunc.
func HTTPRequestID(store *reqctx.Store, cfg RequestIDConfig) func(http.Handler) http.Handler {
	header := cfg.header(store)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := r.Header.Get(header)
			if rid == "" {
				rid = store.NewID()
			}

			w.Header().Set(header, rid)

			seed := reqctx.Values{header: rid}
			_ = store.Run(r.Context(), seed, func(ctx context.Context) error {
				next.ServeHTTP(w, r.WithContext(ctx))
				return nil
			}, reqctx.WithHeader(header))
		})
	}
}
