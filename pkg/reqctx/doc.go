// Package reqctx carries request-scoped data, most importantly the request
// identifier, down the call chain of a request.
//
// A Store opens scopes. Each scope holds its own key/value mapping, seeded
// once when the scope opens and read-only afterwards. The scope travels with
// the context.Context handed to the scoped function, so any code that
// receives that context, including goroutines started from it, sees the
// same values without further plumbing.
//
// # Usage
//
// Opening a scope (typically in middleware):
//
//	store := reqctx.NewStore()
//	err := store.Run(ctx, reqctx.Values{"X-Request-ID": "abc-123"}, func(ctx context.Context) error {
//	    return handle(ctx)
//	})
//
// The two-stage form is equivalent:
//
//	err := store.Execute(ctx, handle).With(reqctx.Values{"tenant": "acme"})
//
// Reading values (in services, repositories, loggers, etc.):
//
//	id := reqctx.RequestIDFromContext(ctx)
//	tenant := reqctx.GetString(ctx, "tenant")
//	v, ok := reqctx.Get(ctx, "anything")
//
// # Contracts
//
// The following contracts are guaranteed:
//
//   - Every scope has a non-empty request identifier, taken from the seed
//     when present, otherwise generated as a UUIDv4 string
//   - Concurrent scopes never observe each other's values
//   - A nested scope starts from its own seed only; it never inherits the
//     values of the enclosing scope
//   - A scope closes when its function returns or panics; lookups through a
//     context of a closed scope fall back to the nearest enclosing scope that
//     is still open, and resolve to nothing once none is
//   - Lookups never fail; outside any scope they report absence
//   - The scoped function's error is returned unchanged
package reqctx
