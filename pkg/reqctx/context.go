package reqctx

import (
	"context"
	"maps"
	"sync/atomic"
)

// ctxKey is a private type for context keys to prevent collisions.
type ctxKey int

const (
	keyScope ctxKey = iota
)

// Values is the key/value mapping carried by a scope.
type Values map[string]any

// scope is one isolated context lifetime. Its values are written once when
// the scope opens and are read without locking afterwards.
type scope struct {
	values Values
	header string
	parent *scope
	closed atomic.Bool
}

// active returns the nearest scope on the lexical chain that is still open,
// or nil once every scope on the chain has closed.
func (s *scope) active() *scope {
	for cur := s; cur != nil; cur = cur.parent {
		if !cur.closed.Load() {
			return cur
		}
	}
	return nil
}

func withScope(ctx context.Context, s *scope) context.Context {
	return context.WithValue(ctx, keyScope, s)
}

// scopeFromContext returns the scope attached to ctx, open or not.
func scopeFromContext(ctx context.Context) *scope {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(keyScope).(*scope)
	return s
}

// activeScope returns the scope that is logically current for ctx.
func activeScope(ctx context.Context) *scope {
	s := scopeFromContext(ctx)
	if s == nil {
		return nil
	}
	return s.active()
}

// Get looks up key in the current scope.
// Returns nil, false outside any scope or when the key is absent.
func Get(ctx context.Context, key string) (any, bool) {
	s := activeScope(ctx)
	if s == nil {
		return nil, false
	}
	v, ok := s.values[key]
	return v, ok
}

// GetString is like Get but returns the value only when it is a string.
func GetString(ctx context.Context, key string) string {
	v, ok := Get(ctx, key)
	if !ok {
		return ""
	}
	str, _ := v.(string)
	return str
}

// RequestIDFromContext returns the request identifier of the current scope,
// read under the header name that scope was opened with.
// Returns empty string outside any scope.
func RequestIDFromContext(ctx context.Context) string {
	s := activeScope(ctx)
	if s == nil {
		return ""
	}
	id, _ := s.values[s.header].(string)
	return id
}

// HeaderFromContext returns the header name the current scope stores its
// request identifier under, or empty string outside any scope.
func HeaderFromContext(ctx context.Context) string {
	s := activeScope(ctx)
	if s == nil {
		return ""
	}
	return s.header
}

// Snapshot returns a copy of the current scope's values.
// Returns nil outside any scope.
func Snapshot(ctx context.Context) Values {
	s := activeScope(ctx)
	if s == nil {
		return nil
	}
	return maps.Clone(s.values)
}

// InScope reports whether ctx is attached to an open scope.
func InScope(ctx context.Context) bool {
	return activeScope(ctx) != nil
}

// Detach returns a context that keeps the scope association of ctx but is
// never cancelled and has no deadline. Lookups through it still stop
// resolving once the scope closes.
func Detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
