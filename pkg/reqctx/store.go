package reqctx

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultHeader is the header name, and scope key, used for the request
// identifier when nothing else is configured.
const DefaultHeader = "X-Request-ID"

// Observer is notified about scope lifecycle events.
type Observer interface {
	ScopeOpened(ctx context.Context, header string, generated bool)
	ScopeClosed(ctx context.Context, header string, elapsed time.Duration, failed bool)
}

// Store opens request scopes. A Store holds only configuration, so a single
// instance is safe to share between any number of concurrent requests.
type Store struct {
	header   string
	newID    func() string
	observer Observer
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithDefaultHeader sets the header name used by scopes that do not pass
// their own via WithHeader.
func WithDefaultHeader(name string) StoreOption {
	return func(s *Store) {
		if name != "" {
			s.header = name
		}
	}
}

// WithIDGenerator replaces the UUIDv4 generator.
func WithIDGenerator(fn func() string) StoreOption {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithObserver registers an Observer for scope lifecycle events.
func WithObserver(o Observer) StoreOption {
	return func(s *Store) {
		s.observer = o
	}
}

// NewStore creates a Store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		header: DefaultHeader,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Header returns the store's default header name.
func (s *Store) Header() string {
	return s.header
}

// NewID generates a fresh request identifier.
func (s *Store) NewID() string {
	return s.newID()
}

type scopeOptions struct {
	header string
}

// ScopeOption configures a single scope.
type ScopeOption func(*scopeOptions)

// WithHeader makes the scope store its request identifier under name
// instead of the store default.
func WithHeader(name string) ScopeOption {
	return func(o *scopeOptions) {
		if name != "" {
			o.header = name
		}
	}
}

// Run opens a new scope seeded with a copy of seed, runs fn inside it and
// closes the scope when fn returns or panics. The scope's request identifier
// is seed[header] when that is non-empty, otherwise a freshly generated one.
//
// A scope opened inside another one does not inherit the outer values.
// The error returned by fn is returned unchanged.
func (s *Store) Run(ctx context.Context, seed Values, fn func(ctx context.Context) error, opts ...ScopeOption) error {
	o := scopeOptions{header: s.header}
	for _, opt := range opts {
		opt(&o)
	}

	values := make(Values, len(seed)+1)
	for k, v := range seed {
		values[k] = v
	}
	id, generated := requestIDFromSeed(seed, o.header)
	if generated {
		id = s.newID()
	}
	values[o.header] = id

	sc := &scope{
		values: values,
		header: o.header,
		parent: scopeFromContext(ctx),
	}
	ctx = withScope(ctx, sc)

	if s.observer != nil {
		s.observer.ScopeOpened(ctx, o.header, generated)
	}
	start := time.Now()
	failed := true
	defer func() {
		sc.closed.Store(true)
		if s.observer != nil {
			s.observer.ScopeClosed(ctx, o.header, time.Since(start), failed)
		}
	}()

	err := fn(ctx)
	failed = err != nil
	return err
}

// Get looks up key in the scope current for ctx.
func (s *Store) Get(ctx context.Context, key string) (any, bool) {
	return Get(ctx, key)
}

// RequestID returns the request identifier of the scope current for ctx,
// or empty string outside any scope.
func (s *Store) RequestID(ctx context.Context) string {
	return RequestIDFromContext(ctx)
}

// Runner is the pending half of Execute.
type Runner struct {
	store *Store
	ctx   context.Context
	fn    func(ctx context.Context) error
}

// Execute captures fn; the returned Runner opens the scope once With is
// called. It is equivalent to Run.
func (s *Store) Execute(ctx context.Context, fn func(ctx context.Context) error) Runner {
	return Runner{store: s, ctx: ctx, fn: fn}
}

// With opens the scope seeded with seed and runs the captured function.
func (r Runner) With(seed Values, opts ...ScopeOption) error {
	return r.store.Run(r.ctx, seed, r.fn, opts...)
}

// Call is Run for callbacks that produce a result.
func Call[R any](ctx context.Context, s *Store, seed Values, fn func(ctx context.Context) (R, error), opts ...ScopeOption) (R, error) {
	var out R
	err := s.Run(ctx, seed, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	}, opts...)
	return out, err
}

// requestIDFromSeed returns the seeded identifier under header, or reports
// that one has to be generated.
func requestIDFromSeed(seed Values, header string) (string, bool) {
	v, ok := seed[header]
	if !ok || v == nil {
		return "", true
	}
	id, isString := v.(string)
	if !isString {
		id = fmt.Sprint(v)
	}
	if id == "" {
		return "", true
	}
	return id, false
}
