package inspect

import (
	"context"
	"log/slog"

	"github.com/Alijeyrad/reqtrace/pkg/reqctx"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type Report struct {
	RequestID string         `json:"request_id"`
	Header    string         `json:"header"`
	Values    map[string]any `json:"values"`
}

type AsyncReport struct {
	Report
	// Same is true when a goroutine spawned by the request saw the same
	// request id as the request itself.
	Same bool `json:"same"`
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Describe(ctx context.Context) (*Report, error)
	DescribeAsync(ctx context.Context) (*AsyncReport, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type inspectService struct{}

func New() Service {
	return &inspectService{}
}

func (s *inspectService) Describe(ctx context.Context) (*Report, error) {
	if !reqctx.InScope(ctx) {
		return nil, ErrNoScope
	}

	report := &Report{
		RequestID: reqctx.RequestIDFromContext(ctx),
		Header:    reqctx.HeaderFromContext(ctx),
		Values:    reqctx.Snapshot(ctx),
	}
	slog.DebugContext(ctx, "inspect: described request scope", "keys", len(report.Values))
	return report, nil
}

func (s *inspectService) DescribeAsync(ctx context.Context) (*AsyncReport, error) {
	type result struct {
		report *Report
		err    error
	}

	done := make(chan result, 1)
	go func() {
		r, err := s.Describe(ctx)
		done <- result{report: r, err: err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.err != nil {
		return nil, res.err
	}

	return &AsyncReport{
		Report: *res.report,
		Same:   res.report.RequestID == reqctx.RequestIDFromContext(ctx),
	}, nil
}
