package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/reqtrace/internal/api/http/middleware"
	"github.com/Alijeyrad/reqtrace/internal/service/inspect"
	"github.com/Alijeyrad/reqtrace/pkg/reqctx"
)

func newApp(store *reqctx.Store, header string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(middleware.RequestID(store, middleware.RequestIDConfig{Header: header}))

	h := NewInspectHandler(inspect.New())
	app.Get("/context", h.Describe)
	app.Get("/context/async", h.DescribeAsync)
	app.Get("/boom", func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "bad input")
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, path, header, id string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if id != "" {
		req.Header.Set(header, id)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestInspectHandler_Describe(t *testing.T) {
	app := newApp(reqctx.NewStore(), "CorrelationId")

	resp, body := doJSON(t, app, "/context", "CorrelationId", "corr-1")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "corr-1", resp.Header.Get("CorrelationId"))

	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "missing data in %v", body)
	assert.Equal(t, "corr-1", data["request_id"])
	assert.Equal(t, "CorrelationId", data["header"])
	assert.Equal(t, map[string]any{"CorrelationId": "corr-1"}, data["values"])
}

func TestInspectHandler_DescribeAsync(t *testing.T) {
	app := newApp(reqctx.NewStore(), "")

	_, body := doJSON(t, app, "/context/async", reqctx.DefaultHeader, "async-1")

	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "missing data in %v", body)
	assert.Equal(t, "async-1", data["request_id"])
	assert.Equal(t, true, data["same"])
}

func TestErrorHandler_CarriesRequestID(t *testing.T) {
	app := newApp(reqctx.NewStore(), "")

	resp, body := doJSON(t, app, "/boom", reqctx.DefaultHeader, "err-1")

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "err-1", resp.Header.Get(reqctx.DefaultHeader))
	assert.Equal(t, "bad input", body["error"])
	assert.Equal(t, "err-1", body["request_id"])
}

func TestErrorHandler_HidesInternalErrors(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusServiceUnavailable, "db is down")
	})

	resp, body := doJSON(t, app, "/", reqctx.DefaultHeader, "")

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal server error", body["error"])
	assert.NotContains(t, body, "request_id")
}
