package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/reqtrace/config"
	"github.com/Alijeyrad/reqtrace/internal/service/inspect"
	"github.com/Alijeyrad/reqtrace/pkg/reqctx"
)

func TestDebugContext(t *testing.T) {
	cfg := &config.Config{RequestID: config.RequestIDConfig{Header: "CorrelationId"}}
	store := reqctx.NewStore(reqctx.WithIDGenerator(func() string { return "admin-generated" }))
	r := NewRouter(cfg, store, inspect.New())

	tests := []struct {
		name     string
		incoming string
		want     string
	}{
		{name: "echoes incoming", incoming: "admin-incoming", want: "admin-incoming"},
		{name: "generates missing", want: "admin-generated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/debug/context", nil)
			if tt.incoming != "" {
				req.Header.Set("CorrelationId", tt.incoming)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("CorrelationId"))

			var body struct {
				Data inspect.Report `json:"data"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.want, body.Data.RequestID)
			assert.Equal(t, "CorrelationId", body.Data.Header)
		})
	}
}

func TestNewServer_Disabled(t *testing.T) {
	s := NewServer(Params{Cfg: &config.Config{}})
	assert.Nil(t, s.srv)
}
