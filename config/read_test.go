package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestReadConfig_Defaults(t *testing.T) {
	cfg, err := ReadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.RequestID.Header != "X-Request-ID" {
		t.Errorf("RequestID.Header = %q, want %q", cfg.RequestID.Header, "X-Request-ID")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if !cfg.Logging.Output.Stdout {
		t.Error("Logging.Output.Stdout = false, want true")
	}
}

func TestReadConfig_File(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 9090
  environment: production
request_id:
  header: CorrelationId
  log_keys: [tenant]
logging:
  level: debug
  format: json
`)

	cfg, err := ReadConfig(dir)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.RequestID.Header != "CorrelationId" {
		t.Errorf("RequestID.Header = %q, want %q", cfg.RequestID.Header, "CorrelationId")
	}
	if len(cfg.RequestID.LogKeys) != 1 || cfg.RequestID.LogKeys[0] != "tenant" {
		t.Errorf("RequestID.LogKeys = %v, want [tenant]", cfg.RequestID.LogKeys)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

func TestReadConfig_EnvOverride(t *testing.T) {
	t.Setenv("REQTRACE_REQUEST_ID_HEADER", "X-Correlation-ID")
	t.Setenv("REQTRACE_SERVER_PORT", "7070")

	cfg, err := ReadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.RequestID.Header != "X-Correlation-ID" {
		t.Errorf("RequestID.Header = %q, want %q", cfg.RequestID.Header, "X-Correlation-ID")
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
}

func TestReadConfig_Invalid(t *testing.T) {
	dir := writeConfig(t, `
request_id:
  header: "bad header"
`)

	_, err := ReadConfig(dir)
	if !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("ReadConfig() error = %v, want %v", err, ErrInvalidHeader)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:    ServerConfig{Port: 8080},
			RequestID: RequestIDConfig{Header: "X-Request-ID"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: ErrInvalidPort},
		{name: "admin port clashes", mutate: func(c *Config) { c.Server.AdminPort = 8080 }, wantErr: ErrInvalidPort},
		{name: "admin port enabled", mutate: func(c *Config) { c.Server.AdminPort = 8081 }},
		{name: "empty header", mutate: func(c *Config) { c.RequestID.Header = "" }, wantErr: ErrInvalidHeader},
		{name: "header with colon", mutate: func(c *Config) { c.RequestID.Header = "X:ID" }, wantErr: ErrInvalidHeader},
		{name: "unknown level", mutate: func(c *Config) { c.Logging.Level = "verbose" }, wantErr: ErrInvalidLogLevel},
		{name: "sampling above one", mutate: func(c *Config) { c.Observability.Tracing.SamplingRate = 1.5 }, wantErr: ErrInvalidSampling},
		{name: "rate limit without redis", mutate: func(c *Config) { c.RateLimit.Enabled = true }, wantErr: ErrMissingRedisAddr},
		{name: "loki without endpoint", mutate: func(c *Config) { c.Logging.Output.Loki.Enabled = true }, wantErr: ErrMissingLokiAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
