package constants

const (
	ConfigName   = "config"
	ConfigFormat = "yaml"

	// EnvPrefix is prepended to every environment override,
	// e.g. REQTRACE_SERVER_PORT overrides server.port.
	EnvPrefix = "REQTRACE"

	ServiceName = "reqtrace"
)
