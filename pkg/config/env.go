package config

// EnvPrefix is empty: every variable carries the explicit SKSTORE_ prefix in
// its envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Variable names shared with tests and docs.
const (
	EnvAppEnv         = "SKSTORE_APP_ENV"
	EnvPort           = "SKSTORE_APP_PORT"
	EnvLogLevel       = "SKSTORE_LOG_LEVEL"
	EnvBackendBaseURL = "SKSTORE_BACKEND_BASE_URL"
)
