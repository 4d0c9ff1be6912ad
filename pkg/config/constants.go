package config

// EnvPrefix is passed to envconfig; individual fields carry fully-qualified
// WB_* names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags.
const (
	EnvAppEnv     = "WB_APP_ENV"
	EnvPort       = "WB_APP_PORT"
	EnvDBDSN      = "WB_DB_DSN"
	EnvDBHost     = "WB_DB_HOST"
	EnvDBUser     = "WB_DB_USER"
	EnvDBName     = "WB_DB_NAME"
	EnvRedisURL   = "WB_REDIS_URL"
	EnvJWTSecret  = "WB_JWT_SECRET"
	EnvJWTIssuer  = "WB_JWT_ISSUER"
	EnvJWTExpMins = "WB_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
