package config

// EnvPrefix namespaces every environment variable the app reads.
const EnvPrefix = "SMARTSOCIETY"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv    = "SMARTSOCIETY_APP_ENV"
	EnvPort      = "SMARTSOCIETY_APP_PORT"
	EnvDBDSN     = "SMARTSOCIETY_DB_DSN"
	EnvDBHost    = "SMARTSOCIETY_DB_HOST"
	EnvDBUser    = "SMARTSOCIETY_DB_USER"
	EnvDBName    = "SMARTSOCIETY_DB_NAME"
	EnvRedisURL  = "SMARTSOCIETY_REDIS_URL"
	EnvJWTSecret = "SMARTSOCIETY_JWT_SECRET"
	EnvJWTIssuer = "SMARTSOCIETY_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
