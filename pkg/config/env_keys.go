package config

// EnvPrefix is empty because each field names its variable in full.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv    = "FOODSHARE_APP_ENV"
	EnvPort      = "FOODSHARE_APP_PORT"
	EnvDBDSN     = "FOODSHARE_DB_DSN"
	EnvDBHost    = "FOODSHARE_DB_HOST"
	EnvDBUser    = "FOODSHARE_DB_USER"
	EnvDBName    = "FOODSHARE_DB_NAME"
	EnvJWTSecret = "FOODSHARE_JWT_SECRET"
	EnvJWTIssuer = "FOODSHARE_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
