package config

const (
	EnvPrefix = "STOCKLEDGER"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv    = "STOCKLEDGER_APP_ENV"
	EnvPort      = "STOCKLEDGER_APP_PORT"
	EnvLogLevel  = "STOCKLEDGER_LOG_LEVEL"
	EnvDBDSN     = "STOCKLEDGER_DB_DSN"
	EnvDBHost    = "STOCKLEDGER_DB_HOST"
	EnvDBUser    = "STOCKLEDGER_DB_USER"
	EnvDBName    = "STOCKLEDGER_DB_NAME"
	EnvUseSQLite = "STOCKLEDGER_USE_SQLITE"
	EnvRedisURL  = "STOCKLEDGER_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
