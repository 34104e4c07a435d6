package config

// EnvPrefix is empty because every field tag already carries the full variable name.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "STREETSNEAKERS_APP_ENV"
	EnvPort     = "STREETSNEAKERS_APP_PORT"
	EnvLogLevel = "STREETSNEAKERS_LOG_LEVEL"

	EnvDBDSN  = "STREETSNEAKERS_DB_DSN"
	EnvDBHost = "STREETSNEAKERS_DB_HOST"
	EnvDBUser = "STREETSNEAKERS_DB_USER"
	EnvDBName = "STREETSNEAKERS_DB_NAME"

	EnvRedisURL = "STREETSNEAKERS_REDIS_URL"

	EnvCartStore         = "STREETSNEAKERS_CART_STORE"
	EnvCartLocker        = "STREETSNEAKERS_CART_LOCKER"
	EnvCartTaxRate       = "STREETSNEAKERS_CART_TAX_RATE"
	EnvCartShippingFee   = "STREETSNEAKERS_CART_SHIPPING_FEE"
	EnvCartRetentionDays = "STREETSNEAKERS_CART_RETENTION_DAYS"
)

const (
	CartStoreRedis    = "redis"
	CartStorePostgres = "postgres"
	CartStoreMemory   = "memory"

	CartLockerRedis = "redis"
	CartLockerLocal = "local"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
