package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Cart         CartConfig
	Cron         CronConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Cart.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STREETSNEAKERS_APP_ENV" required:"true"`
	Port         string `envconfig:"STREETSNEAKERS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STREETSNEAKERS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STREETSNEAKERS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"STREETSNEAKERS_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN string `envconfig:"STREETSNEAKERS_DB_DSN"`

	LegacyHost     string `envconfig:"STREETSNEAKERS_DB_HOST"`
	LegacyPort     int    `envconfig:"STREETSNEAKERS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STREETSNEAKERS_DB_USER"`
	LegacyPassword string `envconfig:"STREETSNEAKERS_DB_PASSWORD"`
	LegacyName     string `envconfig:"STREETSNEAKERS_DB_NAME"`
	LegacySSLMode  string `envconfig:"STREETSNEAKERS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STREETSNEAKERS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STREETSNEAKERS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STREETSNEAKERS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STREETSNEAKERS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STREETSNEAKERS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STREETSNEAKERS_REDIS_ADDR"`
	Password     string        `envconfig:"STREETSNEAKERS_REDIS_PASSWORD"`
	DB           int           `envconfig:"STREETSNEAKERS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STREETSNEAKERS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STREETSNEAKERS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STREETSNEAKERS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STREETSNEAKERS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STREETSNEAKERS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STREETSNEAKERS_AUTO_MIGRATE" default:"false"`
}

// CartConfig carries the pricing knobs and the persistence wiring for session carts.
// Money values are decimal strings so they can be handed to decimal.NewFromString as-is.
type CartConfig struct {
	Store                 string        `envconfig:"STREETSNEAKERS_CART_STORE" default:"redis"`
	Locker                string        `envconfig:"STREETSNEAKERS_CART_LOCKER" default:"redis"`
	SessionTTL            time.Duration `envconfig:"STREETSNEAKERS_CART_SESSION_TTL" default:"720h"`
	LockTTL               time.Duration `envconfig:"STREETSNEAKERS_CART_LOCK_TTL" default:"10s"`
	LockRetryInterval     time.Duration `envconfig:"STREETSNEAKERS_CART_LOCK_RETRY_INTERVAL" default:"50ms"`
	LockMaxRetries        int           `envconfig:"STREETSNEAKERS_CART_LOCK_MAX_RETRIES" default:"40"`
	TaxRate               string        `envconfig:"STREETSNEAKERS_CART_TAX_RATE" default:"0.05"`
	FreeShippingThreshold string        `envconfig:"STREETSNEAKERS_CART_FREE_SHIPPING_THRESHOLD" default:"500000"`
	ShippingFee           string        `envconfig:"STREETSNEAKERS_CART_SHIPPING_FEE" default:"30000"`
	RetentionDays         int           `envconfig:"STREETSNEAKERS_CART_RETENTION_DAYS" default:"30"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"STREETSNEAKERS_CRON_INTERVAL" default:"24h"`
}

func (c CartConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Store)) {
	case CartStoreRedis, CartStorePostgres, CartStoreMemory:
	default:
		return fmt.Errorf("%s must be one of %s, %s, %s", EnvCartStore, CartStoreRedis, CartStorePostgres, CartStoreMemory)
	}
	switch strings.ToLower(strings.TrimSpace(c.Locker)) {
	case CartLockerRedis, CartLockerLocal:
	default:
		return fmt.Errorf("%s must be one of %s, %s", EnvCartLocker, CartLockerRedis, CartLockerLocal)
	}
	return nil
}

// StoreKind returns the normalized persistence backend name.
func (c CartConfig) StoreKind() string {
	return strings.ToLower(strings.TrimSpace(c.Store))
}

// LockerKind returns the normalized session locker name.
func (c CartConfig) LockerKind() string {
	return strings.ToLower(strings.TrimSpace(c.Locker))
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
