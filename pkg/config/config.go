package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Session       SessionConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Billing       BillingConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SMARTSOCIETY_APP_ENV" required:"true"`
	Port         string `envconfig:"SMARTSOCIETY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SMARTSOCIETY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SMARTSOCIETY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SMARTSOCIETY_DB_DSN"`
	Driver string `envconfig:"SMARTSOCIETY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SMARTSOCIETY_DB_HOST"`
	LegacyPort     int    `envconfig:"SMARTSOCIETY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SMARTSOCIETY_DB_USER"`
	LegacyPassword string `envconfig:"SMARTSOCIETY_DB_PASSWORD"`
	LegacyName     string `envconfig:"SMARTSOCIETY_DB_NAME"`
	LegacySSLMode  string `envconfig:"SMARTSOCIETY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SMARTSOCIETY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SMARTSOCIETY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SMARTSOCIETY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SMARTSOCIETY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SMARTSOCIETY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SMARTSOCIETY_REDIS_ADDR"`
	Password     string        `envconfig:"SMARTSOCIETY_REDIS_PASSWORD"`
	DB           int           `envconfig:"SMARTSOCIETY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SMARTSOCIETY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SMARTSOCIETY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SMARTSOCIETY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SMARTSOCIETY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SMARTSOCIETY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SMARTSOCIETY_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SMARTSOCIETY_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SMARTSOCIETY_JWT_EXPIRATION_MINUTES" default:"10080"`
}

// TokenTTL returns the session token lifetime. The default matches the
// seven-day session cookie.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type SessionConfig struct {
	CookieName   string `envconfig:"SMARTSOCIETY_SESSION_COOKIE_NAME" default:"token"`
	CookieDomain string `envconfig:"SMARTSOCIETY_SESSION_COOKIE_DOMAIN"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SMARTSOCIETY_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SMARTSOCIETY_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SMARTSOCIETY_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SMARTSOCIETY_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SMARTSOCIETY_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"SMARTSOCIETY_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"SMARTSOCIETY_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"SMARTSOCIETY_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type BillingConfig struct {
	GenerationDay    int           `envconfig:"SMARTSOCIETY_BILLING_GENERATION_DAY" default:"1"`
	DueDays          int           `envconfig:"SMARTSOCIETY_BILLING_DUE_DAYS" default:"15"`
	LateFeePercent   int           `envconfig:"SMARTSOCIETY_BILLING_LATE_FEE_PERCENT" default:"5"`
	CronInterval     time.Duration `envconfig:"SMARTSOCIETY_BILLING_CRON_INTERVAL" default:"24h"`
	NotificationKeep time.Duration `envconfig:"SMARTSOCIETY_NOTIFICATION_RETENTION" default:"720h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SMARTSOCIETY_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SMARTSOCIETY_AUTO_MIGRATE" default:"false"`
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
