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
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Booking       BookingConfig
	Square        SquareConfig
	Cron          CronConfig
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
	Env          string `envconfig:"WB_APP_ENV" required:"true"`
	Port         string `envconfig:"WB_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"WB_DB_DSN"`
	Driver string `envconfig:"WB_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"WB_DB_HOST"`
	LegacyPort     int    `envconfig:"WB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"WB_DB_USER"`
	LegacyPassword string `envconfig:"WB_DB_PASSWORD"`
	LegacyName     string `envconfig:"WB_DB_NAME"`
	LegacySSLMode  string `envconfig:"WB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"WB_REDIS_URL" required:"true"`
	Address      string        `envconfig:"WB_REDIS_ADDR"`
	Password     string        `envconfig:"WB_REDIS_PASSWORD"`
	DB           int           `envconfig:"WB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"WB_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"WB_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"WB_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"WB_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"WB_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"WB_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"WB_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"WB_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"WB_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"WB_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"WB_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"WB_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"WB_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"WB_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"WB_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"WB_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"WB_AUTO_MIGRATE" default:"false"`
}

// BookingConfig carries the lifecycle knobs for quotes and payments.
type BookingConfig struct {
	QuoteValidityDays     int    `envconfig:"WB_QUOTE_VALIDITY_DAYS" default:"14"`
	DefaultDepositPercent string `envconfig:"WB_DEFAULT_DEPOSIT_PERCENT" default:"30"`
	WebhookGuardTTL       time.Duration `envconfig:"WB_PAYMENT_WEBHOOK_GUARD_TTL" default:"720h"`
}

type SquareConfig struct {
	AccessToken   string `envconfig:"WB_SQUARE_ACCESS_TOKEN"`
	WebhookSecret string `envconfig:"WB_SQUARE_WEBHOOK_SECRET"`
	Env           string `envconfig:"WB_SQUARE_ENV" default:"sandbox"`
	LocationID    string `envconfig:"WB_SQUARE_LOCATION_ID"`
}

// Environment returns the normalized Square environment (sandbox/production).
func (s SquareConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "sandbox"
	}
	return env
}

type CronConfig struct {
	QuoteExpirySweepInterval  time.Duration `envconfig:"WB_CRON_QUOTE_EXPIRY_INTERVAL" default:"15m"`
	NotificationRetentionDays int           `envconfig:"WB_CRON_NOTIFICATION_RETENTION_DAYS" default:"90"`
	SweepBatchSize            int           `envconfig:"WB_CRON_SWEEP_BATCH_SIZE" default:"200"`
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
