package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-promotions/pkg/enums"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Promotions   PromotionsConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if !cfg.FeatureFlags.UseSQLite {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	if cfg.FeatureFlags.SharedSnapshotCache && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("%s or %s is required when %s is enabled", EnvRedisURL, EnvRedisAddr, EnvSharedSnapshotCache)
	}
	if cfg.FeatureFlags.PromotionEvents {
		if strings.TrimSpace(cfg.GCP.ProjectID) == "" {
			return nil, fmt.Errorf("%s is required when %s is enabled", EnvGCPProjectID, EnvPromotionEvents)
		}
		if strings.TrimSpace(cfg.PubSub.PromotionEventsSubscription) == "" {
			return nil, fmt.Errorf("%s is required when %s is enabled", EnvPubSubPromotionEventsSub, EnvPromotionEvents)
		}
	}
	if err := cfg.Promotions.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PROMO_APP_ENV" required:"true"`
	Port         string `envconfig:"PROMO_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PROMO_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"PROMO_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"PROMO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN        string `envconfig:"PROMO_DB_DSN"`
	SQLitePath string `envconfig:"PROMO_DB_SQLITE_PATH" default:"promotions.db"`

	Host     string `envconfig:"PROMO_DB_HOST"`
	Port     int    `envconfig:"PROMO_DB_PORT" default:"5432"`
	User     string `envconfig:"PROMO_DB_USER"`
	Password string `envconfig:"PROMO_DB_PASSWORD"`
	Name     string `envconfig:"PROMO_DB_NAME"`
	SSLMode  string `envconfig:"PROMO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PROMO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PROMO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PROMO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PROMO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PROMO_REDIS_URL"`
	Address      string        `envconfig:"PROMO_REDIS_ADDR"`
	Password     string        `envconfig:"PROMO_REDIS_PASSWORD"`
	DB           int           `envconfig:"PROMO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PROMO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PROMO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PROMO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PROMO_REDIS_READ_TIMEOUT" default:"2s"`
	WriteTimeout time.Duration `envconfig:"PROMO_REDIS_WRITE_TIMEOUT" default:"2s"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"PROMO_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	PromotionEventsSubscription string `envconfig:"PROMO_PUBSUB_PROMOTION_EVENTS_SUBSCRIPTION"`
}

// PromotionsConfig tunes the snapshot cache and pricing guards.
type PromotionsConfig struct {
	SnapshotTTL         time.Duration `envconfig:"PROMO_SNAPSHOT_TTL" default:"30s"`
	RefreshTimeout      time.Duration `envconfig:"PROMO_SNAPSHOT_REFRESH_TIMEOUT" default:"2s"`
	SharedSnapshotTTL   time.Duration `envconfig:"PROMO_SHARED_SNAPSHOT_TTL" default:"10m"`
	FlashPriceTolerance string        `envconfig:"PROMO_FLASH_PRICE_TOLERANCE"`
	DefaultCurrency     string        `envconfig:"PROMO_DEFAULT_CURRENCY" default:"USD"`
}

// Tolerance returns the parsed flash-price tolerance, or nil when unset so
// evaluation falls back to one minor unit of the line's currency. Load has
// already rejected unparseable values.
func (p PromotionsConfig) Tolerance() *decimal.Decimal {
	raw := strings.TrimSpace(p.FlashPriceTolerance)
	if raw == "" {
		return nil
	}
	tolerance, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &tolerance
}

// Currency returns the configured default currency, USD when unset.
func (p PromotionsConfig) Currency() enums.Currency {
	currency, err := enums.ParseCurrency(p.DefaultCurrency)
	if err != nil {
		return enums.CurrencyUSD
	}
	return currency
}

func (p PromotionsConfig) validate() error {
	if p.SnapshotTTL <= 0 {
		return fmt.Errorf("%s must be positive", EnvSnapshotTTL)
	}
	if p.RefreshTimeout <= 0 {
		return fmt.Errorf("%s must be positive", EnvSnapshotRefreshTimeout)
	}
	if raw := strings.TrimSpace(p.FlashPriceTolerance); raw != "" {
		tolerance, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvFlashPriceTolerance, err)
		}
		if tolerance.IsNegative() {
			return fmt.Errorf("%s must not be negative", EnvFlashPriceTolerance)
		}
	}
	if _, err := enums.ParseCurrency(p.DefaultCurrency); err != nil {
		return fmt.Errorf("parsing %s: %w", EnvDefaultCurrency, err)
	}
	return nil
}

type FeatureFlagsConfig struct {
	UseSQLite           bool `envconfig:"PROMO_USE_SQLITE" default:"false"`
	AutoMigrate         bool `envconfig:"PROMO_AUTO_MIGRATE" default:"false"`
	SharedSnapshotCache bool `envconfig:"PROMO_SHARED_SNAPSHOT_CACHE" default:"false"`
	PromotionEvents     bool `envconfig:"PROMO_PROMOTION_EVENTS" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range discreteDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
