package config

const EnvPrefix = "PROMO"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv = "PROMO_APP_ENV"
	EnvPort   = "PROMO_APP_PORT"

	EnvDBDSN  = "PROMO_DB_DSN"
	EnvDBHost = "PROMO_DB_HOST"
	EnvDBUser = "PROMO_DB_USER"
	EnvDBName = "PROMO_DB_NAME"

	EnvRedisURL  = "PROMO_REDIS_URL"
	EnvRedisAddr = "PROMO_REDIS_ADDR"

	EnvGCPProjectID             = "PROMO_GCP_PROJECT_ID"
	EnvPubSubPromotionEventsSub = "PROMO_PUBSUB_PROMOTION_EVENTS_SUBSCRIPTION"

	EnvSnapshotTTL            = "PROMO_SNAPSHOT_TTL"
	EnvSnapshotRefreshTimeout = "PROMO_SNAPSHOT_REFRESH_TIMEOUT"
	EnvFlashPriceTolerance    = "PROMO_FLASH_PRICE_TOLERANCE"
	EnvDefaultCurrency        = "PROMO_DEFAULT_CURRENCY"

	EnvUseSQLite           = "PROMO_USE_SQLITE"
	EnvSharedSnapshotCache = "PROMO_SHARED_SNAPSHOT_CACHE"
	EnvPromotionEvents     = "PROMO_PROMOTION_EVENTS"
)

var discreteDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
