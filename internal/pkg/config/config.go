package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// - provider credentials are optional: a provider without credentials is registered but disabled
// -----------------------------------------------------------------------------

type Config struct {
	Server         ServerConfig
	DB             DBConfig
	CORS           CORSConfig
	Cookie         CookieConfig
	Log            LogConfig
	JWT            JWTConfig
	Order          OrderConfig
	Reconciliation ReconciliationConfig
	Card           CardGatewayConfig
	Regional       RegionalGatewayConfig
	Redis          RedisConfig
	Broker         BrokerConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
	// retries cover the database container starting after the app
	ConnectRetries    int           `envconfig:"DB_CONNECT_RETRIES" default:"10"`
	ConnectRetryDelay time.Duration `envconfig:"DB_CONNECT_RETRY_DELAY" default:"1s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:3001"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
	// File enables rotated file output next to stdout when set
	File          string `envconfig:"LOG_FILE"`
	MaxSizeMB     int    `envconfig:"LOG_MAX_SIZE_MB" default:"50"`
	MaxBackups    int    `envconfig:"LOG_MAX_BACKUPS" default:"3"`
	MaxAgeDays    int    `envconfig:"LOG_MAX_AGE_DAYS" default:"7"`
	CompressFiles bool   `envconfig:"LOG_COMPRESS" default:"false"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"1h"`
}

type OrderConfig struct {
	MinFractions        int32         `envconfig:"ORDER_MIN_FRACTIONS" default:"1"`
	Currency            string        `envconfig:"ORDER_CURRENCY" default:"eur"`
	CreateTimeout       time.Duration `envconfig:"ORDER_CREATE_TIMEOUT" default:"20s"`
	PaymentTimeout      time.Duration `envconfig:"ORDER_PAYMENT_TIMEOUT" default:"1h"`
	ExpirySweepInterval time.Duration `envconfig:"ORDER_EXPIRY_SWEEP_INTERVAL" default:"1m"`
	ExpiryBatchSize     int32         `envconfig:"ORDER_EXPIRY_BATCH_SIZE" default:"50"`
}

type ReconciliationConfig struct {
	// StrictAmountCheck refuses to mark an order paid when the charged amount differs from amount due
	StrictAmountCheck bool `envconfig:"RECONCILIATION_STRICT_AMOUNT_CHECK" default:"false"`
}

type CardGatewayConfig struct {
	SecretKey          string        `envconfig:"CARD_SECRET_KEY"`
	WebhookSecret      string        `envconfig:"CARD_WEBHOOK_SECRET"`
	APIBaseURL         string        `envconfig:"CARD_API_BASE_URL" default:"https://api.stripe.com"`
	SuccessURL         string        `envconfig:"CARD_SUCCESS_URL" default:"http://localhost:3000/success"`
	CancelURL          string        `envconfig:"CARD_CANCEL_URL" default:"http://localhost:3000/cancel"`
	SignatureTolerance time.Duration `envconfig:"CARD_SIGNATURE_TOLERANCE" default:"5m"`
	RequestsPerSecond  float64       `envconfig:"CARD_REQUESTS_PER_SECOND" default:"25"`
	Timeout            time.Duration `envconfig:"CARD_HTTP_TIMEOUT" default:"10s"`
}

type RegionalGatewayConfig struct {
	APIKey            string        `envconfig:"REGIONAL_API_KEY"`
	WebhookSecret     string        `envconfig:"REGIONAL_WEBHOOK_SECRET"`
	APIBaseURL        string        `envconfig:"REGIONAL_API_BASE_URL" default:"https://api.paykilla.com"`
	SuccessURL        string        `envconfig:"REGIONAL_SUCCESS_URL" default:"http://localhost:3000/success"`
	CancelURL         string        `envconfig:"REGIONAL_CANCEL_URL" default:"http://localhost:3000/cancel"`
	RequestsPerSecond float64       `envconfig:"REGIONAL_REQUESTS_PER_SECOND" default:"10"`
	Timeout           time.Duration `envconfig:"REGIONAL_HTTP_TIMEOUT" default:"10s"`
}

type RedisConfig struct {
	// empty Addr disables the replay cache; Postgres stays authoritative either way
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	EventTTL time.Duration `envconfig:"REDIS_EVENT_TTL" default:"72h"`
}

type BrokerConfig struct {
	// empty URL keeps outbox rows pending until a broker is configured
	URL           string        `envconfig:"BROKER_URL"`
	Exchange      string        `envconfig:"BROKER_EXCHANGE" default:"order.events"`
	RelayInterval time.Duration `envconfig:"BROKER_RELAY_INTERVAL" default:"2s"`
	BatchSize     int32         `envconfig:"BROKER_BATCH_SIZE" default:"100"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:              "localhost",
			Port:              "15433", // Test DB port
			User:              "test",
			Password:          "test",
			DBName:            "test_db",
			SSLMode:           "disable",
			TimeZone:          "UTC",
			MaxConns:          10,
			ConnectRetries:    1,
			ConnectRetryDelay: time.Second,
		},
		Cookie: CookieConfig{
			SameSite: "Lax",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Order: OrderConfig{
			MinFractions:        1,
			Currency:            "eur",
			CreateTimeout:       5 * time.Second,
			PaymentTimeout:      time.Hour,
			ExpirySweepInterval: time.Minute,
			ExpiryBatchSize:     50,
		},
		Card: CardGatewayConfig{
			SecretKey:          "sk_test",
			WebhookSecret:      "whsec_test",
			APIBaseURL:         "http://localhost:12111",
			SuccessURL:         "http://localhost:3000/success",
			CancelURL:          "http://localhost:3000/cancel",
			SignatureTolerance: 5 * time.Minute,
			RequestsPerSecond:  100,
			Timeout:            2 * time.Second,
		},
		Regional: RegionalGatewayConfig{
			APIKey:            "rk_test",
			WebhookSecret:     "regional_secret",
			APIBaseURL:        "http://localhost:12112",
			SuccessURL:        "http://localhost:3000/success",
			CancelURL:         "http://localhost:3000/cancel",
			RequestsPerSecond: 100,
			Timeout:           2 * time.Second,
		},
		Redis: RedisConfig{
			EventTTL: time.Hour,
		},
		Broker: BrokerConfig{
			Exchange:      "order.events",
			RelayInterval: time.Second,
			BatchSize:     10,
		},
	}
}
