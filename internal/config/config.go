package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const EnvDevelopment = "DEVELOPMENT"

type Config struct {
	Env        string
	HTTPPort   string
	MongoURI   string
	MongoDB    string
	JWTSecret  string
	JWTExpires time.Duration
	// Días de vida de la cookie "token".
	CookieExpiresDays int
	FrontendURL       string
	BackendURL        string

	RedisAddr    string
	CacheTTL     time.Duration
	UseKafka     bool
	KafkaBrokers []string
	OrderTopic   string
	UserTopic    string
	OutboxPeriod time.Duration
	OutboxLimit  int

	ClickHouseAddr string
	ClickHouseDB   string

	// Peticiones por segundo y ráfaga para las rutas de autenticación.
	AuthRateLimit float64
	AuthRateBurst int
}

func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// LoadConfig carga envFile (si existe) y lee la configuración del entorno.
// Las variables ya definidas en el entorno tienen prioridad sobre el fichero.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	jwtExpires, err := ParseDuration(getEnv("JWT_EXPIRES_TIME", "7d"))
	if err != nil {
		return nil, err
	}
	cacheTTL, err := ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		return nil, err
	}
	outboxPeriod, err := ParseDuration(getEnv("OUTBOX_PERIOD", "1s"))
	if err != nil {
		return nil, err
	}
	cookieDays, err := strconv.Atoi(getEnv("COOKIE_EXPIRES_TIME", "7"))
	if err != nil {
		return nil, err
	}
	outboxLimit, err := strconv.Atoi(getEnv("OUTBOX_LIMIT", "10"))
	if err != nil {
		return nil, err
	}
	rateLimit, err := strconv.ParseFloat(getEnv("AUTH_RATE_LIMIT", "5"), 64)
	if err != nil {
		return nil, err
	}
	rateBurst, err := strconv.Atoi(getEnv("AUTH_RATE_BURST", "10"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Env:               getEnv("NODE_ENV", "PRODUCTION"),
		HTTPPort:          getEnv("PORT", "4000"),
		MongoURI:          getEnv("MONGODB_URI", "mongodb://localhost:27017/?replicaSet=rs0"),
		MongoDB:           getEnv("MONGODB_DB", "storefront"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		JWTExpires:        jwtExpires,
		CookieExpiresDays: cookieDays,
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:3000"),
		BackendURL:        getEnv("BACKEND_URL", "http://localhost:4000/"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		CacheTTL:          cacheTTL,
		UseKafka:          getEnv("USE_KAFKA", "false") == "true",
		KafkaBrokers:      strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		OrderTopic:        getEnv("KAFKA_TOPIC_ORDER", "order-events"),
		UserTopic:         getEnv("KAFKA_TOPIC_USER", "user-events"),
		OutboxPeriod:      outboxPeriod,
		OutboxLimit:       outboxLimit,
		ClickHouseAddr:    getEnv("CLICKHOUSE_ADDR", ""),
		ClickHouseDB:      getEnv("CLICKHOUSE_DB", "storefront"),
		AuthRateLimit:     rateLimit,
		AuthRateBurst:     rateBurst,
	}, nil
}

// ParseDuration acepta lo mismo que time.ParseDuration y además días ("7d").
func ParseDuration(raw string) (time.Duration, error) {
	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, err
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(raw)
}
