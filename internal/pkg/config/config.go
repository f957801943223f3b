package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	// DefaultWidth is the viewport assumed until a client reports its own.
	DefaultWidth int `env:"DEFAULT_VIEWPORT_WIDTH, default=1200"`

	// Sessions idle for SessionIdle are dropped from memory; carts stay stored.
	SessionIdle  time.Duration `env:"SESSION_IDLE_TIMEOUT, default=1h"`
	SessionSweep time.Duration `env:"SESSION_SWEEP_INTERVAL, default=5m"`

	Mongo   MongoConfig
	Redis   RedisConfig
	MealDB  MealDBConfig
	EmailJS EmailJSConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=storefront"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type MealDBConfig struct {
	BaseURL string        `env:"MEALDB_BASE_URL, default=https://www.themealdb.com/api/json/v1/1"`
	Timeout time.Duration `env:"MEALDB_TIMEOUT,  default=10s"`
}

// EmailJSConfig holds the order confirmation credentials. Without a public
// key confirmation emails are skipped.
type EmailJSConfig struct {
	Endpoint   string `env:"EMAILJS_ENDPOINT,    default=https://api.emailjs.com/api/v1.0/email/send"`
	PublicKey  string `env:"EMAILJS_PUBLIC_KEY"`
	PrivateKey string `env:"EMAILJS_PRIVATE_KEY"`
	ServiceID  string `env:"EMAILJS_SERVICE_ID"`
	TemplateID string `env:"EMAILJS_TEMPLATE_ID"`
	Workers    int    `env:"MAIL_WORKERS,        default=4"`
}

// IsProduction reports whether the process runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads an optional .env file and then the environment. Variables
// already set in the environment win over the file.
func Load() *Config {
	_ = godotenv.Load()
	cfg, err := LoadWith(envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith resolves the configuration from l.
func LoadWith(l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
