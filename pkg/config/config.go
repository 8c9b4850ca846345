package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix for every environment variable the service reads.
const EnvPrefix = "FORMCRAFT"

// Config is the full runtime configuration, populated from FORMCRAFT_*
// environment variables.
type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	GCS   GCSConfig
	Media MediaConfig
}

type AppConfig struct {
	Env          string        `envconfig:"ENV" default:"development"`
	Port         int           `envconfig:"PORT" default:"8080"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat    string        `envconfig:"LOG_FORMAT" default:"json"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`
	CORSOrigins  []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
	AdminToken   string        `envconfig:"ADMIN_TOKEN"`
	AutoMigrate  bool          `envconfig:"AUTO_MIGRATE" default:"false"`
}

type DBConfig struct {
	DSN             string        `envconfig:"DB_DSN"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
	ConnMaxIdleTime time.Duration `envconfig:"DB_CONN_MAX_IDLE_TIME" default:"5m"`
}

type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	CartTTL  time.Duration `envconfig:"REDIS_CART_TTL" default:"168h"`
}

type GCSConfig struct {
	Bucket          string `envconfig:"GCS_BUCKET"`
	CredentialsFile string `envconfig:"GCS_CREDENTIALS_FILE"`
	PublicBaseURL   string `envconfig:"GCS_PUBLIC_BASE_URL" default:"https://storage.googleapis.com"`
}

type MediaConfig struct {
	MaxUploadBytes int64    `envconfig:"MEDIA_MAX_UPLOAD_BYTES" default:"10485760"`
	AllowedTypes   []string `envconfig:"MEDIA_ALLOWED_TYPES" default:"image/jpeg,image/png,image/webp,application/pdf"`
	SlipPrefix     string   `envconfig:"MEDIA_SLIP_PREFIX" default:"slips"`
	ProductPrefix  string   `envconfig:"MEDIA_PRODUCT_PREFIX" default:"products"`
}

// Load reads configuration from the environment. Each section binds
// directly against the prefix so the variable names stay flat
// (FORMCRAFT_PORT, FORMCRAFT_DB_DSN, ...) instead of nesting the
// struct path into them.
func Load() (*Config, error) {
	var cfg Config
	for _, section := range []any{&cfg.App, &cfg.DB, &cfg.Redis, &cfg.GCS, &cfg.Media} {
		if err := envconfig.Process(EnvPrefix, section); err != nil {
			return nil, fmt.Errorf("processing environment config: %w", err)
		}
	}
	return &cfg, nil
}

// IsDev reports whether the service runs in a development environment.
func (c *Config) IsDev() bool {
	switch c.App.Env {
	case "development", "dev", "local", "test":
		return true
	}
	return false
}
