package global

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	DriverMemory = "memory"
	DriverMongo  = "mongo"
)

// Config is read from the environment, after an optional .env file
type Config struct {
	Port        string `envconfig:"PORT" default:"8000"`
	Env         string `envconfig:"ENV" default:"development"`
	StoreDriver string `envconfig:"STORE_DRIVER" default:"memory"`

	MongoURI      string `envconfig:"MONGODB_URI"`
	MongoDatabase string `envconfig:"MONGODB_DATABASE" default:"storefront"`

	RedisAddress  string        `envconfig:"REDIS_ADDRESS"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"24h"`

	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`

	AIEndpoint string `envconfig:"AI_ENDPOINT"`
	AIAPIKey   string `envconfig:"AI_API_KEY"`
	AIModel    string `envconfig:"AI_MODEL" default:"gpt-4o-mini"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	Seed bool `envconfig:"SEED" default:"true"`
}

// LoadConfig reads .env when present and decodes the environment
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Could not read .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "decode environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory:
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGODB_URI is required when STORE_DRIVER=mongo")
		}
	default:
		return errors.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) AllowedOrigins() []string {
	return SplitList(c.CORSOrigins)
}
