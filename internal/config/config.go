package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string        `env:"SERVER_PORT"      envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL"        envDefault:"info"`
	RedisAddr       string        `env:"REDIS_ADDR"       envDefault:"localhost:6379"`
	RedisPass       string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB"         envDefault:"0"`
	CacheEnabled    bool          `env:"CACHE_ENABLED"    envDefault:"false"`
	CacheTTL        time.Duration `env:"CACHE_TTL"        envDefault:"5m"`
	SeedFile        string        `env:"SEED_FILE"`
	IdentityHeader  string        `env:"IDENTITY_HEADER"  envDefault:"X-User-ID"`
	SwaggerHost     string        `env:"SWAGGER_HOST"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads an optional .env file and builds Config from the environment.
// Variables already set in the environment win over the file.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
