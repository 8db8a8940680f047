package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// CORSOrigins lists the browser origins allowed to call the API,
	// comma-separated. The default matches the local React dev server.
	CORSOrigins []string `env:"CORS_ORIGINS, default=http://localhost:3000"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Upload UploadConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=quicknotes"`
}

// RedisConfig controls the optional note-list cache. An empty Addr disables
// Redis entirely; the service then reads MongoDB on every list.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type UploadConfig struct {
	Dir       string `env:"UPLOAD_DIR,    default=uploads"`
	MaxSizeMB int64  `env:"UPLOAD_MAX_MB, default=5"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
