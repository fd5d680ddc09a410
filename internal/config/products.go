package config

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultHTTPAddr        = ":8080"
	defaultMongoDatabase   = "coldstore"
	defaultMigrationsPath  = "migrations/products"
	defaultShutdownTimeout = 10 * time.Second

	defaultMongoConnectTimeout = 10 * time.Second
	defaultReadHeaderTimeout   = 5 * time.Second
)

type Products struct {
	MongoURI            string
	MongoDatabase       string
	RabbitMQURL         string
	HTTPAddr            string
	MigrationsPath      string
	ShutdownTimeout     time.Duration
	MongoConnectTimeout time.Duration
	ReadHeaderTimeout   time.Duration
}

// LoadProducts reads the server configuration from the environment. The store
// address is the only required setting; without it every store-dependent
// operation is impossible, so startup fails.
func LoadProducts() (Products, error) {
	cfg := Products{
		MongoURI:            getEnv("MONGODB_URI", ""),
		MongoDatabase:       getEnv("MONGODB_DATABASE", defaultMongoDatabase),
		RabbitMQURL:         getEnv("RABBITMQ_URL", ""),
		HTTPAddr:            getEnv("HTTP_ADDR", defaultHTTPAddr),
		MigrationsPath:      getEnv("MIGRATIONS_PATH", defaultMigrationsPath),
		ShutdownTimeout:     defaultShutdownTimeout,
		MongoConnectTimeout: defaultMongoConnectTimeout,
		ReadHeaderTimeout:   defaultReadHeaderTimeout,
	}

	if cfg.MongoURI == "" {
		return Products{}, fmt.Errorf("MONGODB_URI is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
