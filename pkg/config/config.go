package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and .env file.
func Load[T any](cfg T) error {
	_ = godotenv.Load() // missing .env file is fine, env vars may be set directly

	if err := env.Parse(cfg); err != nil {
		return err
	}

	return nil
}

// Config holds the configuration for the engine.
type Config struct {
	// Markets is the list of base assets to open a book for. Every market
	// settles against QuoteCurrency.
	Markets       []string `env:"MARKETS" envDefault:"TATA"`
	QuoteCurrency string   `env:"QUOTE_CURRENCY" envDefault:"INR"`

	// WithSnapshot enables snapshot restoration at startup.
	WithSnapshot bool `env:"WITH_SNAPSHOT" envDefault:"false"`

	KafkaConfig    `envPrefix:"KAFKA_"`
	RedisConfig    `envPrefix:"REDIS_"`
	SnapshotConfig `envPrefix:"SNAPSHOT_"`
}

// KafkaConfig holds the configuration for the command consumer and the store producer.
type KafkaConfig struct {
	Brokers      []string `env:"BROKER" envDefault:"localhost:9092"`
	CommandTopic string   `env:"COMMAND_TOPIC" envDefault:"engine-commands"`
	StoreTopic   string   `env:"STORE_TOPIC" envDefault:"db-processor"`
	GroupID      string   `env:"GROUP_ID" envDefault:"trade_engine"`
}

// RedisConfig holds the configuration for the Redis client.
type RedisConfig struct {
	Addrs    string `env:"ADDRESS" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	Username string `env:"USERNAME" envDefault:""`
	DB       int    `env:"DB" envDefault:"0"`
}

// SnapshotConfig holds the configuration for periodic snapshot writes.
type SnapshotConfig struct {
	Interval time.Duration `env:"INTERVAL" envDefault:"3s"`
	Key      string        `env:"KEY" envDefault:"engine:snapshot"`
}
