package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App   AppConfig   `mapstructure:"app"`
	WS    WSConfig    `mapstructure:"ws"`
	Seed  SeedConfig  `mapstructure:"seed"`
	Kafka KafkaConfig `mapstructure:"kafka"`
	Redis RedisConfig `mapstructure:"redis"`
}

type AppConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"` // e.g., "local", "prod"
}

// WSConfig controls the broadcast hub timers.
type WSConfig struct {
	TickInterval    time.Duration `mapstructure:"tick_interval"`
	SweepInterval   time.Duration `mapstructure:"sweep_interval"`
	LivenessTimeout time.Duration `mapstructure:"liveness_timeout"`
}

// SeedConfig controls the deterministic data generator.
type SeedConfig struct {
	OnBoot       bool     `mapstructure:"on_boot"`
	Accounts     int      `mapstructure:"accounts"`
	CatalogItems int      `mapstructure:"catalog_items"`
	Transactions int      `mapstructure:"transactions"`
	Breadth      int      `mapstructure:"breadth"`
	Depth        int      `mapstructure:"depth"`
	RandomSeed   int64    `mapstructure:"random_seed"`
	Symbols      []string `mapstructure:"symbols"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
	GroupID string   `mapstructure:"group_id"`
	Workers int      `mapstructure:"workers"`
}

type RedisConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Addr            string        `mapstructure:"addr"`
	Password        string        `mapstructure:"password"`
	DB              int           `mapstructure:"db"`
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`
	RateLimitMax    int           `mapstructure:"rate_limit_max"`
}

// LoadConfig reads configuration from .env file, environment variables, and defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 1. Load .env file into System Environment (if it exists)
	if err := godotenv.Load(); err != nil {
		log.Println("Note: No .env file found, relying on System Env Vars")
	}

	// 2. Set Defaults
	v.SetDefault("app.port", ":8080")
	v.SetDefault("app.env", "local")

	v.SetDefault("ws.tick_interval", "100ms")
	v.SetDefault("ws.sweep_interval", "15s")
	v.SetDefault("ws.liveness_timeout", "30s")

	v.SetDefault("seed.on_boot", true)
	v.SetDefault("seed.accounts", 50000)
	v.SetDefault("seed.catalog_items", 10000)
	v.SetDefault("seed.transactions", 500000)
	v.SetDefault("seed.breadth", 20)
	v.SetDefault("seed.depth", 10)
	v.SetDefault("seed.random_seed", 12345)
	v.SetDefault("seed.symbols", []string{
		"AAPL", "MSFT", "GOOG", "AMZN", "TSLA", "META", "NVDA", "NFLX", "AMD", "INTC",
	})

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "market_ticks")
	v.SetDefault("kafka.group_id", "quote-feed-group")
	v.SetDefault("kafka.workers", 4)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.rate_limit_window", "1m")
	v.SetDefault("redis.rate_limit_max", 100)

	// 3. Configure Viper to read Environment Variables
	// Maps dot-notation to underscores (e.g., "app.port" -> "APP_PORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Explicitly Bind Env Vars to Keys
	bindEnv(v, "app.port", "app.env")
	bindEnv(v, "ws.tick_interval", "ws.sweep_interval", "ws.liveness_timeout")
	bindEnv(v, "seed.on_boot", "seed.accounts", "seed.catalog_items", "seed.transactions")
	bindEnv(v, "seed.breadth", "seed.depth", "seed.random_seed", "seed.symbols")
	bindEnv(v, "kafka.enabled", "kafka.brokers", "kafka.topic", "kafka.group_id", "kafka.workers")
	bindEnv(v, "redis.enabled", "redis.addr", "redis.password", "redis.db")
	bindEnv(v, "redis.rate_limit_window", "redis.rate_limit_max")

	// 5. Unmarshal into Struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %v", err)
	}

	// 6. Basic Validation
	if cfg.WS.TickInterval <= 0 || cfg.WS.SweepInterval <= 0 {
		return nil, fmt.Errorf("ws intervals must be positive")
	}
	if cfg.WS.LivenessTimeout < cfg.WS.SweepInterval {
		return nil, fmt.Errorf("liveness timeout must be at least the sweep interval")
	}
	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers cannot be empty when the feed is enabled")
	}

	return &cfg, nil
}

// bindEnv is a helper to bind multiple keys at once
func bindEnv(v *viper.Viper, keys ...string) {
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			log.Printf("Could not bind env var for key %s: %v", key, err)
		}
	}
}
