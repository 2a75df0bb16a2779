package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cypherlabdev/golf-edge-service/pkg/arbitrage"
	"github.com/cypherlabdev/golf-edge-service/pkg/odds"
	"github.com/cypherlabdev/golf-edge-service/pkg/provider"
)

// Config holds all configuration for golf-edge-service
type Config struct {
	Server    ServerConfig        `mapstructure:"server"`
	Kafka     KafkaConfig         `mapstructure:"kafka"`
	Redis     RedisConfig         `mapstructure:"redis"`
	Arbitrage ArbitrageConfig     `mapstructure:"arbitrage"`
	Providers map[string][]string `mapstructure:"providers"` // provider key -> URL substrings
	Logging   LoggingConfig       `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers     []string `mapstructure:"brokers"`
	Topic       string   `mapstructure:"topic"` // Topic to consume from (market_snapshots)
	GroupID     string   `mapstructure:"group_id"`
	ReportTopic string   `mapstructure:"report_topic"` // Topic ranked reports are published to
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ArbitrageConfig holds the each-way defaults passed to the engine
type ArbitrageConfig struct {
	DefaultPlaceFraction string         `mapstructure:"default_place_fraction"` // e.g. "1/5"
	DefaultPlaceCount    int            `mapstructure:"default_place_count"`
	DefaultDepth         int            `mapstructure:"default_depth"`
	DepthOverrides       map[string]int `mapstructure:"depth_overrides"` // provider key -> depth
	Workers              int            `mapstructure:"workers"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8082)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "market_snapshots")
	v.SetDefault("kafka.group_id", "golf-edge")
	v.SetDefault("kafka.report_topic", "edge_reports")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 30*time.Minute)

	v.SetDefault("arbitrage.default_place_fraction", "1/5")
	v.SetDefault("arbitrage.default_place_count", 10)
	v.SetDefault("arbitrage.default_depth", 10)
	v.SetDefault("arbitrage.depth_overrides", map[string]int{})
	v.SetDefault("arbitrage.workers", 0)

	v.SetDefault("providers", provider.DefaultPatterns)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvPrefix("GOLF_EDGE")
	v.AutomaticEnv()
	// Replace . with _ for environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unmarshal to struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate checks the arbitrage section can be turned into an engine config
func (c *Config) Validate() error {
	engineConfig, err := c.Arbitrage.ToEngineConfig()
	if err != nil {
		return err
	}
	return engineConfig.Validate()
}

// ToEngineConfig converts config to the arbitrage engine's parameters
func (c *ArbitrageConfig) ToEngineConfig() (arbitrage.Config, error) {
	terms, err := odds.ParseEachWayTerms(c.DefaultPlaceFraction, c.DefaultPlaceCount)
	if err != nil {
		return arbitrage.Config{}, fmt.Errorf("default each-way terms: %w", err)
	}

	overrides := make(map[string]int, len(c.DepthOverrides))
	for key, depth := range c.DepthOverrides {
		overrides[strings.ToLower(key)] = depth
	}

	return arbitrage.Config{
		DefaultTerms:   terms,
		DefaultDepth:   c.DefaultDepth,
		DepthOverrides: overrides,
		Workers:        c.Workers,
	}, nil
}
