package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for match-predictor-service
type Config struct {
	Server        ServerConfig
	Postgres      PostgresConfig
	Redis         RedisConfig
	Kafka         KafkaConfig
	OpenAI        OpenAIConfig
	Collaborators CollaboratorsConfig
	Pipeline      PipelineConfig
	Logging       LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig holds the connection settings for the match data store
type PostgresConfig struct {
	DSN          string
	MaxConns     int
	QueryTimeout time.Duration
}

// RedisConfig holds Redis cache configuration
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	BriefingTTL time.Duration
	PromptTTL   time.Duration
}

// KafkaConfig holds the backtesting event topic configuration
type KafkaConfig struct {
	Brokers []string
	Topic   string // Topic to publish recorded predictions to
}

// OpenAIConfig holds generative provider settings
type OpenAIConfig struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// CollaboratorsConfig holds endpoints for the advisory HTTP services
type CollaboratorsConfig struct {
	WeatherURL         string
	SearchURL          string
	SearchKey          string
	SearchEngineID     string
	PromptOptimizerURL string
	ABTestingURL       string
	RequestsPerSec     int
	Timeout            time.Duration
}

// PipelineConfig holds prediction pipeline budgets and defaults
type PipelineConfig struct {
	DefaultLeague    string
	SubFetchTimeout  time.Duration // per context sub-source
	ContextBudget    time.Duration // overall aggregation budget
	InferenceTimeout time.Duration
	FallbackTimeout  time.Duration // fallback data reads
	RecorderGrace    time.Duration // max wait on history recording
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8082)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("postgres.dsn", "postgres://localhost:5432/matchdata?sslmode=disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.query_timeout", 3*time.Second)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.briefing_ttl", 10*time.Minute)
	v.SetDefault("redis.prompt_ttl", 30*time.Minute)

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "match_predictions")

	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.temperature", 0.2)
	v.SetDefault("openai.max_tokens", 1024)

	v.SetDefault("collaborators.weather_url", "")
	v.SetDefault("collaborators.search_url", "https://www.googleapis.com/customsearch/v1")
	v.SetDefault("collaborators.search_key", "")
	v.SetDefault("collaborators.search_engine_id", "")
	v.SetDefault("collaborators.prompt_optimizer_url", "")
	v.SetDefault("collaborators.ab_testing_url", "")
	v.SetDefault("collaborators.requests_per_sec", 5)
	v.SetDefault("collaborators.timeout", 4*time.Second)

	v.SetDefault("pipeline.default_league", "Premier League")
	v.SetDefault("pipeline.sub_fetch_timeout", 4*time.Second)
	v.SetDefault("pipeline.context_budget", 8*time.Second)
	v.SetDefault("pipeline.inference_timeout", 15*time.Second)
	v.SetDefault("pipeline.fallback_timeout", 3*time.Second)
	v.SetDefault("pipeline.recorder_grace", 2*time.Second)

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
	v.SetEnvPrefix("MATCH_PREDICTOR")
	v.AutomaticEnv()
	// Replace . with _ for environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unmarshal to struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
