package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfig_Defaults tests loading configuration with default values
func TestLoadConfig_Defaults(t *testing.T) {
	// Load config without a file (should use defaults)
	config, err := LoadConfig("")

	require.NoError(t, err)
	require.NotNil(t, config)

	// Verify server defaults
	assert.Equal(t, 8082, config.Server.Port)
	assert.Equal(t, 30*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, config.Server.WriteTimeout)

	// Verify Postgres defaults
	assert.Equal(t, "postgres://localhost:5432/matchdata?sslmode=disable", config.Postgres.DSN)
	assert.Equal(t, 10, config.Postgres.MaxConns)
	assert.Equal(t, 3*time.Second, config.Postgres.QueryTimeout)

	// Verify Redis defaults
	assert.Equal(t, "localhost:6379", config.Redis.Addr)
	assert.Equal(t, "", config.Redis.Password)
	assert.Equal(t, 0, config.Redis.DB)
	assert.Equal(t, 10*time.Minute, config.Redis.BriefingTTL)
	assert.Equal(t, 30*time.Minute, config.Redis.PromptTTL)

	// Verify Kafka defaults
	assert.Equal(t, []string{"localhost:9092"}, config.Kafka.Brokers)
	assert.Equal(t, "match_predictions", config.Kafka.Topic)

	// Verify OpenAI defaults
	assert.Equal(t, "gpt-4o-mini", config.OpenAI.Model)
	assert.Equal(t, 0.2, config.OpenAI.Temperature)
	assert.Equal(t, 1024, config.OpenAI.MaxTokens)

	// Verify pipeline defaults
	assert.Equal(t, "Premier League", config.Pipeline.DefaultLeague)
	assert.Equal(t, 4*time.Second, config.Pipeline.SubFetchTimeout)
	assert.Equal(t, 8*time.Second, config.Pipeline.ContextBudget)
	assert.Equal(t, 15*time.Second, config.Pipeline.InferenceTimeout)
	assert.Equal(t, 3*time.Second, config.Pipeline.FallbackTimeout)
	assert.Equal(t, 2*time.Second, config.Pipeline.RecorderGrace)

	// Verify logging defaults
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "json", config.Logging.Format)
}

// TestLoadConfig_WithFile tests loading configuration from file
func TestLoadConfig_WithFile(t *testing.T) {
	// Create temporary config file
	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	configContent := `
server:
  port: 9090
  read_timeout: 45s
  write_timeout: 45s

postgres:
  dsn: postgres://db:5432/matches
  max_conns: 25
  query_timeout: 5s

redis:
  addr: redis:6379
  password: test_password
  db: 1
  briefing_ttl: 20m
  prompt_ttl: 1h

kafka:
  brokers:
    - broker1:9092
    - broker2:9092
  topic: test_predictions

openai:
  model: gpt-4o
  temperature: 0.1
  max_tokens: 2048

pipeline:
  default_league: La Liga
  sub_fetch_timeout: 5s
  context_budget: 10s
  inference_timeout: 20s
  fallback_timeout: 2s
  recorder_grace: 1s

logging:
  level: debug
  format: console
`

	_, err = tmpFile.WriteString(configContent)
	require.NoError(t, err)
	tmpFile.Close()

	// Load config from file
	config, err := LoadConfig(tmpFile.Name())

	require.NoError(t, err)
	require.NotNil(t, config)

	// Verify server config
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, 45*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, 45*time.Second, config.Server.WriteTimeout)

	// Verify Postgres config
	assert.Equal(t, "postgres://db:5432/matches", config.Postgres.DSN)
	assert.Equal(t, 25, config.Postgres.MaxConns)
	assert.Equal(t, 5*time.Second, config.Postgres.QueryTimeout)

	// Verify Redis config
	assert.Equal(t, "redis:6379", config.Redis.Addr)
	assert.Equal(t, "test_password", config.Redis.Password)
	assert.Equal(t, 1, config.Redis.DB)
	assert.Equal(t, 20*time.Minute, config.Redis.BriefingTTL)
	assert.Equal(t, time.Hour, config.Redis.PromptTTL)

	// Verify Kafka config
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, config.Kafka.Brokers)
	assert.Equal(t, "test_predictions", config.Kafka.Topic)

	// Verify OpenAI config
	assert.Equal(t, "gpt-4o", config.OpenAI.Model)
	assert.Equal(t, 0.1, config.OpenAI.Temperature)
	assert.Equal(t, 2048, config.OpenAI.MaxTokens)

	// Verify pipeline config
	assert.Equal(t, "La Liga", config.Pipeline.DefaultLeague)
	assert.Equal(t, 5*time.Second, config.Pipeline.SubFetchTimeout)
	assert.Equal(t, 10*time.Second, config.Pipeline.ContextBudget)
	assert.Equal(t, 20*time.Second, config.Pipeline.InferenceTimeout)
	assert.Equal(t, 2*time.Second, config.Pipeline.FallbackTimeout)
	assert.Equal(t, time.Second, config.Pipeline.RecorderGrace)

	// Verify logging config
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "console", config.Logging.Format)
}

// TestLoadConfig_InvalidFile tests loading with non-existent file
func TestLoadConfig_InvalidFile(t *testing.T) {
	config, err := LoadConfig("/nonexistent/config.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
}

// TestLoadConfig_PartialFile tests loading with partial configuration
func TestLoadConfig_PartialFile(t *testing.T) {
	// Create temporary config file with partial config
	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	partialContent := `
server:
  port: 9090

kafka:
  brokers:
    - broker1:9092

# Other configs will use defaults
`

	_, err = tmpFile.WriteString(partialContent)
	require.NoError(t, err)
	tmpFile.Close()

	// Load config from file
	config, err := LoadConfig(tmpFile.Name())

	require.NoError(t, err)
	require.NotNil(t, config)

	// Verify overridden values
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, []string{"broker1:9092"}, config.Kafka.Brokers)

	// Verify defaults are still used for non-specified values
	assert.Equal(t, 30*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, "match_predictions", config.Kafka.Topic)
	assert.Equal(t, "localhost:6379", config.Redis.Addr)
}

// TestLoadConfig_EnvironmentVariables tests environment variable overrides
func TestLoadConfig_EnvironmentVariables(t *testing.T) {
	// Set environment variables
	os.Setenv("MATCH_PREDICTOR_SERVER_PORT", "7777")
	os.Setenv("MATCH_PREDICTOR_REDIS_ADDR", "env-redis:6379")
	os.Setenv("MATCH_PREDICTOR_KAFKA_TOPIC", "env_topic")
	defer func() {
		os.Unsetenv("MATCH_PREDICTOR_SERVER_PORT")
		os.Unsetenv("MATCH_PREDICTOR_REDIS_ADDR")
		os.Unsetenv("MATCH_PREDICTOR_KAFKA_TOPIC")
	}()

	// Load config (env vars should override defaults)
	config, err := LoadConfig("")

	require.NoError(t, err)
	require.NotNil(t, config)

	// Verify environment variables were used
	assert.Equal(t, 7777, config.Server.Port)
	assert.Equal(t, "env-redis:6379", config.Redis.Addr)
	assert.Equal(t, "env_topic", config.Kafka.Topic)
}

// TestPipelineConfig tests pipeline budget configurations
func TestPipelineConfig(t *testing.T) {
	tests := []struct {
		name   string
		config PipelineConfig
	}{
		{
			name: "Recommended budgets",
			config: PipelineConfig{
				DefaultLeague:    "Premier League",
				SubFetchTimeout:  4 * time.Second,
				ContextBudget:    8 * time.Second,
				InferenceTimeout: 15 * time.Second,
				FallbackTimeout:  3 * time.Second,
				RecorderGrace:    2 * time.Second,
			},
		},
		{
			name: "Tight budgets",
			config: PipelineConfig{
				DefaultLeague:    "La Liga",
				SubFetchTimeout:  time.Second,
				ContextBudget:    3 * time.Second,
				InferenceTimeout: 10 * time.Second,
				FallbackTimeout:  time.Second,
				RecorderGrace:    500 * time.Millisecond,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.config.DefaultLeague)
			assert.Greater(t, tt.config.ContextBudget, tt.config.SubFetchTimeout)
			assert.Greater(t, tt.config.InferenceTimeout, tt.config.FallbackTimeout)
			assert.Greater(t, tt.config.RecorderGrace, time.Duration(0))
		})
	}
}
