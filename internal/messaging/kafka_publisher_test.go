package messaging

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// TestNewKafkaPublisher tests publisher creation
func TestNewKafkaPublisher(t *testing.T) {
	config := KafkaPublisherConfig{
		Brokers: []string{"localhost:9092"},
		Topic:   "match_predictions",
	}

	publisher := NewKafkaPublisher(config, zerolog.Nop())

	assert.NotNil(t, publisher)
	assert.NotNil(t, publisher.writer)
	assert.Equal(t, config.Topic, publisher.writer.Topic)

	publisher.Close()
}

// TestPredictionMessage_Format tests the wire format round trip
func TestPredictionMessage_Format(t *testing.T) {
	record := models.PredictionHistory{
		ID:       uuid.New(),
		MatchID:  "match-42",
		League:   "Premier League",
		HomeTeam: "Arsenal",
		AwayTeam: "Chelsea",
		Result: models.PredictionResult{
			Outcome:    models.OutcomeHomeWin,
			Confidence: 68,
			RiskTier:   models.RiskMedium,
		},
		PromptSource: "optimized",
		Status:       models.HistoryPending,
		CreatedAt:    time.Now().UTC(),
	}

	msg := models.KafkaPredictionMessage{
		Record:    record,
		Timestamp: time.Now().UTC(),
	}

	msgBytes, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.NotEmpty(t, msgBytes)

	var parsed models.KafkaPredictionMessage
	require.NoError(t, json.Unmarshal(msgBytes, &parsed))
	assert.Equal(t, record.ID, parsed.Record.ID)
	assert.Equal(t, record.MatchID, parsed.Record.MatchID)
	assert.Equal(t, models.OutcomeHomeWin, parsed.Record.Result.Outcome)
	assert.Equal(t, models.HistoryPending, parsed.Record.Status)
}
