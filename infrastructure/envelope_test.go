package infrastructure

import (
	"encoding/json"
	"testing"
	"time"

	"hellbingo/events"
	"hellbingo/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope_RoundTrip(t *testing.T) {
	campaignID := uuid.New()
	now := time.Date(2024, 10, 31, 23, 59, 58, 123000000, time.UTC)
	original := events.CampaignEndedEvent{
		CampaignID:       campaignID,
		Result:           models.CampaignResultEliminated,
		NightsReached:    4,
		FinalCurrency:    35,
		EnemiesRemaining: 46,
		Seed:             1729123456789012345,
		StartedAt:        now.Add(-time.Hour),
		EndedAt:          now,
	}

	envelope, err := NewEnvelope(original, now)
	require.NoError(t, err)
	_, err = uuid.Parse(envelope.EventID)
	require.NoError(t, err)

	data, err := envelope.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEnvelope(data)
	require.NoError(t, err)
	assert.Equal(t, envelope.EventID, decoded.EventID)
	assert.Equal(t, events.EventTypeCampaignEnded, decoded.EventType)
	assert.Equal(t, SourceService, decoded.SourceService)
	assert.True(t, now.Equal(decoded.Timestamp))

	event, err := decoded.DecodeEvent()
	require.NoError(t, err)
	ended, ok := event.(events.CampaignEndedEvent)
	require.True(t, ok)
	assert.Equal(t, campaignID, ended.CampaignID)
	assert.Equal(t, original.Seed, ended.Seed, "large seeds survive the double-typed payload")
	assert.Equal(t, 46, ended.EnemiesRemaining)
	assert.True(t, original.EndedAt.Equal(ended.EndedAt))
}

func TestEnvelope_WireShape(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	envelope, err := NewEnvelope(events.NumberDrawnEvent{Night: 2, Number: 77, DrawIndex: 9}, now)
	require.NoError(t, err)

	data, err := envelope.Marshal()
	require.NoError(t, err)

	var wire map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, "number_drawn", wire["event_type"])
	assert.Equal(t, "2024-01-02T03:04:05Z", wire["timestamp"])
	assert.Equal(t, "hellbingo", wire["source_service"])

	payload, ok := wire["payload"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 77.0, payload["number"])
	assert.NotContains(t, payload, "enemy_winner")
}

func TestUnmarshalEnvelope_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: "nope"},
		{name: "missing type", data: `{"event_id":"x","timestamp":"2024-01-01T00:00:00Z"}`},
		{name: "bad timestamp", data: `{"event_type":"number_drawn","timestamp":"yesterday"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalEnvelope([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestEnvelope_DecodeUnknownType(t *testing.T) {
	envelope := &Envelope{EventType: "mystery", Payload: map[string]interface{}{}}

	_, err := envelope.DecodeEvent()

	assert.Error(t, err)
}
