package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer_Validation(t *testing.T) {
	tests := []struct {
		name    string
		brokers []string
		topic   string
		wantErr string
	}{
		{name: "empty brokers", brokers: nil, topic: "catalog-events", wantErr: "brokers list is empty"},
		{name: "empty topic", brokers: []string{"localhost:9092"}, topic: "", wantErr: "topic is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProducer(tt.brokers, tt.topic)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewProducer_Success(t *testing.T) {
	p, err := NewProducer([]string{"localhost:9092"}, "catalog-events")
	require.NoError(t, err)
	assert.Equal(t, "catalog-events", p.writer.Topic)
	assert.NoError(t, p.Close())
}

func TestMessage(t *testing.T) {
	id := uuid.New()
	creatorID := uuid.New()
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	msg, err := message(Event{
		Type:       TypeVideoRegistered,
		ID:         id,
		Slug:       "forest-walk-1a2b3c4d",
		CreatorID:  &creatorID,
		Tags:       []string{"nature"},
		OccurredAt: at,
	})
	require.NoError(t, err)

	assert.Equal(t, id.String(), string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "type", msg.Headers[0].Key)
	assert.Equal(t, TypeVideoRegistered, string(msg.Headers[0].Value))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "video.registered", body["type"])
	assert.Equal(t, "forest-walk-1a2b3c4d", body["slug"])
	assert.Equal(t, creatorID.String(), body["modelId"])
	assert.Equal(t, "2024-03-01T09:00:00Z", body["occurredAt"])
}

func TestMessage_StampsTime(t *testing.T) {
	msg, err := message(Event{Type: TypeCreatorCreated, ID: uuid.New(), Slug: "jane-doe"})
	require.NoError(t, err)

	var body struct {
		OccurredAt time.Time `json:"occurredAt"`
	}
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.False(t, body.OccurredAt.IsZero())
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), Event{Type: TypeCreatorCreated}))
	assert.NoError(t, p.Close())
}
