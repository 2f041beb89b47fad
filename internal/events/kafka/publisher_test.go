package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/supermarket/internal/domain/models"
)

func TestNewMessage(t *testing.T) {
	event := models.BillCommitted{
		SequenceID:    12,
		TransactionID: "tx-12",
		Lines:         2,
		Units:         5,
		Total:         decimal.RequireFromString("38.50"),
		OccurredAt:    time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC),
	}

	msg, err := newMessage(event)
	require.NoError(t, err)

	assert.Equal(t, "tx-12", string(msg.Key))
	assert.True(t, msg.Time.Equal(event.OccurredAt))
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "12", string(msg.Headers[1].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "38.5", decoded["total"])
	assert.Equal(t, float64(5), decoded["units"])
}

func TestNewPublisher_DefaultTopic(t *testing.T) {
	p := NewPublisher([]string{"localhost:9092"}, "", nil)
	assert.Equal(t, DefaultTopic, p.writer.Topic)
}
