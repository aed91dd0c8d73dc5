package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := map[string]string{"product_id": "68a1b2c3d4e5f6a7b8c9d0e1"}

	event, err := NewEvent("storefront.product.viewed", "68a1b2c3d4e5f6a7b8c9d0e1", "product", "storefront", payload)
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "storefront.product.viewed", event.EventType)
	assert.Equal(t, "product", event.AggregateType)
	assert.Equal(t, 1, event.Version)
	assert.False(t, event.Timestamp.IsZero())

	var decoded map[string]string
	require.NoError(t, event.UnmarshalData(&decoded))
	assert.Equal(t, payload, decoded)
}

func TestEvent_RoundTrip(t *testing.T) {
	event, err := NewEvent("storefront.search.performed", "q-1", "search", "storefront", map[string]any{"query": "fountain pen"})
	require.NoError(t, err)

	event.WithCorrelationID("corr-7").WithMetadata("channel", "web")

	data, err := event.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(data)
	require.NoError(t, err)
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, "corr-7", decoded.CorrelationID)
	assert.Equal(t, "web", decoded.Metadata["channel"])
}
