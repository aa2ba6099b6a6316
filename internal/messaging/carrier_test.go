package messaging

import (
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestMessageCarrier(t *testing.T) {
	msg := &kafka.Message{}
	carrier := NewMessageCarrier(msg)

	assert.Empty(t, carrier.Get("traceparent"))
	assert.Empty(t, carrier.Keys())

	carrier.Set("traceparent", "00-abc-def-01")
	carrier.Set("baggage", "tenant=shop")
	assert.Equal(t, "00-abc-def-01", carrier.Get("traceparent"))
	assert.Equal(t, []string{"traceparent", "baggage"}, carrier.Keys())

	// setting an existing key overwrites instead of appending
	carrier.Set("traceparent", "00-abc-def-02")
	assert.Equal(t, "00-abc-def-02", carrier.Get("traceparent"))
	assert.Len(t, msg.Headers, 2)
}
