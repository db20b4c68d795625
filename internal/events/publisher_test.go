package events

import (
	"context"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
)

func TestNopPublisher(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), SubjectSessionLogin, map[string]string{"id": "1"}))
}

func TestHeaderCarrier(t *testing.T) {
	h := nats.Header{}
	c := HeaderCarrier(h)
	c.Set("traceparent", "00-abc-def-01")
	assert.Equal(t, "00-abc-def-01", c.Get("traceparent"))
	assert.Equal(t, []string{"Traceparent"}, c.Keys())
}

func TestTableCarrier(t *testing.T) {
	c := TableCarrier{}
	c.Set("traceparent", "00-abc-def-01")
	assert.Equal(t, "00-abc-def-01", c.Get("traceparent"))
	assert.Equal(t, "", c.Get("missing"))
	assert.Equal(t, []string{"traceparent"}, c.Keys())
}
