package messaging

import (
	"context"
)

// Broker publishes messages to a channel. Consumers live outside this
// service; the engine only produces.
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Close() error
}

// Message is the envelope published on a channel.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
