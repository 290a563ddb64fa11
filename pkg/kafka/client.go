// Package kafka wraps franz-go for producing service events.
package kafka

import (
	"context"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Producer defines the Kafka operations used by the service.
type Producer interface {
	// Produce sends a message synchronously and returns the first error.
	Produce(ctx context.Context, topic string, value []byte) error
	// ProduceAsync fires a message without waiting for the broker ack.
	ProduceAsync(ctx context.Context, topic string, value []byte)
	Close() error
	// GetClient returns the underlying franz-go client.
	GetClient() *kgo.Client
}

// Client wraps a franz-go client.
type Client struct {
	client *kgo.Client
}

// New creates a Kafka producer with the provided options.
func New(opts ...kgo.Opt) (Producer, error) {
	kafkaClient, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, err
	}
	return &Client{client: kafkaClient}, nil
}

// Produce sends a message to a topic and waits for the result.
func (k *Client) Produce(ctx context.Context, topic string, value []byte) error {
	record := &kgo.Record{Topic: topic, Value: value}
	return k.client.ProduceSync(ctx, record).FirstErr()
}

// ProduceAsync sends a message to a topic without blocking; delivery errors
// are dropped, so only use it for events the caller can afford to lose.
func (k *Client) ProduceAsync(ctx context.Context, topic string, value []byte) {
	record := &kgo.Record{Topic: topic, Value: value}
	k.client.Produce(ctx, record, nil)
}

// Close closes the Kafka client.
func (k *Client) Close() error {
	if k.client != nil {
		k.client.Close()
	}
	return nil
}

// GetClient returns the underlying Kafka client for advanced operations.
func (k *Client) GetClient() *kgo.Client {
	return k.client
}
