package events

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes roster-change events to a single topic, creating the
// writer lazily on first publish.
type KafkaPublisher struct {
	brokers []string
	topic   string

	mu     sync.Mutex
	writer *kafka.Writer
}

// NewKafkaPublisher creates a KafkaPublisher.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{brokers: brokers, topic: topic}
}

// PublishRosterChanged encodes the event as JSON, keyed by activity name so
// changes to the same roster land on one partition in order.
func (p *KafkaPublisher) PublishRosterChanged(ctx context.Context, event RosterChanged) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.lazyWriter().WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Activity),
		Value: body,
	})
}

func (p *KafkaPublisher) lazyWriter() *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writer == nil {
		p.writer = &kafka.Writer{
			Addr:         kafka.TCP(p.brokers...),
			Topic:        p.topic,
			RequiredAcks: kafka.RequireAll,
			Compression:  kafka.Snappy,
			Async:        false,
		}
	}
	return p.writer
}

// Close releases the writer if one was created.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writer == nil {
		return nil
	}
	err := p.writer.Close()
	p.writer = nil
	return err
}
