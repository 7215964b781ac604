package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// publishTimeout bounds a single publish so a down broker cannot stall the
// order write that triggered it.
const publishTimeout = 2 * time.Second

type KafkaPublisher struct {
	writer  MessageWriter
	now     func() time.Time
	timeout time.Duration
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
		MaxAttempts:  2,
		WriteTimeout: time.Second,
	}
	return newKafkaPublisher(writer)
}

func newKafkaPublisher(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w, now: time.Now, timeout: publishTimeout}
}

// Publish writes event keyed by key. The write runs detached from ctx
// cancellation, so a client hanging up after its order was stored does
// not drop the event, but it never outlives the publish timeout.
func (p *KafkaPublisher) Publish(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  p.now().UTC(),
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// New returns a Kafka publisher when brokers are configured, otherwise a no-op.
func New(brokersCSV, topic string) Publisher {
	brokers := ParseBrokers(brokersCSV)
	if len(brokers) == 0 {
		return NopPublisher{}
	}
	return NewKafkaPublisher(brokers, topic)
}
