package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaSink publishes audit events to a Kafka topic, keyed by registration
// so a single registration's trail stays ordered within a partition.
type KafkaSink struct {
	client *kgo.Client
	topic  string
}

// NewKafkaSink connects to the given seed brokers and ensures the topic
// exists before the first publish.
func NewKafkaSink(ctx context.Context, seeds []string, topic string) (*KafkaSink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(seeds...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	if err := ensureTopic(ctx, client, topic); err != nil {
		client.Close()
		return nil, err
	}
	return &KafkaSink{client: client, topic: topic}, nil
}

func ensureTopic(ctx context.Context, client *kgo.Client, topic string) error {
	adm := kadm.NewClient(client)
	topics, err := adm.ListTopics(ctx, topic)
	if err != nil {
		return fmt.Errorf("list topics: %w", err)
	}
	if topics.Has(topic) {
		return nil
	}
	if _, err := adm.CreateTopic(ctx, 1, 1, nil, topic); err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	return nil
}

type kafkaPayload struct {
	ID             string `json:"id"`
	Timestamp      string `json:"timestamp"`
	RegistrationID string `json:"registration_id"`
	Phone          string `json:"phone"`
	Action         string `json:"action"`
	FromStatus     string `json:"from_status,omitempty"`
	ToStatus       string `json:"to_status,omitempty"`
	Reason         string `json:"reason,omitempty"`
}

func (s *KafkaSink) Publish(ctx context.Context, event Event) error {
	payload := kafkaPayload{
		ID:             event.ID,
		Timestamp:      event.Timestamp.UTC().Format(time.RFC3339Nano),
		RegistrationID: event.RegistrationID,
		Phone:          event.Phone,
		Action:         event.Action,
		FromStatus:     event.FromStatus,
		ToStatus:       event.ToStatus,
		Reason:         event.Reason,
	}
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.RegistrationID),
		Value: value,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

func (s *KafkaSink) Close() { s.client.Close() }
