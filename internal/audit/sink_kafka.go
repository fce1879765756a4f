package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// recordProducer is the slice of the Kafka producer the sink needs.
type recordProducer interface {
	Produce(ctx context.Context, topic string, key, value []byte) error
}

// KafkaSink publishes audit events to category topics so downstream
// processors (SIEM, long-retention archival) can consume them. The event ID
// is the record key, which lets consumers deduplicate.
type KafkaSink struct {
	producer recordProducer
	prefix   string
	logger   *slog.Logger
}

func NewKafkaSink(producer recordProducer, prefix string, logger *slog.Logger) *KafkaSink {
	return &KafkaSink{producer: producer, prefix: prefix, logger: logger}
}

// wirePayload is the JSON structure published to Kafka. Field names match
// audit.Event so the consumer deserializes symmetrically.
type wirePayload struct {
	ID        string `json:"ID"`
	Category  string `json:"Category"`
	Timestamp string `json:"Timestamp"`
	SubjectID string `json:"SubjectID,omitempty"`
	Action    string `json:"Action"`
	Law       string `json:"Law,omitempty"`
	Field     string `json:"Field,omitempty"`
	Decision  string `json:"Decision,omitempty"`
	Reason    string `json:"Reason,omitempty"`
	RequestID string `json:"RequestID,omitempty"`
	IP        string `json:"IP,omitempty"`
}

func (s *KafkaSink) Append(ctx context.Context, event Event) error {
	payload := wirePayload{
		ID:        event.ID.String(),
		Category:  string(event.Category),
		Timestamp: event.Timestamp.Format(time.RFC3339Nano),
		SubjectID: event.SubjectID,
		Action:    event.Action,
		Law:       event.Law,
		Field:     event.Field,
		Decision:  event.Decision,
		Reason:    event.Reason,
		RequestID: event.RequestID,
		IP:        event.IP,
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	topic := TopicFor(s.prefix, event.Category)
	if err := s.producer.Produce(ctx, topic, []byte(event.ID.String()), value); err != nil {
		if s.logger != nil {
			s.logger.Error("publish audit event failed",
				"topic", topic,
				"action", event.Action,
				"error", err,
			)
		}
		return err
	}
	return nil
}
