package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"privacyguard/internal/audit"
	"privacyguard/internal/platform/kafka/consumer"
)

// EventStore defines the storage interface for materialized events.
type EventStore interface {
	AppendWithID(ctx context.Context, eventID uuid.UUID, event audit.Event) error
}

// eventPayload matches the JSON structure the Kafka sink publishes.
type eventPayload struct {
	ID        string `json:"ID"`
	Category  string `json:"Category"`
	Timestamp string `json:"Timestamp"`
	SubjectID string `json:"SubjectID"`
	Action    string `json:"Action"`
	Law       string `json:"Law"`
	Field     string `json:"Field"`
	Decision  string `json:"Decision"`
	Reason    string `json:"Reason"`
	RequestID string `json:"RequestID"`
	IP        string `json:"IP"`
}

func decodeEvent(msg *consumer.Message) (uuid.UUID, audit.Event, error) {
	eventID, err := uuid.Parse(string(msg.Key))
	if err != nil {
		return uuid.Nil, audit.Event{}, fmt.Errorf("parse event ID: %w", err)
	}

	var payload eventPayload
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		return eventID, audit.Event{}, fmt.Errorf("unmarshal payload: %w", err)
	}

	event := audit.Event{
		ID:        eventID,
		Category:  audit.EventCategory(payload.Category),
		SubjectID: payload.SubjectID,
		Action:    payload.Action,
		Law:       payload.Law,
		Field:     payload.Field,
		Decision:  payload.Decision,
		Reason:    payload.Reason,
		RequestID: payload.RequestID,
		IP:        payload.IP,
	}

	event.Timestamp = time.Now()
	if payload.Timestamp != "" {
		if ts, err := time.Parse(time.RFC3339Nano, payload.Timestamp); err == nil {
			event.Timestamp = ts
		}
	}

	return eventID, event, nil
}

// ComplianceHandler materializes compliance and security audit events.
// These have regulatory significance, so decode failures are logged loudly
// and a store failure blocks the commit for redelivery.
type ComplianceHandler struct {
	store  EventStore
	logger *slog.Logger
}

func NewComplianceHandler(store EventStore, logger *slog.Logger) *ComplianceHandler {
	return &ComplianceHandler{store: store, logger: logger}
}

func (h *ComplianceHandler) Handle(ctx context.Context, msg *consumer.Message) error {
	eventID, event, err := decodeEvent(msg)
	if err != nil {
		h.logger.Error("CRITICAL: undecodable compliance event",
			"topic", msg.Topic,
			"key", string(msg.Key),
			"error", err,
		)
		// Commit anyway; redelivery cannot fix a malformed payload.
		return nil
	}

	if event.SubjectID == "" {
		h.logger.Error("CRITICAL: compliance event missing subject",
			"event_id", eventID,
			"action", event.Action,
		)
		return nil
	}

	if err := h.store.AppendWithID(ctx, eventID, event); err != nil {
		h.logger.Error("failed to store compliance event",
			"event_id", eventID,
			"action", event.Action,
			"error", err,
		)
		return fmt.Errorf("store compliance event: %w", err)
	}

	h.logger.Debug("stored compliance event",
		"event_id", eventID,
		"action", event.Action,
	)
	return nil
}

// OpsHandler materializes operational audit events. These are best effort;
// every failure is logged and committed so the stream keeps moving.
type OpsHandler struct {
	store  EventStore
	logger *slog.Logger
}

func NewOpsHandler(store EventStore, logger *slog.Logger) *OpsHandler {
	return &OpsHandler{store: store, logger: logger}
}

func (h *OpsHandler) Handle(ctx context.Context, msg *consumer.Message) error {
	eventID, event, err := decodeEvent(msg)
	if err != nil {
		h.logger.Debug("undecodable ops event",
			"topic", msg.Topic,
			"key", string(msg.Key),
			"error", err,
		)
		return nil
	}

	if err := h.store.AppendWithID(ctx, eventID, event); err != nil {
		h.logger.Debug("failed to store ops event",
			"event_id", eventID,
			"action", event.Action,
			"error", err,
		)
		return nil
	}

	return nil
}
