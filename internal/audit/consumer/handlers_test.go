package consumer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"privacyguard/internal/audit"
	"privacyguard/internal/platform/kafka/consumer"
)

type recordingStore struct {
	events map[uuid.UUID]audit.Event
	err    error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{events: make(map[uuid.UUID]audit.Event)}
}

func (s *recordingStore) AppendWithID(_ context.Context, eventID uuid.UUID, event audit.Event) error {
	if s.err != nil {
		return s.err
	}
	s.events[eventID] = event
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func complianceMessage(t *testing.T, eventID uuid.UUID) *consumer.Message {
	t.Helper()
	return &consumer.Message{
		Topic: "privacyguard.audit.compliance",
		Key:   []byte(eventID.String()),
		Value: []byte(`{
			"ID": "` + eventID.String() + `",
			"Category": "compliance",
			"Timestamp": "2026-02-01T09:30:00Z",
			"SubjectID": "deadbeef",
			"Action": "consent_recorded",
			"Law": "GDPR"
		}`),
	}
}

func TestComplianceHandler_StoresEvent(t *testing.T) {
	store := newRecordingStore()
	h := NewComplianceHandler(store, discardLogger())

	eventID := uuid.New()
	err := h.Handle(context.Background(), complianceMessage(t, eventID))
	require.NoError(t, err)

	stored, ok := store.events[eventID]
	require.True(t, ok)
	assert.Equal(t, "consent_recorded", stored.Action)
	assert.Equal(t, "GDPR", stored.Law)
	assert.Equal(t, audit.CategoryCompliance, stored.Category)
	assert.Equal(t, 2026, stored.Timestamp.Year())
}

func TestComplianceHandler_MalformedKeyCommits(t *testing.T) {
	store := newRecordingStore()
	h := NewComplianceHandler(store, discardLogger())

	err := h.Handle(context.Background(), &consumer.Message{
		Topic: "privacyguard.audit.compliance",
		Key:   []byte("not-a-uuid"),
		Value: []byte(`{}`),
	})
	assert.NoError(t, err, "malformed messages must not block the partition")
	assert.Empty(t, store.events)
}

func TestComplianceHandler_MalformedPayloadCommits(t *testing.T) {
	store := newRecordingStore()
	h := NewComplianceHandler(store, discardLogger())

	err := h.Handle(context.Background(), &consumer.Message{
		Topic: "privacyguard.audit.compliance",
		Key:   []byte(uuid.NewString()),
		Value: []byte(`{"broken`),
	})
	assert.NoError(t, err)
	assert.Empty(t, store.events)
}

func TestComplianceHandler_MissingSubjectCommits(t *testing.T) {
	store := newRecordingStore()
	h := NewComplianceHandler(store, discardLogger())

	eventID := uuid.New()
	err := h.Handle(context.Background(), &consumer.Message{
		Topic: "privacyguard.audit.compliance",
		Key:   []byte(eventID.String()),
		Value: []byte(`{"Action": "consent_recorded"}`),
	})
	assert.NoError(t, err)
	assert.Empty(t, store.events)
}

func TestComplianceHandler_StoreFailureBlocksCommit(t *testing.T) {
	store := newRecordingStore()
	store.err = errors.New("db down")
	h := NewComplianceHandler(store, discardLogger())

	err := h.Handle(context.Background(), complianceMessage(t, uuid.New()))
	require.Error(t, err)
	assert.ErrorContains(t, err, "db down")
}

func TestOpsHandler_BestEffort(t *testing.T) {
	t.Run("stores valid events", func(t *testing.T) {
		store := newRecordingStore()
		h := NewOpsHandler(store, discardLogger())

		eventID := uuid.New()
		err := h.Handle(context.Background(), &consumer.Message{
			Topic: "privacyguard.audit.operations",
			Key:   []byte(eventID.String()),
			Value: []byte(`{"Action": "record_processed", "Category": "operations"}`),
		})
		require.NoError(t, err)
		assert.Len(t, store.events, 1)
	})

	t.Run("store failure still commits", func(t *testing.T) {
		store := newRecordingStore()
		store.err = errors.New("db down")
		h := NewOpsHandler(store, discardLogger())

		eventID := uuid.New()
		err := h.Handle(context.Background(), &consumer.Message{
			Topic: "privacyguard.audit.operations",
			Key:   []byte(eventID.String()),
			Value: []byte(`{"Action": "record_processed"}`),
		})
		assert.NoError(t, err)
	})
}

func TestRouter_DispatchesByTopic(t *testing.T) {
	compliance := newRecordingStore()
	ops := newRecordingStore()

	router := NewRouter(discardLogger(), NewOpsHandler(ops, discardLogger()))
	router.Register("privacyguard.audit.compliance", NewComplianceHandler(compliance, discardLogger()))

	eventID := uuid.New()
	require.NoError(t, router.Handle(context.Background(), complianceMessage(t, eventID)))
	assert.Len(t, compliance.events, 1)
	assert.Empty(t, ops.events)

	opsID := uuid.New()
	require.NoError(t, router.Handle(context.Background(), &consumer.Message{
		Topic: "privacyguard.audit.operations",
		Key:   []byte(opsID.String()),
		Value: []byte(`{"Action": "record_processed"}`),
	}))
	assert.Len(t, ops.events, 1, "unregistered topics fall back")
}

func TestRouter_NoFallbackCommitsUnknownTopic(t *testing.T) {
	router := NewRouter(discardLogger(), nil)

	err := router.Handle(context.Background(), &consumer.Message{
		Topic: "unrelated.topic",
		Key:   []byte("k"),
	})
	assert.NoError(t, err)
}
