package audit_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"privacyguard/internal/audit"
	"privacyguard/internal/audit/store/memory"
	"privacyguard/pkg/requestcontext"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := audit.NewPublisher(store)
	defer pub.Close()

	event := audit.Event{
		SubjectID: "subject-a",
		Action:    string(audit.ActionConsentRecorded),
	}

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	events, err := pub.List(context.Background(), "subject-a")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.ActionConsentRecorded), events[0].Action)
	assert.Equal(t, audit.CategoryCompliance, events[0].Category)
	assert.NotEqual(t, uuid.Nil, events[0].ID)
}

func TestPublisher_AsyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := audit.NewPublisher(store, audit.WithAsyncBuffer(10))
	defer pub.Close()

	event := audit.Event{
		SubjectID: "subject-a",
		Action:    string(audit.ActionRecordProcessed),
	}

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		events, err := pub.List(context.Background(), "subject-a")
		return err == nil && len(events) == 1
	}, time.Second, 10*time.Millisecond, "drain goroutine applies the buffered write")
}

func TestPublisher_CloseFlushesBuffer(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := audit.NewPublisher(store, audit.WithAsyncBuffer(100))

	for range 10 {
		err := pub.Emit(context.Background(), audit.Event{
			SubjectID: "subject-a",
			Action:    string(audit.ActionRecordProcessed),
		})
		require.NoError(t, err)
	}

	pub.Close()

	events, err := store.ListBySubject(context.Background(), "subject-a")
	require.NoError(t, err)
	assert.Len(t, events, 10, "no buffered event may be lost to Close")
}

func TestPublisher_BufferOverflowDoesNotBlock(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := audit.NewPublisher(store, audit.WithAsyncBuffer(1))
	defer pub.Close()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pub.Emit(context.Background(), audit.Event{
				SubjectID: "subject-a",
				Action:    string(audit.ActionRecordProcessed),
			})
		}()
	}
	wg.Wait()

	// Overflow drops, so the count above is indeterminate. The contract under
	// test is that the publisher neither blocked nor stopped accepting.
	require.NoError(t, pub.Emit(context.Background(), audit.Event{
		SubjectID: "subject-b",
		Action:    string(audit.ActionRecordProcessed),
	}))
	assert.Eventually(t, func() bool {
		events, err := store.ListBySubject(context.Background(), "subject-b")
		return err == nil && len(events) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestPublisher_SetsTimestampAndID(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := audit.NewPublisher(store)
	defer pub.Close()

	before := time.Now()
	err := pub.Emit(context.Background(), audit.Event{
		SubjectID: "subject-a",
		Action:    string(audit.ActionConsentRecorded),
	})
	require.NoError(t, err)
	after := time.Now()

	events, err := pub.List(context.Background(), "subject-a")
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.NotEqual(t, uuid.Nil, events[0].ID)
	assert.WithinRange(t, events[0].Timestamp, before, after)
}

func TestPublisher_UsesRequestClock(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := audit.NewPublisher(store)
	defer pub.Close()

	pinned := time.Date(2025, 3, 3, 8, 15, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), pinned)

	require.NoError(t, pub.Emit(ctx, audit.Event{
		SubjectID: "subject-a",
		Action:    string(audit.ActionConsentRecorded),
	}))
	require.NoError(t, pub.Emit(ctx, audit.Event{
		SubjectID: "subject-a",
		Action:    string(audit.ActionRecordProcessed),
	}))

	events, err := pub.List(context.Background(), "subject-a")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, pinned, events[0].Timestamp)
	assert.Equal(t, pinned, events[1].Timestamp, "one request, one instant")
}

func TestPublisher_PreservesExistingTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := audit.NewPublisher(store)
	defer pub.Close()

	stamped := time.Date(2025, 2, 14, 9, 30, 0, 0, time.UTC)
	err := pub.Emit(context.Background(), audit.Event{
		SubjectID: "subject-a",
		Action:    string(audit.ActionConsentRecorded),
		Timestamp: stamped,
	})
	require.NoError(t, err)

	events, err := pub.List(context.Background(), "subject-a")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, stamped, events[0].Timestamp)
}

func TestPublisher_FansOutToSinks(t *testing.T) {
	store := memory.NewInMemoryStore()
	extra := memory.NewInMemoryStore()
	pub := audit.NewPublisher(store, audit.WithSink(extra))
	defer pub.Close()

	err := pub.Emit(context.Background(), audit.Event{
		SubjectID: "subject-a",
		Action:    string(audit.ActionDeletionPlanned),
	})
	require.NoError(t, err)

	primary, err := store.ListBySubject(context.Background(), "subject-a")
	require.NoError(t, err)
	fanned, err := extra.ListBySubject(context.Background(), "subject-a")
	require.NoError(t, err)

	require.Len(t, primary, 1)
	require.Len(t, fanned, 1)
	assert.Equal(t, primary[0].ID, fanned[0].ID)
}

func TestPublisher_MultipleEvents(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := audit.NewPublisher(store)
	defer pub.Close()

	actions := []audit.Action{
		audit.ActionConsentRecorded,
		audit.ActionRecordProcessed,
		audit.ActionDeletionPlanned,
	}
	for _, action := range actions {
		err := pub.Emit(context.Background(), audit.Event{
			SubjectID: "subject-a",
			Action:    string(action),
		})
		require.NoError(t, err)
	}

	result, err := pub.List(context.Background(), "subject-a")
	require.NoError(t, err)
	require.Len(t, result, 3)

	assert.Equal(t, string(audit.ActionConsentRecorded), result[0].Action)
	assert.Equal(t, string(audit.ActionRecordProcessed), result[1].Action)
	assert.Equal(t, string(audit.ActionDeletionPlanned), result[2].Action)
}

func TestPublisher_DifferentSubjects(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := audit.NewPublisher(store)
	defer pub.Close()

	require.NoError(t, pub.Emit(context.Background(), audit.Event{
		SubjectID: "subject-a",
		Action:    string(audit.ActionConsentRecorded),
	}))
	require.NoError(t, pub.Emit(context.Background(), audit.Event{
		SubjectID: "subject-b",
		Action:    string(audit.ActionConsentWithdrawn),
	}))

	eventsA, err := pub.List(context.Background(), "subject-a")
	require.NoError(t, err)
	require.Len(t, eventsA, 1)
	assert.Equal(t, string(audit.ActionConsentRecorded), eventsA[0].Action)

	eventsB, err := pub.List(context.Background(), "subject-b")
	require.NoError(t, err)
	require.Len(t, eventsB, 1)
	assert.Equal(t, string(audit.ActionConsentWithdrawn), eventsB[0].Action)
}

func TestPublisher_ListRecent(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := audit.NewPublisher(store)
	defer pub.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, pub.Emit(context.Background(), audit.Event{
			SubjectID: "subject-a",
			Action:    string(audit.ActionRecordProcessed),
		}))
	}

	recent, err := pub.ListRecent(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
}
