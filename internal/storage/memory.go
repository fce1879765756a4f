package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"privacyguard/pkg/domain"
	"privacyguard/pkg/platform/sentinel"
)

// InMemoryRecordStore keeps the initial implementation lightweight and
// testable. It intentionally favors clarity over performance.
type InMemoryRecordStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]StoredRecord
}

func NewInMemoryRecordStore() *InMemoryRecordStore {
	return &InMemoryRecordStore{records: make(map[uuid.UUID]StoredRecord)}
}

func (s *InMemoryRecordStore) Save(_ context.Context, rec StoredRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if existing, ok := s.records[rec.ID]; ok {
		rec.CreatedAt = existing.CreatedAt
	} else if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	s.records[rec.ID] = cloneStored(rec)
	return nil
}

func (s *InMemoryRecordStore) FindByID(_ context.Context, id uuid.UUID) (StoredRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return StoredRecord{}, fmt.Errorf("record %s: %w", id, sentinel.ErrNotFound)
	}
	return cloneStored(rec), nil
}

func (s *InMemoryRecordStore) FindBySubject(_ context.Context, subjectID string) ([]StoredRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []StoredRecord
	for _, rec := range s.records {
		if rec.SubjectID == subjectID {
			out = append(out, cloneStored(rec))
		}
	}
	return out, nil
}

func (s *InMemoryRecordStore) DeleteBySubject(_ context.Context, subjectID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var dropped int64
	for id, rec := range s.records {
		if rec.SubjectID == subjectID {
			delete(s.records, id)
			dropped++
		}
	}
	return dropped, nil
}

func (s *InMemoryRecordStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var dropped int64
	for id, rec := range s.records {
		if rec.RetentionDays == 0 {
			continue
		}
		expiry := rec.CreatedAt.AddDate(0, 0, int(rec.RetentionDays))
		if expiry.Before(now) {
			delete(s.records, id)
			dropped++
		}
	}
	return dropped, nil
}

// cloneStored copies the record data so callers can never mutate the stored
// state through a returned pointer.
func cloneStored(rec StoredRecord) StoredRecord {
	out := rec
	if rec.Data != nil {
		out.Data = rec.Data.Clone()
	}
	out.Laws = append([]domain.LawCode(nil), rec.Laws...)
	return out
}
