package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"privacyguard/pkg/domain"
	"privacyguard/pkg/record"
)

// StoredRecord is a processed record at rest: the protected data plus the
// retention facts needed to honor deletion obligations later. SubjectID is
// always the hashed subject identifier.
type StoredRecord struct {
	ID            uuid.UUID
	SubjectID     string
	Data          *record.Record
	Laws          []domain.LawCode
	RetentionDays uint32
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Stores are interface-driven to keep the engine and transport testable and
// to allow swapping in-memory and Postgres persistence without rewiring
// business code.
type RecordStore interface {
	// Save upserts by record ID.
	Save(ctx context.Context, rec StoredRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (StoredRecord, error)
	FindBySubject(ctx context.Context, subjectID string) ([]StoredRecord, error)
	// DeleteBySubject removes every record held for a subject and reports
	// how many were dropped. Deletion plans execute through this.
	DeleteBySubject(ctx context.Context, subjectID string) (int64, error)
	// DeleteExpired drops records whose retention window ended before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
