package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"privacyguard/internal/storage"
	"privacyguard/pkg/domain"
	"privacyguard/pkg/platform/sentinel"
	"privacyguard/pkg/record"
)

// RecordStore implements storage.RecordStore on PostgreSQL. The protected
// record is held as JSONB; laws as a text array.
type RecordStore struct{ db *DB }

func NewRecordStore(db *DB) *RecordStore { return &RecordStore{db: db} }

// Save upserts the record by ID, preserving created_at on conflict.
func (s *RecordStore) Save(ctx context.Context, rec storage.StoredRecord) error {
	data, err := json.Marshal(rec.Data)
	if err != nil {
		return fmt.Errorf("marshal record data: %w", err)
	}

	laws := make([]string, len(rec.Laws))
	for i, law := range rec.Laws {
		laws[i] = string(law)
	}

	const q = `
		INSERT INTO processed_records (id, subject_id, data, laws, retention_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			subject_id = EXCLUDED.subject_id,
			data = EXCLUDED.data,
			laws = EXCLUDED.laws,
			retention_days = EXCLUDED.retention_days,
			updated_at = now()
	`
	if _, err := s.db.Pool.Exec(ctx, q, rec.ID, rec.SubjectID, data, laws, rec.RetentionDays); err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

func (s *RecordStore) FindByID(ctx context.Context, id uuid.UUID) (storage.StoredRecord, error) {
	const q = `
		SELECT id, subject_id, data, laws, retention_days, created_at, updated_at
		FROM processed_records
		WHERE id = $1
	`
	rec, err := scanRecord(s.db.Pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.StoredRecord{}, fmt.Errorf("record %s: %w", id, sentinel.ErrNotFound)
		}
		return storage.StoredRecord{}, err
	}
	return rec, nil
}

func (s *RecordStore) FindBySubject(ctx context.Context, subjectID string) ([]storage.StoredRecord, error) {
	const q = `
		SELECT id, subject_id, data, laws, retention_days, created_at, updated_at
		FROM processed_records
		WHERE subject_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.Pool.Query(ctx, q, subjectID)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []storage.StoredRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *RecordStore) DeleteBySubject(ctx context.Context, subjectID string) (int64, error) {
	const q = `DELETE FROM processed_records WHERE subject_id = $1`
	tag, err := s.db.Pool.Exec(ctx, q, subjectID)
	if err != nil {
		return 0, fmt.Errorf("delete records: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *RecordStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const q = `
		DELETE FROM processed_records
		WHERE retention_days > 0
		  AND created_at + retention_days * interval '1 day' < $1
	`
	tag, err := s.db.Pool.Exec(ctx, q, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired records: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanRecord(row pgx.Row) (storage.StoredRecord, error) {
	var (
		rec  storage.StoredRecord
		data []byte
		laws []string
	)
	err := row.Scan(&rec.ID, &rec.SubjectID, &data, &laws, &rec.RetentionDays, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return storage.StoredRecord{}, err
	}

	var r record.Record
	if err := json.Unmarshal(data, &r); err != nil {
		return storage.StoredRecord{}, fmt.Errorf("unmarshal record data: %w", err)
	}
	rec.Data = &r

	rec.Laws = make([]domain.LawCode, len(laws))
	for i, law := range laws {
		rec.Laws[i] = domain.LawCode(law)
	}
	return rec, nil
}
