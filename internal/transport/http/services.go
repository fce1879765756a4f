package httptransport

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"privacyguard/internal/audit"
	"privacyguard/internal/classify"
	"privacyguard/internal/engine"
	"privacyguard/internal/obligation"
	"privacyguard/internal/platform/middleware"
	"privacyguard/pkg/domain"
	"privacyguard/pkg/platform/privacy"
	"privacyguard/pkg/record"
	"privacyguard/pkg/requestcontext"
)

//go:generate mockgen -source=services.go -destination=mocks/service-mocks.go -package=mocks

// EngineService is the slice of the processing engine the transport layer
// depends on.
type EngineService interface {
	Process(ctx context.Context, rec *record.Record, pctx domain.ProcessingContext) (*engine.ProcessingResult, error)
	ClassifyRecord(ctx context.Context, rec *record.Record) ([]classify.Classification, error)
	HandleDeletion(ctx context.Context, userID string, law domain.LawCode) (obligation.DeletionPlan, error)
}

// Auditor publishes and queries audit events. Satisfied by *audit.Publisher.
type Auditor interface {
	Emit(ctx context.Context, event audit.Event) error
	List(ctx context.Context, subjectID string) ([]audit.Event, error)
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
}

// RetentionCache tracks deletion metadata per stored record. Satisfied by
// *retention.Cache; nil when Redis is not configured.
type RetentionCache interface {
	Remember(ctx context.Context, recordID uuid.UUID, meta obligation.DeletionMetadata) error
	Forget(ctx context.Context, recordIDs ...uuid.UUID) error
}

// subjectOf picks the identifier a record belongs to: an explicit userId
// field wins, then email, then the authenticated caller. The raw value never
// leaves the handler; only its hash is stored or audited.
func subjectOf(rec *record.Record, fallback string) string {
	for _, key := range []string{"userId", "email"} {
		if v, ok := rec.Get(key); ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return fallback
}

// newEvent seeds an audit event with the request-scoped evidence every
// handler attaches: hashed subject, request ID, and anonymized client IP.
func newEvent(ctx context.Context, action audit.Action, subjectHash string) audit.Event {
	return audit.Event{
		SubjectID: subjectHash,
		Action:    string(action),
		RequestID: middleware.GetRequestID(ctx),
		IP:        privacy.AnonymizeIP(requestcontext.ClientIP(ctx)),
	}
}

// emitEvent publishes best-effort: a failed audit write is logged, never
// surfaced to the caller.
func emitEvent(ctx context.Context, logger *slog.Logger, auditor Auditor, event audit.Event) {
	if err := auditor.Emit(ctx, event); err != nil {
		logger.WarnContext(ctx, "audit emission failed",
			"action", event.Action,
			"error", err,
		)
	}
}
