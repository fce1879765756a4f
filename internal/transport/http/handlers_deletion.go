package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"privacyguard/internal/audit"
	"privacyguard/internal/obligation"
	"privacyguard/internal/storage"
	"privacyguard/internal/transport/http/shared"
	"privacyguard/pkg/domain"
	dErrors "privacyguard/pkg/domain-errors"
	"privacyguard/pkg/platform/privacy"
	"privacyguard/pkg/requestcontext"
)

// DeletionHandler serves subject deletion requests: it produces the
// regime-specific deletion plan and purges the subject's stored records.
type DeletionHandler struct {
	logger    *slog.Logger
	engine    EngineService
	records   storage.RecordStore
	retention RetentionCache
	auditor   Auditor
}

// NewDeletionHandler creates the deletion handler. retention may be nil when
// Redis is not configured.
func NewDeletionHandler(
	engine EngineService,
	records storage.RecordStore,
	retention RetentionCache,
	auditor Auditor,
	logger *slog.Logger) *DeletionHandler {
	return &DeletionHandler{
		logger:    logger,
		engine:    engine,
		records:   records,
		retention: retention,
		auditor:   auditor,
	}
}

// Register registers the deletion route.
func (h *DeletionHandler) Register(r chi.Router) {
	r.Post("/deletion/{userID}", h.handleDeletion)
}

type deletionRequest struct {
	Law string `json:"law"`
}

type deletionResponse struct {
	Plan           obligation.DeletionPlan `json:"plan"`
	RecordsDeleted int64                   `json:"recordsDeleted"`
}

func (h *DeletionHandler) handleDeletion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	userID := chi.URLParam(r, "userID")

	var req deletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid deletion request",
			"request_id", requestID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	law, err := domain.ParseLawCode(req.Law)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	plan, err := h.engine.HandleDeletion(ctx, userID, law)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	subjectHash := privacy.HashSubjectID(userID)

	// Collect the record IDs first so the retention cache can be cleared
	// after the rows are gone.
	stored, err := h.records.FindBySubject(ctx, subjectHash)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to look up subject records",
			"request_id", requestID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to execute deletion"))
		return
	}

	deleted, err := h.records.DeleteBySubject(ctx, subjectHash)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete subject records",
			"request_id", requestID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to execute deletion"))
		return
	}

	if h.retention != nil && len(stored) > 0 {
		ids := make([]uuid.UUID, len(stored))
		for i, rec := range stored {
			ids[i] = rec.ID
		}
		if err := h.retention.Forget(ctx, ids...); err != nil {
			h.logger.WarnContext(ctx, "retention cache cleanup failed",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
	}

	event := newEvent(ctx, audit.ActionDeletionPlanned, subjectHash)
	event.Law = law.String()
	event.Decision = "deletion_executed"
	emitEvent(ctx, h.logger, h.auditor, event)

	h.logger.InfoContext(ctx, "deletion request executed",
		"request_id", requestID,
		"law", law.String(),
		"records_deleted", deleted,
	)

	shared.WriteJSON(w, http.StatusOK, deletionResponse{
		Plan:           plan,
		RecordsDeleted: deleted,
	})
}
