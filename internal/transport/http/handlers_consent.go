package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"privacyguard/internal/audit"
	"privacyguard/internal/consent"
	"privacyguard/internal/storage"
	"privacyguard/internal/transport/http/shared"
	"privacyguard/pkg/domain"
	dErrors "privacyguard/pkg/domain-errors"
	"privacyguard/pkg/platform/privacy"
	"privacyguard/pkg/platform/sentinel"
	"privacyguard/pkg/record"
	"privacyguard/pkg/requestcontext"
)

// ConsentHandler serves the consent ledger endpoints. Grants and withdrawals
// operate on caller-supplied records; the audit view reads a stored record.
type ConsentHandler struct {
	logger  *slog.Logger
	records storage.RecordStore
	auditor Auditor
}

// NewConsentHandler creates the consent handler.
func NewConsentHandler(records storage.RecordStore, auditor Auditor, logger *slog.Logger) *ConsentHandler {
	return &ConsentHandler{
		logger:  logger,
		records: records,
		auditor: auditor,
	}
}

// Register registers the consent routes.
func (h *ConsentHandler) Register(r chi.Router) {
	r.Post("/consent", h.handleRecordConsent)
	r.Post("/consent/withdraw", h.handleWithdrawConsent)
	r.Get("/consent/audit", h.handleConsentAudit)
}

type recordConsentRequest struct {
	Record      *record.Record           `json:"record"`
	Purpose     string                   `json:"purpose,omitempty"`
	Preferences map[string]bool          `json:"preferences,omitempty"`
	Context     domain.ProcessingContext `json:"context"`
}

type recordConsentResponse struct {
	Record  *record.Record         `json:"record"`
	Consent *consent.ConsentRecord `json:"consent"`
}

func (h *ConsentHandler) handleRecordConsent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req recordConsentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid consent request",
			"request_id", requestID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Record == nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "record is required"))
		return
	}

	prefs := make(map[domain.ConsentType]bool, len(req.Preferences))
	for k, v := range req.Preferences {
		prefs[domain.ConsentType(k)] = v
	}

	pctx := withClientEvidence(ctx, req.Context)

	current, err := consent.RecordConsent(req.Record, consent.Options{
		Purpose:     req.Purpose,
		Preferences: prefs,
	}, pctx)
	if err != nil {
		h.logger.WarnContext(ctx, "consent grant rejected",
			"request_id", requestID,
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}

	subjectHash := privacy.HashSubjectID(subjectOf(req.Record, requestcontext.Subject(ctx)))
	event := newEvent(ctx, audit.ActionConsentRecorded, subjectHash)
	event.Decision = "granted"
	event.Reason = current.Purpose
	emitEvent(ctx, h.logger, h.auditor, event)

	shared.WriteJSON(w, http.StatusOK, recordConsentResponse{
		Record:  req.Record,
		Consent: current,
	})
}

type withdrawConsentRequest struct {
	Record  *record.Record           `json:"record"`
	Scope   string                   `json:"scope"`
	Context domain.ProcessingContext `json:"context"`
}

type withdrawConsentResponse struct {
	Record     *record.Record           `json:"record"`
	Withdrawal *consent.WithdrawalEntry `json:"withdrawal"`
}

func (h *ConsentHandler) handleWithdrawConsent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req withdrawConsentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid withdrawal request",
			"request_id", requestID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Record == nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "record is required"))
		return
	}

	scope, err := domain.ParseConsentType(req.Scope)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	entry, err := consent.WithdrawConsent(req.Record, scope, withClientEvidence(ctx, req.Context))
	if err != nil {
		h.logger.WarnContext(ctx, "consent withdrawal rejected",
			"request_id", requestID,
			"scope", string(scope),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}

	subjectHash := privacy.HashSubjectID(subjectOf(req.Record, requestcontext.Subject(ctx)))
	event := newEvent(ctx, audit.ActionConsentWithdrawn, subjectHash)
	event.Decision = "withdrawn"
	event.Reason = string(scope)
	emitEvent(ctx, h.logger, h.auditor, event)

	shared.WriteJSON(w, http.StatusOK, withdrawConsentResponse{
		Record:     req.Record,
		Withdrawal: entry,
	})
}

func (h *ConsentHandler) handleConsentAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	recordID, err := uuid.Parse(r.URL.Query().Get("recordId"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "recordId must be a UUID"))
		return
	}

	stored, err := h.records.FindByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "record not found"))
			return
		}
		h.logger.ErrorContext(ctx, "failed to load record for consent audit",
			"request_id", requestcontext.RequestID(ctx),
			"record_id", recordID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to load record"))
		return
	}

	trail, err := consent.AuditTrail(stored.Data)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	emitEvent(ctx, h.logger, h.auditor, newEvent(ctx, audit.ActionConsentChecked, stored.SubjectID))

	shared.WriteJSON(w, http.StatusOK, trail)
}

// withClientEvidence backfills consent evidence fields from the request
// context when the caller did not supply them.
func withClientEvidence(ctx context.Context, pctx domain.ProcessingContext) domain.ProcessingContext {
	if pctx.IPAddress == "" {
		pctx.IPAddress = requestcontext.ClientIP(ctx)
	}
	if pctx.UserAgent == "" {
		pctx.UserAgent = requestcontext.UserAgent(ctx)
	}
	return pctx
}
