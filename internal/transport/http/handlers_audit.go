package httptransport

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"privacyguard/internal/audit"
	"privacyguard/internal/transport/http/shared"
	dErrors "privacyguard/pkg/domain-errors"
	"privacyguard/pkg/platform/privacy"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// AuditHandler exposes the audit trail for compliance reviews.
type AuditHandler struct {
	logger  *slog.Logger
	auditor Auditor
}

// NewAuditHandler creates the audit query handler.
func NewAuditHandler(auditor Auditor, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{logger: logger, auditor: auditor}
}

// Register registers the audit routes.
func (h *AuditHandler) Register(r chi.Router) {
	r.Get("/audit", h.handleListBySubject)
	r.Get("/audit/recent", h.handleListRecent)
}

type auditListResponse struct {
	Events []audit.Event `json:"events"`
	Count  int           `json:"count"`
}

// handleListBySubject returns the audit trail for one subject. The caller
// passes the raw subject identifier; lookups run against its hash, the only
// form the trail ever stores.
func (h *AuditHandler) handleListBySubject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subject := r.URL.Query().Get("subject")
	if subject == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "subject is required"))
		return
	}

	events, err := h.auditor.List(ctx, privacy.HashSubjectID(subject))
	if err != nil {
		h.logger.ErrorContext(ctx, "audit lookup failed", "error", err.Error())
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to list audit events"))
		return
	}
	if events == nil {
		events = []audit.Event{}
	}

	shared.WriteJSON(w, http.StatusOK, auditListResponse{Events: events, Count: len(events)})
}

func (h *AuditHandler) handleListRecent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = min(parsed, maxAuditLimit)
	}

	events, err := h.auditor.ListRecent(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "audit lookup failed", "error", err.Error())
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to list audit events"))
		return
	}
	if events == nil {
		events = []audit.Event{}
	}

	shared.WriteJSON(w, http.StatusOK, auditListResponse{Events: events, Count: len(events)})
}
