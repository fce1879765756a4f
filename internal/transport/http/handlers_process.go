package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"privacyguard/internal/audit"
	"privacyguard/internal/classify"
	"privacyguard/internal/consent"
	"privacyguard/internal/engine"
	"privacyguard/internal/obligation"
	"privacyguard/internal/storage"
	"privacyguard/internal/transport/http/shared"
	"privacyguard/pkg/domain"
	dErrors "privacyguard/pkg/domain-errors"
	"privacyguard/pkg/platform/privacy"
	"privacyguard/pkg/record"
	"privacyguard/pkg/requestcontext"
)

// complianceAudit maps engine action tags to the audit events with legal
// significance. Deletion metadata attachment is deliberately absent: it is
// evidence inside the record, not a deletion request.
var complianceAudit = map[domain.ActionTag]struct {
	action audit.Action
	law    domain.LawCode
}{
	domain.ActionGDPRConsentRecorded:         {audit.ActionConsentRecorded, domain.LawGDPR},
	domain.ActionGDPRDataMinimizationApplied: {audit.ActionDataMinimized, domain.LawGDPR},
	domain.ActionCCPARightsMetadataAdded:     {audit.ActionRightsAttached, domain.LawCCPA},
}

// ProcessHandler serves the record processing and classification endpoints.
type ProcessHandler struct {
	logger        *slog.Logger
	engine        EngineService
	records       storage.RecordStore
	retention     RetentionCache
	auditor       Auditor
	strictConsent bool
}

// NewProcessHandler creates the processing handler. retention may be nil when
// Redis is not configured.
func NewProcessHandler(
	engine EngineService,
	records storage.RecordStore,
	retention RetentionCache,
	auditor Auditor,
	strictConsent bool,
	logger *slog.Logger) *ProcessHandler {
	return &ProcessHandler{
		logger:        logger,
		engine:        engine,
		records:       records,
		retention:     retention,
		auditor:       auditor,
		strictConsent: strictConsent,
	}
}

// Register registers the processing routes.
func (h *ProcessHandler) Register(r chi.Router) {
	r.Post("/process", h.handleProcess)
	r.Post("/classify", h.handleClassify)
}

type processRequest struct {
	RecordID string                   `json:"recordId,omitempty"`
	Record   *record.Record           `json:"record"`
	Context  domain.ProcessingContext `json:"context"`
}

type processResponse struct {
	RecordID   string                    `json:"recordId"`
	Data       *record.Record            `json:"data"`
	Compliance engine.ComplianceMetadata `json:"compliance"`
	Warnings   []engine.Warning          `json:"warnings"`
}

func (h *ProcessHandler) handleProcess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid process request",
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

	recordID, err := parseOrNewRecordID(req.RecordID)
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "recordId must be a UUID"))
		return
	}

	// Strict mode refuses to process records without explicit consent
	// evidence: either an existing consent block or consent flags supplied
	// with the request.
	if h.strictConsent && !consent.HasConsent(req.Record) && len(req.Context.ConsentFlags) == 0 {
		shared.WriteError(w, dErrors.New(dErrors.CodeMissingConsent, "explicit consent required before processing"))
		return
	}

	pctx := withClientEvidence(ctx, req.Context)

	// Resolve the subject before processing mutates or seals fields.
	subjectHash := privacy.HashSubjectID(subjectOf(req.Record, requestcontext.Subject(ctx)))

	result, err := h.engine.Process(ctx, req.Record, pctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "record processing failed",
			"request_id", requestID,
			"error", err.Error(),
		)
		failure := newEvent(ctx, audit.ActionProcessingFailed, subjectHash)
		failure.Reason = string(dErrors.CodeOf(err))
		emitEvent(ctx, h.logger, h.auditor, failure)
		shared.WriteError(w, err)
		return
	}

	stored := storage.StoredRecord{
		ID:        recordID,
		SubjectID: subjectHash,
		Data:      result.Data,
		Laws:      result.Compliance.ApplicableLaws,
	}
	meta, hasMeta := deletionMetaOf(result.Data)
	if hasMeta {
		stored.RetentionDays = meta.RetentionPeriodDays
	}

	if err := h.records.Save(ctx, stored); err != nil {
		h.logger.ErrorContext(ctx, "failed to persist processed record",
			"request_id", requestID,
			"record_id", recordID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to persist record"))
		return
	}

	if hasMeta && h.retention != nil {
		if err := h.retention.Remember(ctx, recordID, meta); err != nil {
			h.logger.WarnContext(ctx, "retention cache update failed",
				"request_id", requestID,
				"record_id", recordID,
				"error", err.Error(),
			)
		}
	}

	h.emitProcessEvents(r, subjectHash, result)

	shared.WriteJSON(w, http.StatusOK, processResponse{
		RecordID:   recordID.String(),
		Data:       result.Data,
		Compliance: result.Compliance,
		Warnings:   result.Warnings,
	})
}

// emitProcessEvents turns one processing pass into its audit trail: a routine
// record_processed event plus one compliance event per obligation applied.
func (h *ProcessHandler) emitProcessEvents(r *http.Request, subjectHash string, result *engine.ProcessingResult) {
	ctx := r.Context()

	processed := newEvent(ctx, audit.ActionRecordProcessed, subjectHash)
	processed.Decision = "processed"
	emitEvent(ctx, h.logger, h.auditor, processed)

	for _, tag := range result.Compliance.Actions {
		mapped, ok := complianceAudit[tag]
		if !ok {
			continue
		}
		event := newEvent(ctx, mapped.action, subjectHash)
		event.Law = mapped.law.String()
		event.Reason = tag.String()
		emitEvent(ctx, h.logger, h.auditor, event)
	}

	for _, warning := range result.Warnings {
		if warning.Code != engine.WarnEncryptionDegraded {
			continue
		}
		event := newEvent(ctx, audit.ActionEncryptionDegraded, subjectHash)
		event.Field = warning.Field
		event.Reason = warning.Message
		emitEvent(ctx, h.logger, h.auditor, event)
	}
}

type classifyRequest struct {
	Record *record.Record `json:"record"`
}

type classifyResponse struct {
	Classifications []classify.Classification `json:"classifications"`
	FieldCount      int                       `json:"fieldCount"`
}

func (h *ProcessHandler) handleClassify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid classify request",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Record == nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "record is required"))
		return
	}

	subjectHash := privacy.HashSubjectID(subjectOf(req.Record, requestcontext.Subject(ctx)))

	classifications, err := h.engine.ClassifyRecord(ctx, req.Record)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	emitEvent(ctx, h.logger, h.auditor, newEvent(ctx, audit.ActionRecordClassified, subjectHash))

	shared.WriteJSON(w, http.StatusOK, classifyResponse{
		Classifications: classifications,
		FieldCount:      len(classifications),
	})
}

// parseOrNewRecordID accepts a caller-supplied record ID for idempotent
// reprocessing, minting a fresh one otherwise.
func parseOrNewRecordID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.New(), nil
	}
	return uuid.Parse(raw)
}

// deletionMetaOf extracts the deletion metadata block in either of its two
// shapes: the typed struct set during this pass, or the generic map it
// becomes after a JSON round trip.
func deletionMetaOf(rec *record.Record) (obligation.DeletionMetadata, bool) {
	v, ok := rec.Get(record.KeyDeletionMeta)
	if !ok {
		return obligation.DeletionMetadata{}, false
	}
	switch m := v.(type) {
	case *obligation.DeletionMetadata:
		return *m, true
	case map[string]any:
		raw, err := json.Marshal(m)
		if err != nil {
			return obligation.DeletionMetadata{}, false
		}
		var meta obligation.DeletionMetadata
		if err := json.Unmarshal(raw, &meta); err != nil {
			return obligation.DeletionMetadata{}, false
		}
		return meta, true
	}
	return obligation.DeletionMetadata{}, false
}
