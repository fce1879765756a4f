package engine

import (
	"time"

	"privacyguard/internal/classify"
	"privacyguard/pkg/domain"
	"privacyguard/pkg/record"
)

// ComplianceMetadata summarizes one processing pass. It lives on the result
// wrapper, never inside the record itself, so it can neither collide with nor
// be mistaken for subject data.
type ComplianceMetadata struct {
	ProcessedAt      time.Time                 `json:"processedAt"`
	ApplicableLaws   []domain.LawCode          `json:"applicableLaws"`
	Actions          []domain.ActionTag        `json:"actions"`
	DataRights       []domain.RightTag         `json:"dataRights"`
	Classifications  []classify.Classification `json:"classifications"`
	ProcessingTimeMs uint64                    `json:"processingTimeMs"`
}

// ProcessingResult is the full outcome of Process: the protected record plus
// the compliance evidence and any warnings raised along the way.
type ProcessingResult struct {
	Data       *record.Record     `json:"data"`
	Compliance ComplianceMetadata `json:"compliance"`
	Warnings   []Warning          `json:"warnings"`
}

// WarningSeverity ranks how urgently a warning needs operator attention.
type WarningSeverity string

const (
	SeverityMedium WarningSeverity = "medium"
	SeverityHigh   WarningSeverity = "high"
)

// Warning codes.
const (
	WarnWeakPassword       = "weak_password"
	WarnConsentMissing     = "consent_missing"
	WarnSensitiveDataDense = "sensitive_data_concentration"
	WarnEncryptionDegraded = "encryption_degraded"
)

// Warning flags a condition that does not fail processing but should not
// pass unnoticed.
type Warning struct {
	Severity WarningSeverity `json:"severity"`
	Code     string          `json:"code"`
	Message  string          `json:"message"`
	Field    string          `json:"field,omitempty"`
}
