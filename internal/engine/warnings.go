package engine

import (
	"fmt"
	"unicode/utf8"

	"privacyguard/internal/classify"
	"privacyguard/internal/consent"
	"privacyguard/pkg/record"
)

const (
	minPasswordLength         = 12
	sensitiveFieldWarnCeiling = 3
)

// computeWarnings inspects the record after obligations were applied but
// before encryption, so credential checks still see plaintext. The pass is
// read-only.
func computeWarnings(rec *record.Record, classifications []classify.Classification) []Warning {
	var warnings []Warning

	if v, ok := rec.Get("password"); ok {
		if s, isString := v.(string); isString && utf8.RuneCountInString(s) < minPasswordLength {
			warnings = append(warnings, Warning{
				Severity: SeverityHigh,
				Code:     WarnWeakPassword,
				Message:  fmt.Sprintf("password is shorter than %d characters", minPasswordLength),
				Field:    "password",
			})
		}
	}

	if !consent.HasConsent(rec) {
		warnings = append(warnings, Warning{
			Severity: SeverityMedium,
			Code:     WarnConsentMissing,
			Message:  "no consent recorded for this record",
		})
	}

	if n := classify.HighSensitivityCount(classifications); n > sensitiveFieldWarnCeiling {
		warnings = append(warnings, Warning{
			Severity: SeverityMedium,
			Code:     WarnSensitiveDataDense,
			Message:  fmt.Sprintf("%d fields classify as high or critical sensitivity", n),
		})
	}

	return warnings
}
