// Package classify derives per-field handling requirements from field names.
// Classification is pure: no I/O, no stored state, same input always yields
// the same output.
package classify

import (
	"privacyguard/pkg/domain"
	"privacyguard/pkg/record"
)

// Classify resolves the handling profile for a single field. The value is
// accepted for signature stability with record-level classification; the
// current rule set keys entirely off the field name.
func Classify(field string, _ any) Classification {
	e := lookup(field)
	return Classification{
		Field:              field,
		Type:               e.fieldType,
		Sensitivity:        e.sensitivity,
		ApplicableLaws:     lawsFor(e.fieldType),
		EncryptionRequired: e.encrypt,
		RetentionDays:      RetentionDaysFor(e.fieldType),
		Recommendation:     recommendations[e.fieldType],
	}
}

// ClassifyRecord classifies every data field of rec in record order. Fields
// holding nil and engine-managed annotation keys are skipped.
func ClassifyRecord(rec *record.Record) []Classification {
	if rec == nil {
		return nil
	}
	out := make([]Classification, 0, rec.Len())
	rec.Range(func(key string, value any) bool {
		if record.IsReserved(key) || value == nil {
			return true
		}
		out = append(out, Classify(key, value))
		return true
	})
	return out
}

// HighSensitivityCount returns how many classifications are high or critical.
// The processing layer uses it to flag records that concentrate sensitive
// data.
func HighSensitivityCount(cs []Classification) int {
	n := 0
	for _, c := range cs {
		if c.Sensitivity.AtLeast(domain.SensitivityHigh) {
			n++
		}
	}
	return n
}

func lawsFor(t domain.FieldType) []domain.LawCode {
	laws := typeLaws[t]
	out := make([]domain.LawCode, len(laws))
	copy(out, laws)
	return out
}
