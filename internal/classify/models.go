package classify

import (
	"privacyguard/pkg/domain"
)

// Classification describes how a single field must be handled. It is derived
// from the field name and value on every call and never stored on the record,
// so repeated classification of the same input yields the same result.
type Classification struct {
	Field              string             `json:"field"`
	Type               domain.FieldType   `json:"type"`
	Sensitivity        domain.Sensitivity `json:"sensitivity"`
	ApplicableLaws     []domain.LawCode   `json:"applicableLaws"`
	EncryptionRequired bool               `json:"encryptionRequired"`
	RetentionDays      uint32             `json:"retentionDays"`
	Recommendation     string             `json:"recommendation"`
}
