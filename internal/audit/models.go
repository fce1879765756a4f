package audit

import (
	"time"

	"github.com/google/uuid"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with legal/regulatory significance.
	// These require tamper-proof storage and long retention (e.g., 7 years).
	// Examples: consent changes, minimization, deletion planning.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to security monitoring and
	// forensics. Examples: auth failures, encryption degradation.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers events useful for debugging and operational
	// visibility. These can be sampled and carry short retention.
	// Examples: routine processing, classification lookups.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from the engine and transport layers to capture key
// actions. Keep it transport-agnostic so stores and sinks can fan out.
// SubjectID is always a hash, never a raw identifier, and IP is anonymized
// to network precision before emission.
type Event struct {
	ID        uuid.UUID
	Category  EventCategory
	Timestamp time.Time
	SubjectID string
	Action    string
	Law       string
	Field     string
	Decision  string
	Reason    string
	RequestID string
	IP        string
}

type Action string

const (
	// Processing events
	ActionRecordProcessed  Action = "record_processed"
	ActionRecordClassified Action = "record_classified"
	ActionProcessingFailed Action = "processing_failed"

	// Consent events
	ActionConsentRecorded  Action = "consent_recorded"
	ActionConsentWithdrawn Action = "consent_withdrawn"
	ActionConsentChecked   Action = "consent_checked"

	// Obligation events
	ActionDataMinimized   Action = "data_minimized"
	ActionDeletionPlanned Action = "deletion_planned"
	ActionRightsAttached  Action = "rights_attached"

	// Security events
	ActionEncryptionDegraded Action = "encryption_degraded"
	ActionAuthFailed         Action = "auth_failed"
)

// actionCategories maps each audit action to its category.
// Compliance: legal/regulatory significance, long retention required.
// Security: security monitoring, SIEM integration, alerting.
// Operations: debugging, operational visibility, can be sampled.
var actionCategories = map[Action]EventCategory{
	// Compliance events - require tamper-proof storage
	ActionConsentRecorded:  CategoryCompliance,
	ActionConsentWithdrawn: CategoryCompliance,
	ActionDataMinimized:    CategoryCompliance,
	ActionDeletionPlanned:  CategoryCompliance,
	ActionRightsAttached:   CategoryCompliance,

	// Security events - feed into SIEM and alerting
	ActionEncryptionDegraded: CategorySecurity,
	ActionAuthFailed:         CategorySecurity,

	// Operations events - routine activity, can be sampled
	ActionRecordProcessed:  CategoryOperations,
	ActionRecordClassified: CategoryOperations,
	ActionProcessingFailed: CategoryOperations,
	ActionConsentChecked:   CategoryOperations,
}

// Category returns the EventCategory for this action.
// Unknown actions default to CategoryOperations.
func (a Action) Category() EventCategory {
	if cat, ok := actionCategories[a]; ok {
		return cat
	}
	return CategoryOperations
}

// TopicFor returns the Kafka topic an event category routes to.
func TopicFor(prefix string, cat EventCategory) string {
	return prefix + "." + string(cat)
}

// Topics lists every category topic under the given prefix, for topic
// creation at startup.
func Topics(prefix string) []string {
	return []string{
		TopicFor(prefix, CategoryCompliance),
		TopicFor(prefix, CategorySecurity),
		TopicFor(prefix, CategoryOperations),
	}
}
