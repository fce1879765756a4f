package obligation

import (
	"time"
)

// DeletionProcedure states how a record can leave the system.
type DeletionProcedure string

const (
	// ProcedureImmediate: nothing blocks deletion; purge on request.
	ProcedureImmediate DeletionProcedure = "immediate_deletion"
	// ProcedureAnonymize: identifying fields remain, so references must be
	// anonymized before the rest is deleted.
	ProcedureAnonymize DeletionProcedure = "anonymize_then_delete"
)

// DeletionMetadata is the erasure profile attached to a record under its
// reserved key. It is computed fresh whenever attached, never merged with a
// previous block.
type DeletionMetadata struct {
	CanBeDeleted            bool              `json:"canBeDeleted"`
	RetentionPeriodDays     uint32            `json:"retentionPeriodDays"`
	DeletionProcedure       DeletionProcedure `json:"deletionProcedure"`
	ConsentWithdrawalImpact string            `json:"consentWithdrawalImpact"`
	ComputedAt              time.Time         `json:"computedAt"`
}

// CCPARights is the consumer-rights block attached under the record's
// reserved key. The default stance is opted out of sale with no verified
// consumer request on file.
type CCPARights struct {
	OptOutOfSale bool      `json:"optOutOfSale"`
	Verified     bool      `json:"verified"`
	AttachedAt   time.Time `json:"attachedAt"`
}

// DeletionPlan is the law-specific checklist returned to storage
// collaborators. The engine performs no deletion itself; executing the
// actions is the caller's responsibility.
type DeletionPlan struct {
	Actions                 []string `json:"actions"`
	EstimatedCompletionDays uint32   `json:"estimatedCompletionDays"`
}
