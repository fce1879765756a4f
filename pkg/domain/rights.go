package domain

// ActionTag labels a record mutation or metadata attachment performed while
// applying a law regime. Tags are accumulated in apply order and surfaced in
// the compliance metadata so callers can audit exactly what happened.
type ActionTag string

const (
	ActionGDPRConsentRecorded         ActionTag = "gdpr_consent_recorded"
	ActionGDPRDataMinimizationApplied ActionTag = "gdpr_data_minimization_applied"
	ActionGDPRDeletionMetadataAdded   ActionTag = "gdpr_deletion_metadata_added"
	ActionCCPARightsMetadataAdded     ActionTag = "ccpa_rights_metadata_added"
)

// String returns the string representation of the action tag.
func (a ActionTag) String() string {
	return string(a)
}

// RightTag names a data-subject right granted by an applicable law.
type RightTag string

const (
	// GDPR rights (Articles 15-21).
	RightAccess             RightTag = "access"
	RightRectification      RightTag = "rectification"
	RightErasure            RightTag = "erasure"
	RightRestrictProcessing RightTag = "restrict_processing"
	RightDataPortability    RightTag = "data_portability"
	RightObject             RightTag = "object"

	// CCPA rights.
	RightKnow              RightTag = "know"
	RightDelete            RightTag = "delete"
	RightOptOutSale        RightTag = "opt_out_sale"
	RightNonDiscrimination RightTag = "non_discrimination"
)

// String returns the string representation of the right tag.
func (r RightTag) String() string {
	return string(r)
}

// lawRights is the single source of truth mapping each law regime to the
// fixed right set it grants. Laws without an entry contribute no rights; the
// union logic in the engine tolerates that so new regimes can be added
// without touching callers.
var lawRights = map[LawCode][]RightTag{
	LawGDPR: {
		RightAccess,
		RightRectification,
		RightErasure,
		RightRestrictProcessing,
		RightDataPortability,
		RightObject,
	},
	LawCCPA: {
		RightKnow,
		RightDelete,
		RightOptOutSale,
		RightNonDiscrimination,
	},
}

// RightsFor returns the fixed right set granted by the given law, in grant
// order. The returned slice is a copy; callers may append freely.
func RightsFor(law LawCode) []RightTag {
	rights, ok := lawRights[law]
	if !ok {
		return nil
	}
	out := make([]RightTag, len(rights))
	copy(out, rights)
	return out
}
