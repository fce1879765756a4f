package obligation

import (
	"privacyguard/pkg/domain"
	dErrors "privacyguard/pkg/domain-errors"
)

// deletionTimelines gives the completion estimate each regime allows for a
// deletion request.
var deletionTimelines = map[domain.LawCode]uint32{
	domain.LawGDPR:   30,
	domain.LawCCPA:   45,
	domain.LawLGPD:   15,
	domain.LawPIPEDA: 30,
}

// baseDeletionActions apply to every deletion request regardless of regime.
var baseDeletionActions = []string{
	"locate_all_records_for_subject",
	"suspend_active_processing",
}

// lawDeletionActions extends the base checklist with regime-specific steps.
var lawDeletionActions = map[domain.LawCode][]string{
	domain.LawGDPR: {
		"delete_personal_data",
		"anonymize_residual_references",
		"verify_retention_obligations",
		"notify_downstream_processors",
	},
	domain.LawCCPA: {
		"delete_consumer_data",
		"verify_consumer_request",
		"confirm_deletion_to_consumer",
	},
	domain.LawLGPD: {
		"delete_personal_data",
		"confirm_deletion_to_subject",
	},
	domain.LawPIPEDA: {
		"delete_personal_data",
		"document_destruction",
	},
}

// PlanDeletion returns the checklist a storage collaborator must execute to
// honor a deletion request under the given regime. No record is touched and
// nothing is deleted here; the plan is advisory output.
func PlanDeletion(userID string, law domain.LawCode) (DeletionPlan, error) {
	if userID == "" {
		return DeletionPlan{}, dErrors.New(dErrors.CodeInvalidInput, "user id cannot be empty")
	}
	if !law.IsValid() {
		return DeletionPlan{}, dErrors.New(dErrors.CodeInvalidInput, "unknown law code: "+law.String())
	}

	actions := make([]string, 0, len(baseDeletionActions)+len(lawDeletionActions[law]))
	actions = append(actions, baseDeletionActions...)
	actions = append(actions, lawDeletionActions[law]...)

	return DeletionPlan{
		Actions:                 actions,
		EstimatedCompletionDays: deletionTimelines[law],
	}, nil
}
