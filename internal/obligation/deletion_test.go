package obligation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"privacyguard/pkg/domain"
	dErrors "privacyguard/pkg/domain-errors"
)

func TestPlanDeletion(t *testing.T) {
	tests := []struct {
		law          domain.LawCode
		wantDays     uint32
		wantContains []string
	}{
		{
			law:          domain.LawGDPR,
			wantDays:     30,
			wantContains: []string{"delete_personal_data", "anonymize_residual_references", "verify_retention_obligations", "notify_downstream_processors"},
		},
		{
			law:          domain.LawCCPA,
			wantDays:     45,
			wantContains: []string{"delete_consumer_data", "verify_consumer_request"},
		},
		{
			law:          domain.LawLGPD,
			wantDays:     15,
			wantContains: []string{"delete_personal_data"},
		},
		{
			law:          domain.LawPIPEDA,
			wantDays:     30,
			wantContains: []string{"document_destruction"},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.law), func(t *testing.T) {
			plan, err := PlanDeletion("user-1", tt.law)
			require.NoError(t, err)

			assert.Equal(t, tt.wantDays, plan.EstimatedCompletionDays)
			for _, action := range tt.wantContains {
				assert.Contains(t, plan.Actions, action)
			}
			// Every plan starts with the regime-independent steps.
			assert.Equal(t, "locate_all_records_for_subject", plan.Actions[0])
			assert.Equal(t, "suspend_active_processing", plan.Actions[1])
		})
	}
}

func TestPlanDeletion_Invalid(t *testing.T) {
	_, err := PlanDeletion("", domain.LawGDPR)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = PlanDeletion("user-1", domain.LawCode("hipaa"))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}
