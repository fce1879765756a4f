package obligation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"privacyguard/internal/consent"
	"privacyguard/pkg/domain"
	"privacyguard/pkg/record"
)

func registrationContext() domain.ProcessingContext {
	return domain.ProcessingContext{
		Country:   "DE",
		Action:    "registration",
		IPAddress: "198.51.100.7",
	}
}

func TestApplyLaw_UnknownLawIsNoOp(t *testing.T) {
	r := record.New()
	r.Set("email", "a@example.com")

	actions, err := ApplyLaw(r, domain.LawLGPD, registrationContext())
	require.NoError(t, err)
	assert.Empty(t, actions)
	assert.Equal(t, []string{"email"}, r.Keys())

	actions, err = ApplyLaw(r, domain.LawCode("FUTURE"), registrationContext())
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestApplyGDPR_RecordsConsentWhenAbsent(t *testing.T) {
	r := record.New()
	r.Set("email", "a@example.com")

	pctx := registrationContext()
	pctx.ConsentFlags = map[string]bool{"marketing": true, "not_a_consent_type": true}

	actions, err := ApplyLaw(r, domain.LawGDPR, pctx)
	require.NoError(t, err)
	assert.Contains(t, actions, domain.ActionGDPRConsentRecorded)

	trail, err := consent.AuditTrail(r)
	require.NoError(t, err)
	require.NotNil(t, trail.Current)
	assert.Equal(t, "registration", trail.Current.Purpose)
	assert.True(t, trail.Current.Preferences[domain.ConsentMarketing], "context consent flags carry into the recorded consent")
}

func TestApplyGDPR_ExistingConsentUntouched(t *testing.T) {
	r := record.New()
	r.Set("email", "a@example.com")
	_, err := consent.RecordConsent(r, consent.Options{Purpose: "signup"}, registrationContext())
	require.NoError(t, err)

	actions, err := ApplyLaw(r, domain.LawGDPR, registrationContext())
	require.NoError(t, err)
	assert.NotContains(t, actions, domain.ActionGDPRConsentRecorded)

	trail, err := consent.AuditTrail(r)
	require.NoError(t, err)
	assert.Equal(t, "signup", trail.Current.Purpose)
	assert.Empty(t, trail.History, "existing consent must not be superseded by processing")
}

func TestApplyGDPR_Minimization(t *testing.T) {
	t.Run("excessive data on registration drops gps", func(t *testing.T) {
		r := record.New()
		r.Set("socialSecurity", "000-11-2222")
		r.Set("gps", map[string]any{"lat": 1.0})
		r.Set("email", "a@example.com")

		actions, err := ApplyLaw(r, domain.LawGDPR, registrationContext())
		require.NoError(t, err)
		assert.Contains(t, actions, domain.ActionGDPRDataMinimizationApplied)
		assert.False(t, r.Has("gps"))
		assert.True(t, r.Has("socialSecurity"), "the trigger field itself is not dropped")
	})

	t.Run("excessive data without matching action still flags minimization", func(t *testing.T) {
		r := record.New()
		r.Set("passportNumber", "X1234567")
		r.Set("gps", map[string]any{"lat": 1.0})

		pctx := registrationContext()
		pctx.Action = "analytics"

		actions, err := ApplyLaw(r, domain.LawGDPR, pctx)
		require.NoError(t, err)
		assert.Contains(t, actions, domain.ActionGDPRDataMinimizationApplied)
		assert.True(t, r.Has("gps"), "no excess fields are defined for this action")
	})

	t.Run("no excessive data no minimization", func(t *testing.T) {
		r := record.New()
		r.Set("email", "a@example.com")
		r.Set("gps", map[string]any{"lat": 1.0})

		actions, err := ApplyLaw(r, domain.LawGDPR, registrationContext())
		require.NoError(t, err)
		assert.NotContains(t, actions, domain.ActionGDPRDataMinimizationApplied)
		assert.True(t, r.Has("gps"))
	})

	t.Run("nil valued trigger field does not fire", func(t *testing.T) {
		r := record.New()
		r.Set("driversLicense", nil)

		actions, err := ApplyLaw(r, domain.LawGDPR, registrationContext())
		require.NoError(t, err)
		assert.NotContains(t, actions, domain.ActionGDPRDataMinimizationApplied)
	})
}

func TestApplyGDPR_DeletionMetadata(t *testing.T) {
	t.Run("critical identifiers block deletion", func(t *testing.T) {
		r := record.New()
		r.Set("email", "a@example.com")
		r.Set("creditCard", "4111-1111")

		actions, err := ApplyLaw(r, domain.LawGDPR, registrationContext())
		require.NoError(t, err)
		assert.Contains(t, actions, domain.ActionGDPRDeletionMetadataAdded)

		raw, ok := r.Get(record.KeyDeletionMeta)
		require.True(t, ok)
		dm, ok := raw.(*DeletionMetadata)
		require.True(t, ok)
		assert.False(t, dm.CanBeDeleted)
		assert.Equal(t, ProcedureAnonymize, dm.DeletionProcedure)
		assert.Equal(t, uint32(2555), dm.RetentionPeriodDays, "financial field dominates retention")
		assert.NotEmpty(t, dm.ConsentWithdrawalImpact)
	})

	t.Run("no identifiers means deletable", func(t *testing.T) {
		r := record.New()
		r.Set("favoriteColor", "teal")

		_, err := ApplyLaw(r, domain.LawGDPR, registrationContext())
		require.NoError(t, err)

		raw, _ := r.Get(record.KeyDeletionMeta)
		dm := raw.(*DeletionMetadata)
		assert.True(t, dm.CanBeDeleted)
		assert.Equal(t, ProcedureImmediate, dm.DeletionProcedure)
		assert.Equal(t, uint32(365), dm.RetentionPeriodDays)
	})
}

func TestApplyGDPR_Idempotent(t *testing.T) {
	r := record.New()
	r.Set("email", "a@example.com")
	r.Set("socialSecurity", "000-11-2222")

	pctx := registrationContext()
	first, err := ApplyLaw(r, domain.LawGDPR, pctx)
	require.NoError(t, err)
	assert.Len(t, first, 3)

	// Only minimization re-fires: the trigger field is still present, while
	// consent and deletion metadata are guarded by presence checks.
	second, err := ApplyLaw(r, domain.LawGDPR, pctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.ActionTag{domain.ActionGDPRDataMinimizationApplied}, second)

	trail, err := consent.AuditTrail(r)
	require.NoError(t, err)
	assert.Empty(t, trail.History, "reprocessing must not stack consent history")
}

func TestApplyCCPA(t *testing.T) {
	r := record.New()
	r.Set("email", "a@example.com")

	actions, err := ApplyLaw(r, domain.LawCCPA, registrationContext())
	require.NoError(t, err)
	assert.Equal(t, []domain.ActionTag{domain.ActionCCPARightsMetadataAdded}, actions)

	raw, ok := r.Get(record.KeyCCPARights)
	require.True(t, ok)
	rights, ok := raw.(*CCPARights)
	require.True(t, ok)
	assert.True(t, rights.OptOutOfSale, "default stance is opted out of sale")
	assert.False(t, rights.Verified)
	assert.False(t, rights.AttachedAt.IsZero())

	// Second pass leaves the existing block alone.
	again, err := ApplyLaw(r, domain.LawCCPA, registrationContext())
	require.NoError(t, err)
	assert.Empty(t, again)
	rawAgain, _ := r.Get(record.KeyCCPARights)
	assert.Same(t, raw, rawAgain)
}
