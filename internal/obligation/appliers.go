package obligation

import (
	"time"

	"privacyguard/internal/classify"
	"privacyguard/internal/consent"
	"privacyguard/pkg/domain"
	dErrors "privacyguard/pkg/domain-errors"
	"privacyguard/pkg/record"
)

// ApplyFunc mutates rec with one regime's obligations and reports the action
// tags for every change it made.
type ApplyFunc func(rec *record.Record, pctx domain.ProcessingContext) ([]domain.ActionTag, error)

// appliers is the law handler registry. Laws absent from this table resolve
// but apply nothing; that keeps LGPD and PIPEDA recognized today and leaves
// room for their handlers later.
var appliers = map[domain.LawCode]ApplyFunc{
	domain.LawGDPR: applyGDPR,
	domain.LawCCPA: applyCCPA,
}

// excessiveDataFields triggers GDPR data minimization when any of them is
// present on the record.
var excessiveDataFields = []string{"socialSecurity", "driversLicense", "passportNumber"}

// excessByAction lists the fields considered excess for a given processing
// action once minimization triggers.
var excessByAction = map[string][]string{
	"registration": {"gps"},
}

// ApplyLaw runs the registered handler for law against rec. Laws without a
// registered handler are a no-op.
func ApplyLaw(rec *record.Record, law domain.LawCode, pctx domain.ProcessingContext) ([]domain.ActionTag, error) {
	apply, ok := appliers[law]
	if !ok {
		return nil, nil
	}
	return apply(rec, pctx)
}

// applyGDPR enforces the three GDPR obligations in order: consent must be on
// record, excessive data triggers minimization, and the record must carry an
// erasure profile.
func applyGDPR(rec *record.Record, pctx domain.ProcessingContext) ([]domain.ActionTag, error) {
	var actions []domain.ActionTag

	if !consent.HasConsent(rec) {
		if _, err := consent.RecordConsent(rec, consentOptionsFrom(pctx), pctx); err != nil {
			return actions, dErrors.Wrap(err, dErrors.CodeInternal, "record consent for gdpr")
		}
		actions = append(actions, domain.ActionGDPRConsentRecorded)
	}

	if hasExcessiveData(rec) {
		for _, field := range excessByAction[pctx.Action] {
			rec.Delete(field)
		}
		actions = append(actions, domain.ActionGDPRDataMinimizationApplied)
	}

	if !rec.Has(record.KeyDeletionMeta) {
		rec.Set(record.KeyDeletionMeta, computeDeletionMetadata(rec))
		actions = append(actions, domain.ActionGDPRDeletionMetadataAdded)
	}

	return actions, nil
}

// applyCCPA attaches the consumer-rights block when absent. The default
// stance is opted out of sale until a verified consumer request says
// otherwise.
func applyCCPA(rec *record.Record, _ domain.ProcessingContext) ([]domain.ActionTag, error) {
	if rec.Has(record.KeyCCPARights) {
		return nil, nil
	}
	rec.Set(record.KeyCCPARights, &CCPARights{
		OptOutOfSale: true,
		Verified:     false,
		AttachedAt:   time.Now().UTC(),
	})
	return []domain.ActionTag{domain.ActionCCPARightsMetadataAdded}, nil
}

// consentOptionsFrom derives consent options from the caller's context: the
// action becomes the purpose and every parseable consent flag becomes an
// explicit preference. Flags that are not consent types are ignored.
func consentOptionsFrom(pctx domain.ProcessingContext) consent.Options {
	opts := consent.Options{Purpose: pctx.Action}
	if len(pctx.ConsentFlags) == 0 {
		return opts
	}
	opts.Preferences = make(map[domain.ConsentType]bool, len(pctx.ConsentFlags))
	for name, granted := range pctx.ConsentFlags {
		ct, err := domain.ParseConsentType(name)
		if err != nil || ct == domain.ConsentAll {
			continue
		}
		opts.Preferences[ct] = granted
	}
	return opts
}

func hasExcessiveData(rec *record.Record) bool {
	for _, field := range excessiveDataFields {
		if v, ok := rec.Get(field); ok && v != nil {
			return true
		}
	}
	return false
}

// criticalIdentifyingFields block deletion while present on the record.
var criticalIdentifyingFields = []string{"email", "phone", "userId"}

// computeDeletionMetadata derives the erasure profile from the record's
// current shape: deletable unless a critical identifier remains, retained as
// long as the longest-lived classified field requires.
func computeDeletionMetadata(rec *record.Record) *DeletionMetadata {
	deletable := true
	for _, field := range criticalIdentifyingFields {
		if v, ok := rec.Get(field); ok && v != nil {
			deletable = false
			break
		}
	}

	var retention uint32
	for _, c := range classify.ClassifyRecord(rec) {
		if c.RetentionDays > retention {
			retention = c.RetentionDays
		}
	}
	if retention == 0 {
		retention = classify.RetentionDaysFor(domain.FieldTypeGeneral)
	}

	dm := &DeletionMetadata{
		CanBeDeleted:            deletable,
		RetentionPeriodDays:     retention,
		DeletionProcedure:       ProcedureImmediate,
		ConsentWithdrawalImpact: "processing stops on withdrawal; data already collected is retained only for legal obligations",
		ComputedAt:              time.Now().UTC(),
	}
	if !deletable {
		dm.DeletionProcedure = ProcedureAnonymize
	}
	return dm
}
