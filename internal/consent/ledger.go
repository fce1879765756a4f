// Package consent manages the consent block a record carries: the current
// ConsentRecord, its append-only history, and the withdrawal trail. It is
// pure annotation state management; classification and encryption never
// enter here.
package consent

import (
	"encoding/json"
	"time"

	"privacyguard/internal/consent/device"
	"privacyguard/pkg/domain"
	dErrors "privacyguard/pkg/domain-errors"
	"privacyguard/pkg/record"
)

// defaultPreferences is the stance applied before caller overrides. Necessary
// is forced true after merging, whatever the caller sends.
func defaultPreferences() map[domain.ConsentType]bool {
	return map[domain.ConsentType]bool{
		domain.ConsentNecessary:             true,
		domain.ConsentMarketing:             false,
		domain.ConsentAnalytics:             true,
		domain.ConsentPersonalization:       false,
		domain.ConsentThirdPartySharing:     false,
		domain.ConsentInternationalTransfer: false,
	}
}

// RecordConsent builds a fresh ConsentRecord and installs it as current. An
// existing current record is pushed onto history first; history entries are
// never edited afterwards. Returns the new current record.
func RecordConsent(rec *record.Record, opts Options, pctx domain.ProcessingContext) (*ConsentRecord, error) {
	if rec == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "nil record")
	}
	ann, err := annotationFrom(rec)
	if err != nil {
		return nil, err
	}

	prefs := defaultPreferences()
	for k, v := range opts.Preferences {
		if !k.IsValid() {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown consent type "+string(k))
		}
		prefs[k] = v
	}
	prefs[domain.ConsentNecessary] = true

	purpose := opts.Purpose
	if purpose == "" {
		purpose = "general"
	}

	current := ConsentRecord{
		Version:           Version,
		RecordedAt:        time.Now().UTC(),
		IPAddress:         pctx.IPAddress,
		UserAgent:         pctx.UserAgent,
		Device:            deviceSummary(pctx.UserAgent),
		DeviceFingerprint: device.Fingerprint(pctx.UserAgent),
		Purpose:           purpose,
		Specific:          true,
		Informed:          true,
		Unambiguous:       true,
		Preferences:       prefs,
		CanWithdraw:       true,
	}

	if ann.Current != nil {
		ann.History = append(ann.History, ann.Current.clone())
	}
	ann.Current = &current
	rec.Set(record.KeyConsent, ann)
	return &current, nil
}

// WithdrawConsent revokes consent for one type, or for everything except
// necessary when scope is ConsentAll. The pre-withdrawal state is snapshotted
// onto the withdrawal trail before any preference changes.
func WithdrawConsent(rec *record.Record, scope domain.ConsentType, pctx domain.ProcessingContext) (*WithdrawalEntry, error) {
	if rec == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "nil record")
	}
	if scope == domain.ConsentNecessary {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "necessary consent cannot be withdrawn")
	}
	if scope != domain.ConsentAll && !scope.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown consent type "+string(scope))
	}

	ann, err := annotationFrom(rec)
	if err != nil {
		return nil, err
	}
	if ann.Current == nil {
		return nil, dErrors.New(dErrors.CodeMissingConsent, "no consent recorded to withdraw")
	}

	entry := WithdrawalEntry{
		WithdrawnAt: time.Now().UTC(),
		Scope:       string(scope),
		IPAddress:   pctx.IPAddress,
		UserAgent:   pctx.UserAgent,
		Snapshot:    ann.Current.clone(),
	}
	if ann.Current.DeviceFingerprint != "" {
		entry.DeviceChanged = !device.SameDevice(device.Fingerprint(pctx.UserAgent), ann.Current.DeviceFingerprint)
	}
	ann.Withdrawals = append(ann.Withdrawals, entry)

	updated := ann.Current.clone()
	if scope == domain.ConsentAll {
		for k := range updated.Preferences {
			updated.Preferences[k] = k == domain.ConsentNecessary
		}
	} else {
		updated.Preferences[scope] = false
	}
	updated.WithdrawalRecorded = true
	ann.Current = &updated

	rec.Set(record.KeyConsent, ann)
	return &entry, nil
}

// HasValidConsent reports whether processing of the given type is covered.
// Necessary processing is always permitted. Everything else requires a
// current record that passes IsCompliant and carries the preference.
func HasValidConsent(rec *record.Record, processingType domain.ConsentType) bool {
	if processingType == domain.ConsentNecessary {
		return true
	}
	ann, err := annotationFrom(rec)
	if err != nil || ann.Current == nil {
		return false
	}
	if !IsCompliant(ann.Current) {
		return false
	}
	return ann.Current.Preferences[processingType]
}

// IsCompliant checks the structural validity a consent record needs before
// any preference flag may be trusted: specific, informed, unambiguous, bound
// to a purpose, timestamped, and withdrawable.
func IsCompliant(c *ConsentRecord) bool {
	if c == nil {
		return false
	}
	return c.Specific &&
		c.Informed &&
		c.Unambiguous &&
		c.Purpose != "" &&
		!c.RecordedAt.IsZero() &&
		c.CanWithdraw
}

// HasConsent reports whether any consent block exists on the record at all.
func HasConsent(rec *record.Record) bool {
	ann, err := annotationFrom(rec)
	return err == nil && ann.Current != nil
}

// AuditTrail assembles the full consent view of a record. The returned trail
// is independent of the record; mutating it changes nothing.
func AuditTrail(rec *record.Record) (Trail, error) {
	ann, err := annotationFrom(rec)
	if err != nil {
		return Trail{}, err
	}

	trail := Trail{
		Current:     ann.Current,
		History:     ann.History,
		Withdrawals: ann.Withdrawals,
	}
	if trail.History == nil {
		trail.History = []ConsentRecord{}
	}
	if trail.Withdrawals == nil {
		trail.Withdrawals = []WithdrawalEntry{}
	}

	trail.Summary = Summary{
		HasCurrent:      ann.Current != nil,
		Compliant:       IsCompliant(ann.Current),
		HistoryCount:    len(trail.History),
		WithdrawalCount: len(trail.Withdrawals),
	}
	if ann.Current != nil {
		trail.Summary.LastActivity = ann.Current.RecordedAt
	}
	for _, w := range trail.Withdrawals {
		if w.WithdrawnAt.After(trail.Summary.LastActivity) {
			trail.Summary.LastActivity = w.WithdrawnAt
		}
	}
	return trail, nil
}

// annotationFrom decodes the consent block of a record into a private copy.
// Records fresh from JSON hold the block as map[string]any; records still in
// memory hold the typed form. Either way the caller gets an independent
// Annotation, so in-place mutation can never leak into clones sharing the
// original pointer.
func annotationFrom(rec *record.Record) (*Annotation, error) {
	raw, ok := rec.Get(record.KeyConsent)
	if !ok || raw == nil {
		return &Annotation{}, nil
	}

	switch v := raw.(type) {
	case *Annotation:
		return copyAnnotation(v), nil
	case map[string]any:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "malformed consent annotation")
		}
		var ann Annotation
		if err := json.Unmarshal(data, &ann); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "malformed consent annotation")
		}
		return &ann, nil
	default:
		return nil, dErrors.New(dErrors.CodeInvalidInput, "malformed consent annotation")
	}
}

func copyAnnotation(src *Annotation) *Annotation {
	out := &Annotation{}
	if src.Current != nil {
		cur := src.Current.clone()
		out.Current = &cur
	}
	if len(src.History) > 0 {
		out.History = make([]ConsentRecord, 0, len(src.History))
		for _, h := range src.History {
			out.History = append(out.History, h.clone())
		}
	}
	if len(src.Withdrawals) > 0 {
		out.Withdrawals = make([]WithdrawalEntry, 0, len(src.Withdrawals))
		for _, w := range src.Withdrawals {
			entry := w
			entry.Snapshot = w.Snapshot.clone()
			out.Withdrawals = append(out.Withdrawals, entry)
		}
	}
	return out
}

func deviceSummary(userAgent string) string {
	if userAgent == "" {
		return ""
	}
	return device.ParseUserAgent(userAgent)
}
